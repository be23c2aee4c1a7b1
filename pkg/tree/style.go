// Package tree renders a document object graph as an indented,
// line-numbered tree. It walks dictionaries, arrays, and indirect
// references depth-first, applies truncation and expansion filters,
// and decodes content streams into their operator sequences.
package tree

import "github.com/charmbracelet/lipgloss"

// Role classifies a piece of rendered text so a Styler can decorate it.
type Role int

const (
	// Structural text.
	RoleTree       Role = iota // branch glyphs and continuation bars
	RoleHelper                 // separators like ":" and "="
	RoleType                   // type names
	RoleValue                  // inline value text
	RoleExpandInfo             // elision hints
	RoleExtraInfo              // trailing annotations
	RoleSkipped                // truncation markers
	RoleError                  // inline error lines

	// Kind symbols.
	RoleNull
	RoleBoolean
	RoleInteger
	RoleReal
	RoleName
	RoleLiteralString
	RoleHexString
	RoleArray
	RoleDictionary
	RoleStream
	RoleReference
)

// Styler decorates rendered text by role. Implementations must return the
// input unchanged in length-relevant content; only decoration may be added.
type Styler interface {
	Paint(role Role, text string) string
}

// PlainStyler renders without any decoration, for piped output and tests.
type PlainStyler struct{}

func (PlainStyler) Paint(_ Role, text string) string { return text }

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorBlack   = lipgloss.Color("0")
	colorRed     = lipgloss.Color("1")
	colorGreen   = lipgloss.Color("2")
	colorYellow  = lipgloss.Color("3")
	colorBlue    = lipgloss.Color("4")
	colorMagenta = lipgloss.Color("5")
	colorCyan    = lipgloss.Color("6")
	colorWhite   = lipgloss.Color("7")
	colorOrange  = lipgloss.Color("#FFA500")
)

var ansiStyles = map[Role]lipgloss.Style{
	RoleTree:       lipgloss.NewStyle().Foreground(colorCyan).Faint(true),
	RoleHelper:     lipgloss.NewStyle().Foreground(colorCyan),
	RoleType:       lipgloss.NewStyle().Faint(true).Italic(true),
	RoleValue:      lipgloss.NewStyle().Bold(true),
	RoleExpandInfo: lipgloss.NewStyle().Faint(true).Italic(true),
	RoleExtraInfo:  lipgloss.NewStyle().Italic(true),
	RoleSkipped:    lipgloss.NewStyle().Foreground(colorBlue).Italic(true),
	RoleError:      lipgloss.NewStyle().Foreground(colorRed).Bold(true),

	RoleNull:          lipgloss.NewStyle().Foreground(colorMagenta).Bold(true),
	RoleBoolean:       lipgloss.NewStyle().Foreground(colorBlack).Bold(true),
	RoleInteger:       lipgloss.NewStyle().Foreground(colorRed).Bold(true),
	RoleReal:          lipgloss.NewStyle().Foreground(colorMagenta).Bold(true),
	RoleName:          lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
	RoleLiteralString: lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
	RoleHexString:     lipgloss.NewStyle().Foreground(colorOrange).Bold(true),
	RoleArray:         lipgloss.NewStyle().Foreground(colorBlue).Bold(true),
	RoleDictionary:    lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
	RoleStream:        lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
	RoleReference:     lipgloss.NewStyle().Foreground(colorWhite).Faint(true).Bold(true),
}

// ANSIStyler decorates text with terminal colors.
type ANSIStyler struct{}

func (ANSIStyler) Paint(role Role, text string) string {
	style, ok := ansiStyles[role]
	if !ok {
		return text
	}
	return style.Render(text)
}
