package tree

// StreamMode selects how a stream's payload is shown inline.
type StreamMode int

const (
	// StreamNone suppresses the inline payload.
	StreamNone StreamMode = iota
	// StreamHex shows the payload as a hex byte dump.
	StreamHex
	// StreamTree is reserved for a structured payload view. It is not
	// implemented; selecting it logs an error and renders nothing.
	StreamTree
)

// Settings is the immutable per-run display configuration.
type Settings struct {
	// MaxDepth bounds recursive descent into dictionaries.
	MaxDepth int
	// Expand restricts rendering to one label path from the root. Empty
	// means no filter.
	Expand []string
	// DisplayTypeNames appends the type name to every header line.
	DisplayTypeNames bool
	// ArrayDisplayLimit truncates long arrays; 0 disables truncation.
	ArrayDisplayLimit int
	// HexDisplayLimit truncates long hexadecimal strings; 0 disables
	// truncation.
	HexDisplayLimit int
	// DisplayStream selects the inline stream payload rendering.
	DisplayStream StreamMode
	// DisplayLegend prints the symbol legend before the tree.
	DisplayLegend bool
	// DisplayFont descends into Font entries instead of eliding them.
	DisplayFont bool
	// DisplayParent descends into references that point back at an
	// ancestor instead of eliding them.
	DisplayParent bool
	// EnhancedOperations renders content stream operations through the
	// semantic operator table.
	EnhancedOperations bool
	// OperatorInfo appends the operator description to each operation
	// line in enhanced mode.
	OperatorInfo bool
	// ForceStreamDecoding decodes every stream, not only the ones under
	// known content-bearing labels.
	ForceStreamDecoding bool
}

// DefaultSettings returns the display defaults.
func DefaultSettings() Settings {
	return Settings{
		MaxDepth:          20,
		ArrayDisplayLimit: 5,
		HexDisplayLimit:   16,
		DisplayStream:     StreamNone,
		DisplayLegend:     true,
	}
}

// CursorSettings configures the line margin.
type CursorSettings struct {
	// PrintLineNumbers prefixes every line with a monotonic counter.
	PrintLineNumbers bool
	// LineNumberPadding is the minimum width of the number column. Wider
	// numbers extend the margin instead of being truncated.
	LineNumberPadding int
}

// DefaultCursorSettings returns the margin defaults.
func DefaultCursorSettings() CursorSettings {
	return CursorSettings{
		PrintLineNumbers:  true,
		LineNumberPadding: 4,
	}
}
