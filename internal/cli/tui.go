package cli

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdfscope/pdfscope/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// resolveInput turns the positional argument into a concrete PDF path. A
// file path passes through; a directory opens an interactive picker over the
// PDF files inside it.
func resolveInput(ctx context.Context, input string) (string, error) {
	stat, err := os.Stat(input)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot open %s", input)
	}
	if !stat.IsDir() {
		return input, nil
	}

	files, err := listPDFs(input)
	if err != nil {
		return "", err
	}
	switch len(files) {
	case 0:
		return "", errors.New(errors.ErrCodeInvalidInput, "no PDF files in %s", input)
	case 1:
		return files[0], nil
	}
	return pickFile(ctx, files)
}

// listPDFs returns the .pdf files directly inside dir, sorted by name.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read directory %s", dir)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// pickFile runs the interactive list and returns the chosen path.
func pickFile(ctx context.Context, files []string) (string, error) {
	model := newFileListModel(files)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(fileListModel)
	if !ok || m.Selected == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "no file selected")
	}
	return m.Selected, nil
}

// =============================================================================
// fileListModel - Interactive PDF selection
// =============================================================================

// fileListModel is the bubbletea model for picking one PDF out of a
// directory listing.
type fileListModel struct {
	Files    []string
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

func newFileListModel(files []string) fileListModel {
	return fileListModel{
		Files:  files,
		Height: 15,
	}
}

func (m fileListModel) Init() tea.Cmd {
	return nil
}

func (m fileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Files[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m fileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select PDF"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Files) {
		end = len(m.Files)
	}

	for i := m.Offset; i < end; i++ {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor + style.Render(filepath.Base(m.Files[i])))
		b.WriteString("\n")
	}

	if len(m.Files) > m.Height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("…more files, scroll down"))
		b.WriteString("\n")
	}
	return b.String()
}
