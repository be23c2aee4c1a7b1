package tree

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdfscope/pdfscope/pkg/errors"
	"github.com/pdfscope/pdfscope/pkg/object"
)

const (
	tabWidth      = 2
	arrowLast     = "└"
	arrowMid      = "├"
	indentBar     = "│"
	marginDivider = "┃"
)

// depthInfo is one ancestor level of the cursor: the label that was
// descended through (empty for array elements) and whether the level still
// draws a continuation bar.
type depthInfo struct {
	label      string
	indentLine bool
}

// sharedState is the single piece of state common to every cursor copy in
// one traversal. Line numbers stay monotonic across branches because all
// copies increment the same counter.
type sharedState struct {
	w        io.Writer
	settings CursorSettings
	styler   Styler
	line     uint64
}

// Cursor tracks one position in the recursive descent: the label path from
// the root, the line-drawing state per level, and the ids of the indirect
// objects currently being expanded on this path.
//
// Cursor is a value type. Push and WithAncestor return copies that own
// their path and ancestor slices, so sibling branches never see each
// other's state. Only the line counter and writer are shared.
type Cursor struct {
	depth     []depthInfo
	ancestors []object.ID
	shared    *sharedState
}

// NewCursor creates the root cursor of a traversal.
func NewCursor(w io.Writer, settings CursorSettings, styler Styler) Cursor {
	return Cursor{shared: &sharedState{w: w, settings: settings, styler: styler}}
}

// Push returns a copy of the cursor descended one level. The label is empty
// for unlabeled children (array elements, resolved references). indentLine
// keeps the continuation bar for this level alive in deeper lines.
func (c Cursor) Push(label string, indentLine bool) Cursor {
	depth := make([]depthInfo, len(c.depth), len(c.depth)+1)
	copy(depth, c.depth)
	ancestors := make([]object.ID, len(c.ancestors))
	copy(ancestors, c.ancestors)
	return Cursor{
		depth:     append(depth, depthInfo{label: label, indentLine: indentLine}),
		ancestors: ancestors,
		shared:    c.shared,
	}
}

// Depth reports how many levels deep the cursor is.
func (c Cursor) Depth() int {
	return len(c.depth)
}

// Path returns the labeled part of the descent, root first.
func (c Cursor) Path() []string {
	var path []string
	for _, d := range c.depth {
		if d.label != "" {
			path = append(path, d.label)
		}
	}
	return path
}

// NextExpandLabel matches the cursor's path against the expand filter.
// It returns the next label that must be descended into, or "" when there
// is no filter or the path already satisfies it. A path that diverges from
// the filter is an EXPAND_MISMATCH error; the caller abandons that subtree.
func (c Cursor) NextExpandLabel(expand []string) (string, error) {
	if len(expand) == 0 {
		return "", nil
	}
	path := c.Path()
	for i, label := range expand {
		if i >= len(path) {
			return label, nil
		}
		if path[i] != label {
			return "", errors.New(errors.ErrCodeExpandMismatch,
				"path %q diverges from expand filter at %q", strings.Join(path, "."), label)
		}
	}
	return "", nil
}

// IsAncestor reports whether the id is currently being expanded on this
// path. Only the active path counts; ids rendered on sibling branches do
// not.
func (c Cursor) IsAncestor(id object.ID) bool {
	for _, a := range c.ancestors {
		if a == id {
			return true
		}
	}
	return false
}

// WithAncestor returns a copy whose ancestor set includes the id.
func (c Cursor) WithAncestor(id object.ID) Cursor {
	ancestors := make([]object.ID, len(c.ancestors), len(c.ancestors)+1)
	copy(ancestors, c.ancestors)
	c.ancestors = append(ancestors, id)
	return c
}

// Print writes one tree line: optional line number, continuation bars for
// every ancestor level, the branch glyph, and the text. last selects the
// terminal glyph over the mid glyph.
func (c Cursor) Print(text string, last bool) {
	s := c.shared

	var margin string
	if s.settings.PrintLineNumbers {
		s.line++
		number := strconv.FormatUint(s.line, 10)
		if pad := s.settings.LineNumberPadding - len(number); pad > 0 {
			number = strings.Repeat(" ", pad) + number
		}
		margin = number + marginDivider
	}

	var indent strings.Builder
	for _, d := range c.depth {
		if d.indentLine {
			indent.WriteString(s.styler.Paint(RoleTree, indentBar))
		} else {
			indent.WriteByte(' ')
		}
		indent.WriteString(strings.Repeat(" ", tabWidth-1))
	}

	arrow := arrowLast
	if !last {
		arrow = arrowMid
	}
	fmt.Fprintf(s.w, "%s%s%s %s\n", margin, indent.String(), s.styler.Paint(RoleTree, arrow), text)
}

// Line reports how many lines have been issued so far across all copies.
func (c Cursor) Line() uint64 {
	return c.shared.line
}
