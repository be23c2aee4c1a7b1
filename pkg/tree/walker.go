package tree

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/pdfscope/pdfscope/pkg/object"
)

// Printer walks a document's object graph and writes the tree.
type Printer struct {
	Settings Settings
	Styler   Styler
	Logger   *log.Logger
}

// NewPrinter creates a printer. A nil styler falls back to plain output, a
// nil logger to the default logger.
func NewPrinter(settings Settings, styler Styler, logger *log.Logger) *Printer {
	if styler == nil {
		styler = PlainStyler{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Printer{Settings: settings, Styler: styler, Logger: logger}
}

// PrintDocument renders the whole document: the legend when enabled, a
// title line, then the trailer dictionary and everything reachable from it.
func (p *Printer) PrintDocument(w io.Writer, doc *object.Document, title string, cs CursorSettings) {
	if p.Settings.DisplayLegend {
		PrintLegend(w, p.Styler)
	}
	fmt.Fprintln(w, p.Styler.Paint(RoleValue, title))

	cursor := NewCursor(w, cs, p.Styler)
	p.printDictionary(doc.Trailer, doc, cursor)
}

// printDictionary renders a dictionary's entries at the cursor's level.
//
// At or beyond the depth limit a single marker line stands in for the whole
// dictionary (nothing is printed for an empty one). When an expand filter is
// active, only the entry matching the next required label renders, as the
// sole item of its level; a path that has diverged from the filter renders
// nothing.
func (p *Printer) printDictionary(dict *object.Dictionary, doc *object.Document, cursor Cursor) {
	if cursor.Depth() >= p.Settings.MaxDepth {
		if dict.Len() > 0 {
			cursor.Print(p.Styler.Paint(RoleExpandInfo, "... (reached `max-depth`)"), true)
		}
		return
	}

	next, err := cursor.NextExpandLabel(p.Settings.Expand)
	if err != nil {
		p.Logger.Debug("took wrong path in tree somewhere", "path", cursor.Path())
		return
	}

	count := dict.Len()
	for i, entry := range dict.Entries() {
		preExpand := false
		if next != "" {
			if entry.Key != next {
				continue
			}
			preExpand = true
		}

		isLast := i+1 == count || preExpand
		child := cursor.Push(entry.Key, !isLast)

		info := Format(entry.Value, p.Settings, p.Styler, p.Logger)
		cursor.Print(headerLine(entry.Key, info, p.Settings, p.Styler), isLast)

		if !p.Settings.DisplayFont && entry.Key == "Font" {
			cursor.Print(p.Styler.Paint(RoleExpandInfo, "... (display with `display-font` flag)"), true)
			continue
		}
		p.printObject(entry.Value, doc, child)
	}
}

// printObject renders the children of one value. Scalars have none; the
// header line for the value itself was already printed by the caller.
func (p *Printer) printObject(obj object.Object, doc *object.Document, cursor Cursor) {
	switch v := obj.(type) {
	case object.Array:
		p.printArray(v, doc, cursor)
	case *object.Dictionary:
		p.printDictionary(v, doc, cursor)
	case *object.Stream:
		p.printStream(v, cursor)
	case object.Reference:
		p.printReference(v, doc, cursor)
	}
}

// printArray renders array elements with the truncation policy: with a
// limit L (minimum 2) and more than L elements, the first L-1 elements and
// the last one render, and one skipped-items marker stands in for the rest.
func (p *Printer) printArray(arr object.Array, doc *object.Document, cursor Cursor) {
	count := len(arr)
	limit := p.Settings.ArrayDisplayLimit
	if limit > 0 && limit < 2 {
		limit = 2
	}

	for i, item := range arr {
		if limit > 0 {
			switch {
			case i < limit-1 || i == count-1:
				// kept
			case i == count-2:
				marker := fmt.Sprintf("...skipped %d items...", count-limit)
				cursor.Print(p.Styler.Paint(RoleSkipped, marker), false)
				continue
			default:
				continue
			}
		}

		isLast := i+1 == count
		child := cursor.Push("", !isLast)

		info := Format(item, p.Settings, p.Styler, p.Logger)
		cursor.Print(headerLine("", info, p.Settings, p.Styler), isLast)
		p.printObject(item, doc, child)
	}
}

// printReference resolves an indirect reference and descends into its
// target. A missing target renders one inline error line. A target that is
// an ancestor of this path renders an elision hint instead of recursing,
// unless parent display is enabled.
func (p *Printer) printReference(ref object.Reference, doc *object.Document, cursor Cursor) {
	id := ref.ID()
	target, ok := doc.Get(id)
	if !ok {
		cursor.Print(p.Styler.Paint(RoleError, "Error in PDF: Indirect Reference not found."), true)
		return
	}

	if !p.Settings.DisplayParent && cursor.IsAncestor(id) {
		cursor.Print(p.Styler.Paint(RoleExpandInfo, "... (display with `display-parent` flag)"), true)
		return
	}

	info := Format(target, p.Settings, p.Styler, p.Logger)
	cursor.Print(headerLine("", info, p.Settings, p.Styler), true)

	child := cursor.Push("", false).WithAncestor(id)
	p.printObject(target, doc, child)
}
