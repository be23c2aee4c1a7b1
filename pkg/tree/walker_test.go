package tree

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/pdfscope/pdfscope/pkg/object"
)

func testSettings() Settings {
	s := DefaultSettings()
	s.DisplayLegend = false
	return s
}

func render(t *testing.T, doc *object.Document, settings Settings) string {
	t.Helper()
	var buf bytes.Buffer
	p := NewPrinter(settings, PlainStyler{}, log.New(io.Discard))
	p.PrintDocument(&buf, doc, "test.pdf", CursorSettings{})
	return buf.String()
}

func renderLines(t *testing.T, doc *object.Document, settings Settings) []string {
	t.Helper()
	out := strings.TrimRight(render(t, doc, settings), "\n")
	return strings.Split(out, "\n")
}

func TestPrintScalars(t *testing.T) {
	doc := object.NewDocument()
	doc.Trailer.Set("Count", object.Integer(7))
	doc.Trailer.Set("Kids", object.Name("none"))

	lines := renderLines(t, doc, testSettings())
	want := []string{
		"test.pdf",
		"├ Z  Count = 7",
		"└ Nm Kids = 'none'",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestArrayTruncation(t *testing.T) {
	doc := object.NewDocument()
	doc.Trailer.Set("Arr", object.Array{
		object.Integer(1), object.Integer(2), object.Integer(3), object.Integer(4),
		object.Integer(5), object.Integer(6), object.Integer(7),
	})

	settings := testSettings()
	settings.ArrayDisplayLimit = 3
	lines := renderLines(t, doc, settings)

	want := []string{
		"test.pdf",
		"└ [] Arr (length: 7 values)",
		"  ├ Z  1",
		"  ├ Z  2",
		"  ├ ...skipped 4 items...",
		"  └ Z  7",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

// A single skipped item still renders as a marker instead of itself.
func TestArrayTruncationSingleSkipped(t *testing.T) {
	doc := object.NewDocument()
	doc.Trailer.Set("Arr", object.Array{
		object.Integer(1), object.Integer(2), object.Integer(3),
	})

	settings := testSettings()
	settings.ArrayDisplayLimit = 2
	out := render(t, doc, settings)

	if !strings.Contains(out, "...skipped 1 items...") {
		t.Errorf("expected skipped marker for one item, got:\n%s", out)
	}
	if strings.Contains(out, "Z  2") {
		t.Errorf("expected middle item to be elided, got:\n%s", out)
	}
}

func TestArrayTruncationLaw(t *testing.T) {
	tests := []struct {
		count, limit   int
		wantValueLines int
		wantMarker     bool
	}{
		{count: 7, limit: 3, wantValueLines: 3, wantMarker: true},
		{count: 5, limit: 5, wantValueLines: 5, wantMarker: false},
		{count: 4, limit: 5, wantValueLines: 4, wantMarker: false},
		{count: 6, limit: 5, wantValueLines: 5, wantMarker: true},
		{count: 10, limit: 0, wantValueLines: 10, wantMarker: false},
		{count: 4, limit: 1, wantValueLines: 2, wantMarker: true},
	}
	for _, tt := range tests {
		var arr object.Array
		for i := 0; i < tt.count; i++ {
			arr = append(arr, object.Integer(i))
		}
		doc := object.NewDocument()
		doc.Trailer.Set("Arr", arr)

		settings := testSettings()
		settings.ArrayDisplayLimit = tt.limit
		lines := renderLines(t, doc, settings)

		values, markers := 0, 0
		for _, line := range lines[2:] {
			if strings.Contains(line, "skipped") {
				markers++
			} else {
				values++
			}
		}
		if values != tt.wantValueLines {
			t.Errorf("count=%d limit=%d: expected %d value lines, got %d",
				tt.count, tt.limit, tt.wantValueLines, values)
		}
		wantMarkers := 0
		if tt.wantMarker {
			wantMarkers = 1
		}
		if markers != wantMarkers {
			t.Errorf("count=%d limit=%d: expected %d markers, got %d",
				tt.count, tt.limit, wantMarkers, markers)
		}
	}
}

func TestExpandPath(t *testing.T) {
	inner := object.NewDictionary()
	inner.Set("X", object.Integer(1))
	other := object.NewDictionary()
	other.Set("Y", object.Integer(2))
	a := object.NewDictionary()
	a.Set("B", inner)
	a.Set("C", other)

	doc := object.NewDocument()
	doc.Trailer.Set("A", a)
	doc.Trailer.Set("D", object.Integer(3))

	settings := testSettings()
	settings.Expand = []string{"A", "B"}
	out := render(t, doc, settings)

	for _, want := range []string{"A", "B", "X = 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	for _, reject := range []string{"C", "Y", "D"} {
		if strings.Contains(out, reject) {
			t.Errorf("expected %q to be filtered out, got:\n%s", reject, out)
		}
	}
}

func TestExpandMatchRendersAsSoleItem(t *testing.T) {
	doc := object.NewDocument()
	doc.Trailer.Set("A", object.Integer(1))
	doc.Trailer.Set("B", object.Integer(2))
	doc.Trailer.Set("C", object.Integer(3))

	settings := testSettings()
	settings.Expand = []string{"B"}
	lines := renderLines(t, doc, settings)

	if len(lines) != 2 {
		t.Fatalf("expected title plus one line, got %q", lines)
	}
	if lines[1] != "└ Z  B = 2" {
		t.Errorf("expected sole matched entry with terminal glyph, got %q", lines[1])
	}
}

func TestDepthBoundary(t *testing.T) {
	inner := object.NewDictionary()
	inner.Set("X", object.Integer(1))
	doc := object.NewDocument()
	doc.Trailer.Set("Nested", inner)

	settings := testSettings()
	settings.MaxDepth = 1
	lines := renderLines(t, doc, settings)

	want := []string{
		"test.pdf",
		"└ {} Nested",
		"  └ ... (reached `max-depth`)",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestDepthBoundaryEmptyDictionarySilent(t *testing.T) {
	doc := object.NewDocument()
	doc.Trailer.Set("Empty", object.NewDictionary())

	settings := testSettings()
	settings.MaxDepth = 1
	out := render(t, doc, settings)

	if strings.Contains(out, "max-depth") {
		t.Errorf("expected no depth marker for an empty dictionary, got:\n%s", out)
	}
}

func TestDanglingReference(t *testing.T) {
	doc := object.NewDocument()
	doc.Trailer.Set("Missing", object.Reference{Number: 99})
	doc.Trailer.Set("After", object.Integer(1))

	out := render(t, doc, testSettings())
	if !strings.Contains(out, "Error in PDF: Indirect Reference not found.") {
		t.Errorf("expected inline reference error, got:\n%s", out)
	}
	if !strings.Contains(out, "After = 1") {
		t.Errorf("expected sibling entries to keep rendering, got:\n%s", out)
	}
}

func TestCycleElision(t *testing.T) {
	child := object.NewDictionary()
	child.Set("Parent", object.Reference{Number: 1})
	parent := object.NewDictionary()
	parent.Set("Kid", object.Reference{Number: 2})

	doc := object.NewDocument()
	doc.Put(object.ID{Number: 1}, parent)
	doc.Put(object.ID{Number: 2}, child)
	doc.Trailer.Set("Root", object.Reference{Number: 1})

	out := render(t, doc, testSettings())
	if got := strings.Count(out, "display-parent"); got != 1 {
		t.Errorf("expected exactly one elision hint, got %d:\n%s", got, out)
	}
}

func TestCycleDisplayParentTerminatesAtDepth(t *testing.T) {
	child := object.NewDictionary()
	child.Set("Parent", object.Reference{Number: 1})
	parent := object.NewDictionary()
	parent.Set("Kid", object.Reference{Number: 2})

	doc := object.NewDocument()
	doc.Put(object.ID{Number: 1}, parent)
	doc.Put(object.ID{Number: 2}, child)
	doc.Trailer.Set("Root", object.Reference{Number: 1})

	settings := testSettings()
	settings.DisplayParent = true
	settings.MaxDepth = 8
	out := render(t, doc, settings)

	if !strings.Contains(out, "max-depth") {
		t.Errorf("expected the depth limit to stop the cycle, got:\n%s", out)
	}
}

func TestDiamondRendersBothPaths(t *testing.T) {
	shared := object.NewDictionary()
	shared.Set("X", object.Integer(5))

	doc := object.NewDocument()
	doc.Put(object.ID{Number: 3}, shared)
	doc.Trailer.Set("A", object.Reference{Number: 3})
	doc.Trailer.Set("B", object.Reference{Number: 3})

	out := render(t, doc, testSettings())
	if got := strings.Count(out, "X = 5"); got != 2 {
		t.Errorf("expected the shared node on both paths, got %d:\n%s", got, out)
	}
	if strings.Contains(out, "display-parent") {
		t.Errorf("expected no elision on a diamond, got:\n%s", out)
	}
}

func TestFontSuppression(t *testing.T) {
	font := object.NewDictionary()
	font.Set("F1", object.Name("Helvetica"))
	doc := object.NewDocument()
	doc.Trailer.Set("Font", font)

	out := render(t, doc, testSettings())
	if !strings.Contains(out, "... (display with `display-font` flag)") {
		t.Errorf("expected font suppression hint, got:\n%s", out)
	}
	if strings.Contains(out, "Helvetica") {
		t.Errorf("expected font contents to be suppressed, got:\n%s", out)
	}

	settings := testSettings()
	settings.DisplayFont = true
	out = render(t, doc, settings)
	if !strings.Contains(out, "Helvetica") {
		t.Errorf("expected font contents with display enabled, got:\n%s", out)
	}
}

func TestStreamGate(t *testing.T) {
	stream := object.NewStream(object.NewDictionary(), []byte("BT ET"))
	doc := object.NewDocument()
	doc.Trailer.Set("Thumb", stream)

	out := render(t, doc, testSettings())
	if !strings.Contains(out, "force-stream-decoding") {
		t.Errorf("expected decoding hint for unknown label, got:\n%s", out)
	}
	if strings.Contains(out, "BT()") {
		t.Errorf("expected no decoded operations for unknown label, got:\n%s", out)
	}

	settings := testSettings()
	settings.ForceStreamDecoding = true
	out = render(t, doc, settings)
	if !strings.Contains(out, "BT()") || !strings.Contains(out, "ET()") {
		t.Errorf("expected forced decoding to print operations, got:\n%s", out)
	}
}

func TestStreamContentLabelDecodes(t *testing.T) {
	stream := object.NewStream(object.NewDictionary(), []byte("1 0 0 1 50 50 cm"))
	doc := object.NewDocument()
	doc.Trailer.Set("Contents", stream)

	out := render(t, doc, testSettings())
	if !strings.Contains(out, "cm(Z 1, Z 0, Z 0, Z 1, Z 50, Z 50)") {
		t.Errorf("expected basic operation rendering, got:\n%s", out)
	}
}

func TestLineNumbers(t *testing.T) {
	doc := object.NewDocument()
	doc.Trailer.Set("A", object.Integer(1))
	doc.Trailer.Set("B", object.Integer(2))

	var buf bytes.Buffer
	p := NewPrinter(testSettings(), PlainStyler{}, log.New(io.Discard))
	p.PrintDocument(&buf, doc, "test.pdf", CursorSettings{PrintLineNumbers: true, LineNumberPadding: 4})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[1] != "   1┃├ Z  A = 1" {
		t.Errorf("expected padded line number margin, got %q", lines[1])
	}
	if lines[2] != "   2┃└ Z  B = 2" {
		t.Errorf("expected monotonic line numbers, got %q", lines[2])
	}
}

func TestCursorBranchIsolation(t *testing.T) {
	var buf bytes.Buffer
	root := NewCursor(&buf, CursorSettings{}, PlainStyler{})

	a := root.Push("A", true).WithAncestor(object.ID{Number: 1})
	b := root.Push("B", false)

	if !a.IsAncestor(object.ID{Number: 1}) {
		t.Error("expected ancestor on the branch that recorded it")
	}
	if b.IsAncestor(object.ID{Number: 1}) {
		t.Error("expected sibling branch to have its own ancestor set")
	}
	if got := strings.Join(a.Path(), "."); got != "A" {
		t.Errorf("expected path A, got %q", got)
	}
}

func TestNextExpandLabel(t *testing.T) {
	var buf bytes.Buffer
	root := NewCursor(&buf, CursorSettings{}, PlainStyler{})

	label, err := root.NextExpandLabel(nil)
	if err != nil || label != "" {
		t.Errorf("expected no filter to pass through, got %q, %v", label, err)
	}

	label, err = root.NextExpandLabel([]string{"A", "B"})
	if err != nil || label != "A" {
		t.Errorf("expected next label A, got %q, %v", label, err)
	}

	a := root.Push("A", false)
	label, err = a.NextExpandLabel([]string{"A", "B"})
	if err != nil || label != "B" {
		t.Errorf("expected next label B, got %q, %v", label, err)
	}

	deep := a.Push("B", false).Push("C", false)
	label, err = deep.NextExpandLabel([]string{"A", "B"})
	if err != nil || label != "" {
		t.Errorf("expected satisfied filter, got %q, %v", label, err)
	}

	wrong := root.Push("X", false)
	if _, err := wrong.NextExpandLabel([]string{"A", "B"}); err == nil {
		t.Error("expected mismatch error for diverging path")
	}
}
