package tree

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/pdfscope/pdfscope/pkg/content"
	"github.com/pdfscope/pdfscope/pkg/object"
)

func TestFormatScalars(t *testing.T) {
	settings := DefaultSettings()
	tests := []struct {
		obj      object.Object
		symbol   string
		typeName string
		value    string
	}{
		{object.Null{}, "Nu", "Null", "<null>"},
		{object.Boolean(true), "b", "Bool", "true"},
		{object.Boolean(false), "b", "Bool", "false"},
		{object.Integer(-42), "Z", "Integer_Number", "-42"},
		{object.Real(1.5), "R", "Real_Number", "1.5"},
		{object.Real(0), "R", "Real_Number", "0"},
		{object.Name("Pages"), "Nm", "Name", "'Pages'"},
		{object.String{Data: []byte("hi")}, "az", "Literal_String", "'hi'"},
		{object.Reference{Number: 12, Generation: 1}, "IR", "Indirect_Reference", "(12, 1)"},
	}
	for _, tt := range tests {
		info := Format(tt.obj, settings, PlainStyler{}, nil)
		if info.Symbol != tt.symbol {
			t.Errorf("%#v: expected symbol %q, got %q", tt.obj, tt.symbol, info.Symbol)
		}
		if info.TypeName != tt.typeName {
			t.Errorf("%#v: expected type %q, got %q", tt.obj, tt.typeName, info.TypeName)
		}
		if info.Value != tt.value {
			t.Errorf("%#v: expected value %q, got %q", tt.obj, tt.value, info.Value)
		}
	}
}

func TestFormatContainers(t *testing.T) {
	settings := DefaultSettings()

	info := Format(object.Array{object.Integer(1), object.Integer(2)}, settings, PlainStyler{}, nil)
	if info.Value != "" || info.ExtraInfo != "(length: 2 values)" {
		t.Errorf("array: expected length annotation, got value=%q extra=%q", info.Value, info.ExtraInfo)
	}

	info = Format(object.NewDictionary(), settings, PlainStyler{}, nil)
	if info.Symbol != "{}" || info.Value != "" {
		t.Errorf("dictionary: expected bare symbol, got %#v", info)
	}

	stream := object.NewStream(object.NewDictionary(), []byte{1, 2, 3})
	info = Format(stream, settings, PlainStyler{}, nil)
	if info.Value != "" || info.ExtraInfo != "(length: 3 bytes)" {
		t.Errorf("stream: expected length annotation, got value=%q extra=%q", info.Value, info.ExtraInfo)
	}

	settings.DisplayStream = StreamHex
	info = Format(stream, settings, PlainStyler{}, nil)
	if info.Value != "[01, 02, 03]" {
		t.Errorf("stream hex: expected byte dump, got %q", info.Value)
	}

	settings.DisplayStream = StreamTree
	info = Format(stream, settings, PlainStyler{}, log.New(io.Discard))
	if info.Value != "" {
		t.Errorf("stream tree mode: expected empty value, got %q", info.Value)
	}
}

func TestHexStringTruncation(t *testing.T) {
	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i)
	}

	settings := DefaultSettings()
	settings.HexDisplayLimit = 16
	info := Format(object.String{Data: data, Format: object.Hexadecimal}, settings, PlainStyler{}, nil)

	if !strings.Contains(info.Value, "...skipped 4 bytes...") {
		t.Errorf("expected skipped marker, got %q", info.Value)
	}
	if !strings.HasPrefix(info.Value, "[00, 01, ") {
		t.Errorf("expected leading bytes, got %q", info.Value)
	}
	if !strings.HasSuffix(info.Value, ", 13]") {
		t.Errorf("expected trailing byte, got %q", info.Value)
	}
	if !strings.Contains(info.Value, "0e, ...skipped") {
		t.Errorf("expected fifteen leading bytes before the marker, got %q", info.Value)
	}
}

func TestHexStringDumpBoundaries(t *testing.T) {
	settings := DefaultSettings()

	// Exactly at the limit: everything prints, no marker.
	settings.HexDisplayLimit = 4
	info := Format(object.String{Data: []byte{1, 2, 3, 4}, Format: object.Hexadecimal}, settings, PlainStyler{}, nil)
	if info.Value != "[01, 02, 03, 04]" {
		t.Errorf("expected full dump at limit, got %q", info.Value)
	}

	// Unlimited.
	settings.HexDisplayLimit = 0
	long := make([]byte, 40)
	info = Format(object.String{Data: long, Format: object.Hexadecimal}, settings, PlainStyler{}, nil)
	if strings.Contains(info.Value, "skipped") {
		t.Errorf("expected no truncation with limit 0, got %q", info.Value)
	}

	// Empty.
	settings.HexDisplayLimit = 16
	info = Format(object.String{Format: object.Hexadecimal}, settings, PlainStyler{}, nil)
	if info.Value != "[]" {
		t.Errorf("expected empty dump, got %q", info.Value)
	}

	// Limit 1 with a single byte takes the truncation path because the
	// full-dump check runs before the clamp, leaving a dangling separator.
	settings.HexDisplayLimit = 1
	info = Format(object.String{Data: []byte{0}, Format: object.Hexadecimal}, settings, PlainStyler{}, nil)
	if info.Value != "[00, ]" {
		t.Errorf("expected pre-clamp truncation form, got %q", info.Value)
	}
}

func TestHeaderLineAssembly(t *testing.T) {
	settings := DefaultSettings()
	info := Format(object.Integer(5), settings, PlainStyler{}, nil)

	if got := headerLine("Count", info, settings, PlainStyler{}); got != "Z  Count = 5" {
		t.Errorf("labeled: got %q", got)
	}
	if got := headerLine("", info, settings, PlainStyler{}); got != "Z  5" {
		t.Errorf("unlabeled: got %q", got)
	}

	settings.DisplayTypeNames = true
	if got := headerLine("Count", info, settings, PlainStyler{}); got != "Z  Count:Integer_Number = 5" {
		t.Errorf("typed: got %q", got)
	}

	dictInfo := Format(object.NewDictionary(), settings, PlainStyler{}, nil)
	if got := headerLine("", dictInfo, settings, PlainStyler{}); got != "{} :Dictionary" {
		t.Errorf("typed container: got %q", got)
	}
}

func TestLegendDimensions(t *testing.T) {
	var buf bytes.Buffer
	PrintLegend(&buf, PlainStyler{})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 13 {
		t.Fatalf("expected 13 legend lines, got %d", len(lines))
	}
	for i, line := range lines {
		if got := utf8.RuneCountInString(line); got != legendWidth+2 {
			t.Errorf("line %d: expected width %d, got %d (%q)", i, legendWidth+2, got, line)
		}
	}
	if !strings.Contains(lines[0], "Legend") {
		t.Errorf("expected header line, got %q", lines[0])
	}
	for _, typeName := range []string{"Null", "Bool", "Integer_Number", "Hexadecimal_String", "Indirect_Reference"} {
		if !strings.Contains(buf.String(), typeName) {
			t.Errorf("expected legend to list %s", typeName)
		}
	}
}

// ===== Operation rendering =====

func opPrinter(buf *bytes.Buffer) (*Printer, Cursor) {
	p := NewPrinter(DefaultSettings(), PlainStyler{}, log.New(io.Discard))
	return p, NewCursor(buf, CursorSettings{}, PlainStyler{})
}

func TestBasicOperationRendering(t *testing.T) {
	var buf bytes.Buffer
	p, cursor := opPrinter(&buf)

	op := content.Operation{
		Operator: "Tf",
		Operands: []object.Object{object.Name("F1"), object.Integer(12)},
	}
	p.printBasicOperation(op, cursor)
	if got := strings.TrimRight(buf.String(), "\n"); got != "├ Tf(Nm 'F1', Z 12)" {
		t.Errorf("got %q", got)
	}
}

func TestBasicOperationNestedOperands(t *testing.T) {
	var buf bytes.Buffer
	p, cursor := opPrinter(&buf)

	dict := object.NewDictionary()
	dict.Set("MCID", object.Integer(0))
	op := content.Operation{
		Operator: "BDC",
		Operands: []object.Object{
			object.Name("Span"),
			dict,
		},
	}
	p.printBasicOperation(op, cursor)
	if got := strings.TrimRight(buf.String(), "\n"); got != "├ BDC(Nm 'Span', {MCID:Z 0})" {
		t.Errorf("got %q", got)
	}
}

func TestEnhancedOperationRendering(t *testing.T) {
	var buf bytes.Buffer
	p, cursor := opPrinter(&buf)
	p.Settings.EnhancedOperations = true
	p.Settings.OperatorInfo = true

	op := content.Operation{
		Operator: "Td",
		Operands: []object.Object{object.Integer(72), object.Integer(720)},
	}
	p.printEnhancedOperation(op, cursor)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"├ Td: Move text position.",
		"│ ├ Tx: Z  72",
		"│ ├ Ty: Z  720",
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

func TestEnhancedAggregateRendering(t *testing.T) {
	var buf bytes.Buffer
	p, cursor := opPrinter(&buf)
	p.Settings.EnhancedOperations = true

	op := content.Operation{
		Operator: "TJ",
		Operands: []object.Object{object.Array{
			object.String{Data: []byte("Hello")},
			object.Integer(-250),
			object.String{Data: []byte("World")},
		}},
	}
	p.printEnhancedOperation(op, cursor)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"├ TJ",
		"│ ├ 'Hello World' (abbreviated)",
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

// An operator outside the semantic table falls back to the exact basic
// rendering of that operation.
func TestEnhancedFallbackMatchesBasic(t *testing.T) {
	op := content.Operation{
		Operator: "XYZ",
		Operands: []object.Object{object.Integer(1)},
	}

	var basic, enhanced bytes.Buffer
	p, _ := opPrinter(&basic)
	p.printBasicOperation(op, NewCursor(&basic, CursorSettings{}, PlainStyler{}))
	p.Settings.EnhancedOperations = true
	p.printEnhancedOperation(op, NewCursor(&enhanced, CursorSettings{}, PlainStyler{}))

	if !bytes.Equal(basic.Bytes(), enhanced.Bytes()) {
		t.Errorf("fallback output diverges: basic=%q enhanced=%q", basic.String(), enhanced.String())
	}
}

func TestEnhancedMissingOperandFallsBack(t *testing.T) {
	op := content.Operation{Operator: "Td", Operands: []object.Object{object.Integer(1)}}

	var buf bytes.Buffer
	p, cursor := opPrinter(&buf)
	p.Settings.EnhancedOperations = true
	p.printEnhancedOperation(op, cursor)

	if got := strings.TrimRight(buf.String(), "\n"); got != "├ Td(Z 1)" {
		t.Errorf("expected basic fallback, got %q", got)
	}
}
