package content

import (
	"fmt"

	"github.com/pdfscope/pdfscope/pkg/errors"
	"github.com/pdfscope/pdfscope/pkg/object"
)

// OperatorSpec describes one operator of the standard content stream
// vocabulary: a human description plus its operand shape.
//
// Exactly one of the shapes applies:
//   - Operands lists the named slots of a fixed-arity operator. Every slot
//     is required; operands beyond the list are a warning, not an error.
//   - Unbounded marks the generalized color-setting operators that accept
//     any number of operands by design.
//   - Aggregate marks the one text-positioning operator (TJ) whose operand
//     array is summarized by a custom formatter.
type OperatorSpec struct {
	Description string
	Operands    []string
	Unbounded   bool
	Aggregate   bool
}

// Operators is the semantic table for the standard operator vocabulary
// (PDF 1.7 specification, Table A.1).
var Operators = map[string]OperatorSpec{
	"b":   {Description: "Close, fill, and stroke path using nonzero winding number rule."},
	"B":   {Description: "Fill and stroke path using nonzero winding number rule."},
	"b*":  {Description: "Close, fill, and stroke path using even-odd rule."},
	"B*":  {Description: "Fill and stroke path using even-odd rule."},
	"BDC": {Description: "(PDF 1.2) Begin marked-content sequence with property list.", Operands: []string{"tag", "properties"}},
	"BI":  {Description: "Begin inline image object."},
	"BMC": {Description: "(PDF 1.2) Begin marked-content sequence.", Operands: []string{"tag"}},
	"BT":  {Description: "Begin text object."},
	"BX":  {Description: "(PDF 1.1) Begin compatibility section."},
	"c":   {Description: "Append curved segment to path (three control points).", Operands: []string{"x1", "y1", "x2", "y2", "x3", "y3"}},
	"cm":  {Description: "Concatenate matrix to current transformation matrix. `[a b 0; c d 0; e f 1]`", Operands: []string{"a", "b", "c", "d", "e", "f"}},
	"CS":  {Description: "(PDF 1.1) Set color space for stroking operations.", Operands: []string{"name"}},
	"cs":  {Description: "(PDF 1.1) Set color space for nonstroking operations.", Operands: []string{"name"}},
	"d":   {Description: "Set line dash pattern.", Operands: []string{"dashArray", "dashPhase"}},
	"d0":  {Description: "Set glyph width in Type 3 font.", Operands: []string{"wx", "wy"}},
	"d1":  {Description: "Set glyph width and bounding box in Type 3 font.", Operands: []string{"w_x", "w_y", "ll_y", "ll_x", "ur_x", "ur_y"}},
	"Do":  {Description: "Invoke named XObject.", Operands: []string{"name"}},
	"DP":  {Description: "(PDF 1.2) Define marked-content point with property list.", Operands: []string{"tag", "properties"}},
	"EI":  {Description: "End inline image object."},
	"EMC": {Description: "(PDF 1.2) End marked-content sequence."},
	"ET":  {Description: "End text object."},
	"EX":  {Description: "(PDF 1.1) End compatibility section."},
	"f":   {Description: "Fill path using nonzero winding number rule."},
	"F":   {Description: "Fill path using nonzero winding number rule (obsolete)."},
	"f*":  {Description: "Fill path using even-odd rule."},
	"G":   {Description: "Set gray level for stroking operations. (0=black, 1=white)", Operands: []string{"gray"}},
	"g":   {Description: "Set gray level for nonstroking operations. (0=black, 1=white)", Operands: []string{"gray"}},
	"gs":  {Description: "(PDF 1.2) Set parameters from graphics state parameter dictionary.", Operands: []string{"dictName"}},
	"h":   {Description: "Close subpath."},
	"i":   {Description: "Set flatness tolerance.", Operands: []string{"flatness"}},
	"ID":  {Description: "Begin inline image data."},
	"j":   {Description: "Set line join style.", Operands: []string{"lineJoin"}},
	"J":   {Description: "Set line cap style.", Operands: []string{"lineCap"}},
	"K":   {Description: "Set CMYK color for stroking operations.", Operands: []string{"cyan", "magenta", "yellow", "key/black"}},
	"k":   {Description: "Set CMYK color for nonstroking operations.", Operands: []string{"cyan", "magenta", "yellow", "key/black"}},
	"l":   {Description: "Append straight line segment to path.", Operands: []string{"x", "y"}},
	"m":   {Description: "Begin new subpath.", Operands: []string{"x", "y"}},
	"M":   {Description: "Set miter limit.", Operands: []string{"miterLimit"}},
	"MP":  {Description: "(PDF 1.2) Define marked-content point.", Operands: []string{"tag"}},
	"n":   {Description: "End path without filling or stroking."},
	"q":   {Description: "Save graphics state."},
	"Q":   {Description: "Restore graphics state."},
	"re":  {Description: "Append rectangle to path.", Operands: []string{"x", "y", "width", "height"}},
	"RG":  {Description: "Set RGB color for stroking operations.", Operands: []string{"red", "green", "blue"}},
	"rg":  {Description: "Set RGB color for nonstroking operations.", Operands: []string{"red", "green", "blue"}},
	"ri":  {Description: "Set color rendering intent.", Operands: []string{"intent"}},
	"s":   {Description: "Close and stroke path."},
	"S":   {Description: "Stroke path."},
	"SC":  {Description: "(PDF 1.1) Set color for stroking operations.", Unbounded: true},
	"sc":  {Description: "(PDF 1.1) Set color for nonstroking operations.", Unbounded: true},
	"SCN": {Description: "(PDF 1.2) Set color for stroking operations (ICCBased and special colour spaces).", Unbounded: true},
	"scn": {Description: "(PDF 1.2) Set color for nonstroking operations (ICCBased and special colour spaces).", Unbounded: true},
	"sh":  {Description: "(PDF 1.3) Paint area defined by shading pattern.", Operands: []string{"name"}},
	"T*":  {Description: "Move to start of next text line."},
	"Tc":  {Description: "Set character spacing.", Operands: []string{"charSpace"}},
	"Td":  {Description: "Move text position.", Operands: []string{"Tx", "Ty"}},
	"TD":  {Description: "Move text position and set leading.", Operands: []string{"Tx", "Ty"}},
	"Tf":  {Description: "Set text font and size.", Operands: []string{"font", "size"}},
	"Tj":  {Description: "Show text.", Operands: []string{"string"}},
	"TJ":  {Description: "Show text, allowing individual glyph positioning", Aggregate: true},
	"TL":  {Description: "Set text leading.", Operands: []string{"leading"}},
	"Tm":  {Description: "Set text matrix and text line matrix. `[a b 0; c d 0; e f 1]`", Operands: []string{"a", "b", "c", "d", "e", "f"}},
	"Tr":  {Description: "Set text rendering mode.", Operands: []string{"render"}},
	"Ts":  {Description: "Set text rise.", Operands: []string{"rise"}},
	"Tw":  {Description: "Set word spacing.", Operands: []string{"wordSpace"}},
	"Tz":  {Description: "Set horizontal text scaling.", Operands: []string{"scale"}},
	"v":   {Description: "Append curved segment to path (initial point replicated).", Operands: []string{"x2", "y2", "x3", "y3"}},
	"w":   {Description: "Set line width.", Operands: []string{"lineWidth"}},
	"W":   {Description: "Set clipping path using nonzero winding number rule."},
	"W*":  {Description: "Set clipping path using even-odd rule."},
	"y":   {Description: "Append curved segment to path (final point replicated).", Operands: []string{"x1", "y1", "x3", "y3"}},
	"'":   {Description: "Move to next line and show text.", Operands: []string{"string"}},
	`"`:   {Description: "Set word and character spacing, move to next line, and show text.", Operands: []string{"a_word", "a_char", "string"}},
}

// Arg is one named operand of a described operation.
type Arg struct {
	Name  string
	Value object.Object
}

// Info is the semantic description of one concrete operation.
type Info struct {
	Operator    string
	Description string
	// Args holds the named operands in declared order. Nil for aggregate
	// operations, whose rendering is operator-specific.
	Args []Arg
	// Aggregate reports that the operation summarizes its operand array
	// through a custom formatter (TJ).
	Aggregate bool
	// ExtraOperands counts operands beyond the declared maximum. Nonzero
	// values deserve a warning but never block rendering.
	ExtraOperands int
}

// Describe resolves an operation against the semantic table.
//
// An operator absent from the table is an unknown-operator error. A declared
// operand slot with no matching operand is a missing-operand error. Operands
// beyond the declared maximum are only reported via Info.ExtraOperands.
func Describe(op Operation) (Info, error) {
	spec, ok := Operators[op.Operator]
	if !ok {
		return Info{}, errors.New(errors.ErrCodeUnknownOperator, "operator %q is unknown", op.Operator)
	}

	info := Info{
		Operator:    op.Operator,
		Description: spec.Description,
	}

	switch {
	case spec.Aggregate:
		arr, err := operand(op, 0)
		if err != nil {
			return Info{}, err
		}
		if _, ok := arr.(object.Array); !ok {
			return Info{}, errors.New(errors.ErrCodeInvalidOperand,
				"operand 0 for %s must be an array", op.Operator)
		}
		info.Aggregate = true
		info.ExtraOperands = max(0, len(op.Operands)-1)

	case spec.Unbounded:
		for i, v := range op.Operands {
			info.Args = append(info.Args, Arg{Name: fmt.Sprintf("c%d", i), Value: v})
		}

	case len(spec.Operands) > 0:
		for i, name := range spec.Operands {
			v, err := operand(op, i)
			if err != nil {
				return Info{}, err
			}
			info.Args = append(info.Args, Arg{Name: name, Value: v})
		}
		info.ExtraOperands = max(0, len(op.Operands)-len(spec.Operands))

	default:
		// No declared slots: surface whatever is present and flag it.
		for i, v := range op.Operands {
			info.Args = append(info.Args, Arg{Name: fmt.Sprintf("Unknown_%d", i), Value: v})
		}
		info.ExtraOperands = len(op.Operands)
	}

	return info, nil
}

// operand fetches the i-th operand or reports a missing-operand error.
func operand(op Operation, i int) (object.Object, error) {
	if i >= len(op.Operands) {
		return nil, errors.New(errors.ErrCodeMissingOperand,
			"operand %d for operation %s is missing", i, op.Operator)
	}
	return op.Operands[i], nil
}
