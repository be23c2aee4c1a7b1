package tree

import (
	"fmt"
	"strings"

	"github.com/pdfscope/pdfscope/pkg/content"
	"github.com/pdfscope/pdfscope/pkg/object"
)

// contentLabels are the dictionary labels whose streams carry page or
// appearance content and are safe to decode as operator sequences.
var contentLabels = map[string]bool{
	"Contents": true,
	"N":        true,
	"R":        true,
	"D":        true,
	"AP":       true,
}

// printStream decodes and renders a stream's operations. Streams outside
// the known content-bearing labels render a hint instead, unless decoding
// is forced.
func (p *Printer) printStream(stream *object.Stream, cursor Cursor) {
	path := cursor.Path()
	gate := p.Settings.ForceStreamDecoding
	if !gate && len(path) > 0 {
		gate = contentLabels[path[len(path)-1]]
	}
	if !gate {
		cursor.Print(p.Styler.Paint(RoleExpandInfo,
			"... (no content stream, force decoding with `force-stream-decoding` flag)"), false)
		return
	}

	for _, op := range content.Parse(stream.Content) {
		if p.Settings.EnhancedOperations {
			p.printEnhancedOperation(op, cursor)
		} else {
			p.printBasicOperation(op, cursor)
		}
	}
}

// printBasicOperation renders one operation as operator(operand, ...).
func (p *Printer) printBasicOperation(op content.Operation, cursor Cursor) {
	cursor.Print(fmt.Sprintf("%s(%s)", op.Operator, p.operandsString(op.Operands)), false)
}

// operandsString renders operands inline: arrays bracketed, dictionaries
// braced as key:value pairs, everything else as its symbol and value text.
func (p *Printer) operandsString(operands []object.Object) string {
	results := make([]string, 0, len(operands))
	for _, operand := range operands {
		info := Format(operand, p.Settings, p.Styler, p.Logger)
		switch v := operand.(type) {
		case object.Array:
			results = append(results,
				p.Styler.Paint(info.SymbolRole, "[")+
					p.operandsString(v)+
					p.Styler.Paint(info.SymbolRole, "]"))
		case *object.Dictionary:
			pairs := make([]string, 0, v.Len())
			for _, entry := range v.Entries() {
				pairs = append(pairs, entry.Key+":"+p.operandsString([]object.Object{entry.Value}))
			}
			results = append(results,
				p.Styler.Paint(info.SymbolRole, "{")+
					strings.Join(pairs, ", ")+
					p.Styler.Paint(info.SymbolRole, "}"))
		default:
			results = append(results, fmt.Sprintf("%s %s",
				p.Styler.Paint(info.SymbolRole, info.Symbol),
				p.Styler.Paint(RoleValue, info.Value)))
		}
	}
	return strings.Join(results, ", ")
}

// printEnhancedOperation renders one operation through the semantic table:
// the operator line, optionally with its description, then one child line
// per named operand. A decode failure logs a warning and falls back to the
// basic rendering of this operation only.
func (p *Printer) printEnhancedOperation(op content.Operation, cursor Cursor) {
	info, err := content.Describe(op)
	if err != nil {
		p.Logger.Warn("cannot describe operation", "operator", op.Operator, "err", err)
		p.printBasicOperation(op, cursor)
		return
	}
	if info.ExtraOperands > 0 {
		p.Logger.Warn("operation carries more operands than declared",
			"operator", op.Operator, "extra", info.ExtraOperands)
	}

	if p.Settings.OperatorInfo {
		cursor.Print(info.Operator+": "+p.Styler.Paint(RoleExtraInfo, info.Description), false)
	} else {
		cursor.Print(info.Operator, false)
	}

	child := cursor.Push(info.Operator, true)
	if info.Aggregate {
		child.Print(p.aggregateText(op), false)
		return
	}
	for _, arg := range info.Args {
		argInfo := Format(arg.Value, p.Settings, p.Styler, p.Logger)
		child.Print(fmt.Sprintf("%s: %s %s",
			arg.Name,
			p.Styler.Paint(argInfo.SymbolRole, padSymbol(argInfo.Symbol)),
			p.Styler.Paint(RoleValue, argInfo.Value)), false)
	}
}

// aggregateText summarizes a glyph-positioning operand array as one
// abbreviated string: literal strings concatenate, hexadecimal strings keep
// their dump form, and negative numbers become a single space.
func (p *Printer) aggregateText(op content.Operation) string {
	arr, _ := op.Operands[0].(object.Array)

	var b strings.Builder
	for _, item := range arr {
		switch v := item.(type) {
		case object.String:
			if v.Format == object.Literal {
				b.Write(v.Data)
			} else {
				info := Format(item, p.Settings, p.Styler, p.Logger)
				b.WriteString(p.Styler.Paint(info.SymbolRole, info.Value))
			}
		case object.Integer:
			if v < 0 {
				b.WriteByte(' ')
			}
		case object.Real:
			if v < 0 {
				b.WriteByte(' ')
			}
		default:
			p.Logger.Warn("only strings and numbers expected in glyph positioning array",
				"operator", op.Operator)
		}
	}
	return fmt.Sprintf("'%s' %s",
		p.Styler.Paint(RoleValue, b.String()),
		p.Styler.Paint(RoleSkipped, "(abbreviated)"))
}
