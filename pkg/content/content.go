// Package content decodes PDF content stream payloads into ordered
// operator/operand instructions and carries the semantic table describing
// the standard operator vocabulary.
package content

import (
	"github.com/pdfscope/pdfscope/pkg/object"
	"github.com/pdfscope/pdfscope/pkg/reader"
)

// Operation is one instruction of a content stream: an operator token and
// the operand values that preceded it.
type Operation struct {
	Operator string
	Operands []object.Object
}

// Parse splits a decoded content stream payload into its ordered sequence
// of operations. Operand syntax is the regular PDF value syntax; a bare
// keyword terminates the pending operand list and emits one operation.
// Malformed trailing bytes end the sequence without error - everything
// decoded up to that point is returned.
func Parse(payload []byte) []Operation {
	s := reader.NewScanner(payload)
	var ops []Operation
	var operands []object.Object

	for {
		item, err := s.Next()
		if err != nil {
			return ops
		}
		switch item.Kind {
		case reader.ItemEOF:
			return ops
		case reader.ItemKeyword:
			if item.Keyword == "R" && len(operands) >= 2 {
				// "N G R" appearing in operand position is an
				// indirect reference, not an operator.
				if ref, ok := foldReference(operands); ok {
					operands = append(operands[:len(operands)-2], ref)
					continue
				}
			}
			ops = append(ops, Operation{Operator: item.Keyword, Operands: operands})
			operands = nil
		case reader.ItemValue:
			operands = append(operands, item.Value)
		case reader.ItemArrayStart, reader.ItemDictStart:
			s.SetPos(itemStart(s, item))
			obj, err := s.ScanObject()
			if err != nil {
				return ops
			}
			operands = append(operands, obj)
		default:
			// Stray ] or >> - skip it.
		}
	}
}

// itemStart rewinds the scanner to re-read a composite opener so that
// ScanObject sees the full structure.
func itemStart(s *reader.Scanner, item reader.Item) int {
	if item.Kind == reader.ItemDictStart {
		return s.Pos() - 2
	}
	return s.Pos() - 1
}

// foldReference folds the two trailing integer operands into a reference.
func foldReference(operands []object.Object) (object.Reference, bool) {
	num, ok := operands[len(operands)-2].(object.Integer)
	if !ok || num < 0 {
		return object.Reference{}, false
	}
	gen, ok := operands[len(operands)-1].(object.Integer)
	if !ok || gen < 0 {
		return object.Reference{}, false
	}
	return object.Reference{Number: uint32(num), Generation: uint16(gen)}, true
}
