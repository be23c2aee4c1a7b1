package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pdfscope/pdfscope/pkg/object"
)

// PrintInfo is the display form of one value: a two-character symbol with
// its style role, a type name, the inline value text (possibly empty), and
// an optional trailing annotation.
type PrintInfo struct {
	Symbol     string
	SymbolRole Role
	TypeName   string
	Value      string
	ExtraInfo  string
}

// Format maps one value to its display form. It is side-effect-free except
// for the structured stream mode, which is unimplemented and logs an error
// instead of producing output. A nil logger falls back to the default.
func Format(obj object.Object, settings Settings, styler Styler, logger *log.Logger) PrintInfo {
	if logger == nil {
		logger = log.Default()
	}
	switch v := obj.(type) {
	case object.Null, nil:
		return PrintInfo{Symbol: "Nu", SymbolRole: RoleNull, TypeName: "Null", Value: "<null>"}
	case object.Boolean:
		return PrintInfo{Symbol: "b", SymbolRole: RoleBoolean, TypeName: "Bool", Value: strconv.FormatBool(bool(v))}
	case object.Integer:
		return PrintInfo{Symbol: "Z", SymbolRole: RoleInteger, TypeName: "Integer_Number", Value: strconv.FormatInt(int64(v), 10)}
	case object.Real:
		return PrintInfo{Symbol: "R", SymbolRole: RoleReal, TypeName: "Real_Number", Value: strconv.FormatFloat(float64(v), 'f', -1, 64)}
	case object.Name:
		return PrintInfo{Symbol: "Nm", SymbolRole: RoleName, TypeName: "Name", Value: "'" + string(v) + "'"}
	case object.String:
		if v.Format == object.Hexadecimal {
			return PrintInfo{
				Symbol:     "0x",
				SymbolRole: RoleHexString,
				TypeName:   "Hexadecimal_String",
				Value:      hexDump(v.Data, settings.HexDisplayLimit, styler),
			}
		}
		return PrintInfo{Symbol: "az", SymbolRole: RoleLiteralString, TypeName: "Literal_String", Value: "'" + string(v.Data) + "'"}
	case object.Array:
		return PrintInfo{
			Symbol:     "[]",
			SymbolRole: RoleArray,
			TypeName:   "Array",
			ExtraInfo:  fmt.Sprintf("(length: %d values)", len(v)),
		}
	case *object.Dictionary:
		return PrintInfo{Symbol: "{}", SymbolRole: RoleDictionary, TypeName: "Dictionary"}
	case *object.Stream:
		info := PrintInfo{
			Symbol:     "S",
			SymbolRole: RoleStream,
			TypeName:   "Stream",
			ExtraInfo:  fmt.Sprintf("(length: %d bytes)", len(v.Content)),
		}
		switch settings.DisplayStream {
		case StreamHex:
			info.Value = hexDump(v.Content, 0, styler)
		case StreamTree:
			logger.Error("setting `display-stream` = `tree` is not implemented yet")
		}
		return info
	case object.Reference:
		return PrintInfo{
			Symbol:     "IR",
			SymbolRole: RoleReference,
			TypeName:   "Indirect_Reference",
			Value:      v.ID().String(),
		}
	default:
		return PrintInfo{Symbol: "??", SymbolRole: RoleError, TypeName: "Unknown"}
	}
}

// hexDump renders a byte sequence as "[aa, bb, cc]" with the truncation
// policy applied for limit > 0. The effective limit is never below 2. With
// more bytes than the limit allows, the first limit-1 bytes and the last
// byte are kept and one skipped-bytes marker replaces the rest.
//
// The full-dump check compares against the limit as configured, before the
// clamp to 2: a limit of 1 sends even a 1-byte string down the truncation
// path, where the loop emits a dangling separator. Keep it that way; output
// is compared byte for byte against existing dumps.
func hexDump(data []byte, limit int, styler Styler) string {
	if limit == 0 || len(data) < limit {
		return plainHexDump(data)
	}

	if limit < 2 {
		limit = 2
	}
	count := len(data)
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range data {
		switch {
		case i < limit-1:
			fmt.Fprintf(&b, "%02x, ", item)
		case i == count-1:
			fmt.Fprintf(&b, "%02x", item)
		case i == count-2:
			marker := fmt.Sprintf("...skipped %d bytes...", count-limit)
			b.WriteString(styler.Paint(RoleSkipped, marker))
			b.WriteString(", ")
		}
	}
	b.WriteByte(']')
	return b.String()
}

func plainHexDump(data []byte) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range data {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%02x", item)
	}
	b.WriteByte(']')
	return b.String()
}

// headerLine assembles one tree line for a value: padded symbol, optional
// label, optional type name, inline value, and trailing annotation.
func headerLine(label string, info PrintInfo, settings Settings, styler Styler) string {
	parts := []string{styler.Paint(info.SymbolRole, padSymbol(info.Symbol))}

	var typePart string
	if settings.DisplayTypeNames {
		typePart = styler.Paint(RoleHelper, ":") + styler.Paint(RoleType, info.TypeName)
	}

	switch {
	case label != "":
		parts = append(parts, label+typePart)
		if info.Value != "" {
			parts = append(parts, styler.Paint(RoleHelper, "="), styler.Paint(RoleValue, info.Value))
		}
	case info.Value != "":
		parts = append(parts, styler.Paint(RoleValue, info.Value))
	case typePart != "":
		parts = append(parts, typePart)
	}

	if info.ExtraInfo != "" {
		parts = append(parts, styler.Paint(RoleExtraInfo, info.ExtraInfo))
	}
	return strings.Join(parts, " ")
}

// padSymbol left-aligns the symbol in a two-character column before any
// styling is applied, so escape codes do not break alignment.
func padSymbol(symbol string) string {
	return fmt.Sprintf("%-2s", symbol)
}
