package tree

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pdfscope/pdfscope/pkg/object"
)

const legendWidth = 30

// legendExamples holds one canonical value per kind, in display order.
var legendExamples = []object.Object{
	object.Null{},
	object.Boolean(true),
	object.Integer(0),
	object.Real(0),
	object.Name(""),
	object.String{Format: object.Literal},
	object.String{Format: object.Hexadecimal},
	object.Array{},
	object.NewDictionary(),
	object.NewStream(object.NewDictionary(), nil),
	object.Reference{},
}

// PrintLegend writes the boxed symbol key: one line per value kind pairing
// the kind's symbol with its type name.
func PrintLegend(w io.Writer, styler Styler) {
	side := strings.Repeat("━", (legendWidth-8)/2)
	fmt.Fprintf(w, "┏%s Legend %s┓\n", side, side)
	for _, example := range legendExamples {
		printLegendLine(w, styler, example)
	}
	fmt.Fprintf(w, "┗%s┛\n", strings.Repeat("━", legendWidth))
}

func printLegendLine(w io.Writer, styler Styler, example object.Object) {
	info := Format(example, DefaultSettings(), styler, nil)
	plain := fmt.Sprintf("%-2s %s", info.Symbol, info.TypeName)
	styled := fmt.Sprintf("%s %s", styler.Paint(info.SymbolRole, padSymbol(info.Symbol)), info.TypeName)
	padding := legendWidth - utf8.RuneCountInString(plain) - 1
	if padding < 0 {
		padding = 0
	}
	fmt.Fprintf(w, "┃ %s%s┃\n", styled, strings.Repeat(" ", padding))
}
