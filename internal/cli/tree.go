package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdfscope/pdfscope/pkg/errors"
	"github.com/pdfscope/pdfscope/pkg/reader"
	"github.com/pdfscope/pdfscope/pkg/tree"
)

// treeFlags collects the raw flag values of the tree command. They are
// merged with the config file in resolveTreeSettings; a flag only overrides
// the file when it was set on the command line.
type treeFlags struct {
	maxDepth            int
	expand              string
	displayTypeNames    bool
	arrayDisplayLimit   int
	hexDisplayLimit     int
	displayStream       string
	displayFont         bool
	displayParent       bool
	hideLegend          bool
	enhancedOperations  bool
	operatorInfo        bool
	forceStreamDecoding bool
	lineNumbers         bool
	lineNumberPadding   int
	plain               bool
}

// treeCommand creates the tree command, the main view of pdfscope.
func (c *CLI) treeCommand() *cobra.Command {
	var f treeFlags

	cmd := &cobra.Command{
		Use:   "tree <file.pdf|directory>",
		Short: "Print the PDF's object structure as an indented tree",
		Long: `Print the PDF's object structure as an indented tree.

The tree starts at the trailer dictionary and follows every dictionary,
array, and indirect reference. Long arrays and hexadecimal strings are
truncated, references back to an ancestor are elided, and content streams
under known labels are decoded into their operator sequences.

When the argument is a directory, an interactive picker lists the PDF files
inside it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd, args[0], f)
		},
	}

	defaults := tree.DefaultSettings()
	cursorDefaults := tree.DefaultCursorSettings()

	cmd.Flags().IntVar(&f.maxDepth, "max-depth", defaults.MaxDepth, "how deep the tree should be printed")
	cmd.Flags().StringVarP(&f.expand, "expand", "e", "", "only expand from this node, labels separated by dots (example: Root.Pages.Kids)")
	cmd.Flags().BoolVar(&f.displayTypeNames, "display-type-names", defaults.DisplayTypeNames, "add type names after the property name")
	cmd.Flags().IntVar(&f.arrayDisplayLimit, "array-display-limit", defaults.ArrayDisplayLimit, "limit the amount of items printed in an array, 0 for no limit")
	cmd.Flags().IntVar(&f.hexDisplayLimit, "hex-display-limit", defaults.HexDisplayLimit, "limit the amount of bytes printed in a hexadecimal string, 0 for no limit")
	cmd.Flags().StringVar(&f.displayStream, "display-stream", "no", "how to display stream payloads: no, hex, tree")
	cmd.Flags().BoolVar(&f.displayFont, "display-font", defaults.DisplayFont, "continue expanding the tree after a Font item is found")
	cmd.Flags().BoolVar(&f.displayParent, "display-parent", defaults.DisplayParent, "continue expanding the tree after a parent reference is found")
	cmd.Flags().BoolVar(&f.hideLegend, "hide-legend", !defaults.DisplayLegend, "do not print the legend on top of the output")
	cmd.Flags().BoolVar(&f.enhancedOperations, "enhanced-operations", defaults.EnhancedOperations, "render content stream operations through the semantic operator table")
	cmd.Flags().BoolVar(&f.operatorInfo, "operator-info", defaults.OperatorInfo, "add operator descriptions to enhanced operations")
	cmd.Flags().BoolVar(&f.forceStreamDecoding, "force-stream-decoding", defaults.ForceStreamDecoding, "decode every stream, not only known content streams")
	cmd.Flags().BoolVar(&f.lineNumbers, "line-numbers", cursorDefaults.PrintLineNumbers, "prefix every line with a line number")
	cmd.Flags().IntVar(&f.lineNumberPadding, "line-number-padding", cursorDefaults.LineNumberPadding, "minimum width of the line number column")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "disable terminal styling")

	return cmd
}

func (c *CLI) runTree(cmd *cobra.Command, input string, f treeFlags) error {
	settings, cursorSettings, plain, err := resolveTreeSettings(cmd, f)
	if err != nil {
		return err
	}

	path, err := resolveInput(cmd.Context(), input)
	if err != nil {
		return err
	}

	doc, err := reader.Load(path)
	if err != nil {
		return err
	}
	reader.Decompress(doc, c.Logger)

	var styler tree.Styler = tree.ANSIStyler{}
	if plain {
		styler = tree.PlainStyler{}
	}

	p := tree.NewPrinter(settings, styler, c.Logger)
	p.PrintDocument(os.Stdout, doc, filepath.Base(path), cursorSettings)
	return nil
}

// resolveTreeSettings layers the three configuration sources: built-in
// defaults, then the config file, then any flag set on the command line.
func resolveTreeSettings(cmd *cobra.Command, f treeFlags) (tree.Settings, tree.CursorSettings, bool, error) {
	settings := tree.DefaultSettings()
	cursorSettings := tree.DefaultCursorSettings()
	plain := false

	cfg, err := loadConfig()
	if err != nil {
		return settings, cursorSettings, plain, err
	}
	cfg.applySettings(&settings, &cursorSettings, &plain)

	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		settings.MaxDepth = f.maxDepth
	}
	if flags.Changed("display-type-names") {
		settings.DisplayTypeNames = f.displayTypeNames
	}
	if flags.Changed("array-display-limit") {
		settings.ArrayDisplayLimit = f.arrayDisplayLimit
	}
	if flags.Changed("hex-display-limit") {
		settings.HexDisplayLimit = f.hexDisplayLimit
	}
	if flags.Changed("display-font") {
		settings.DisplayFont = f.displayFont
	}
	if flags.Changed("display-parent") {
		settings.DisplayParent = f.displayParent
	}
	if flags.Changed("hide-legend") {
		settings.DisplayLegend = !f.hideLegend
	}
	if flags.Changed("enhanced-operations") {
		settings.EnhancedOperations = f.enhancedOperations
	}
	if flags.Changed("operator-info") {
		settings.OperatorInfo = f.operatorInfo
	}
	if flags.Changed("force-stream-decoding") {
		settings.ForceStreamDecoding = f.forceStreamDecoding
	}
	if flags.Changed("line-numbers") {
		cursorSettings.PrintLineNumbers = f.lineNumbers
	}
	if flags.Changed("line-number-padding") {
		cursorSettings.LineNumberPadding = f.lineNumberPadding
	}
	if flags.Changed("plain") {
		plain = f.plain
	}

	if f.expand != "" {
		settings.Expand = strings.Split(f.expand, ".")
	}
	if flags.Changed("display-stream") {
		mode, err := parseStreamMode(f.displayStream)
		if err != nil {
			return settings, cursorSettings, plain, err
		}
		settings.DisplayStream = mode
	}

	return settings, cursorSettings, plain, nil
}

// parseStreamMode maps the --display-stream flag value to a StreamMode.
func parseStreamMode(s string) (tree.StreamMode, error) {
	switch strings.ToLower(s) {
	case "no", "no_display":
		return tree.StreamNone, nil
	case "hex":
		return tree.StreamHex, nil
	case "tree":
		return tree.StreamTree, nil
	default:
		return tree.StreamNone, errors.New(errors.ErrCodeInvalidInput,
			"unknown display-stream format %q, want no, hex, or tree", s)
	}
}
