package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdfscope/pdfscope/pkg/reader"
	"github.com/pdfscope/pdfscope/pkg/render"
)

// graphCommand creates the graph command, a Graphviz view of the reference
// graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output   string
		dotOnly  bool
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph <file.pdf|directory>",
		Short: "Render the PDF's reference graph as an SVG",
		Long: `Render the PDF's reference graph as an SVG.

Every indirect object becomes a node and every reference an edge, with the
trailer as the root. Use --dot to write the Graphviz DOT text instead of
rendering it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, args[0], output, dotOnly, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.svg or <input>.dot)")
	cmd.Flags().BoolVar(&dotOnly, "dot", false, "write DOT text instead of rendering SVG")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include object types and payload sizes in node labels")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, input, output string, dotOnly, detailed bool) error {
	path, err := resolveInput(cmd.Context(), input)
	if err != nil {
		return err
	}
	doc, err := reader.Load(path)
	if err != nil {
		return err
	}

	dot := render.ToDOT(doc, render.Options{Detailed: detailed})

	ext := ".svg"
	data := []byte(nil)
	if dotOnly {
		ext = ".dot"
		data = []byte(dot)
	} else {
		prog := newProgress(c.Logger)
		data, err = render.RenderSVG(cmd.Context(), dot)
		if err != nil {
			printError("Render failed")
			return fmt.Errorf("render graph: %w", err)
		}
		prog.done(fmt.Sprintf("Rendered %d objects", doc.Len()))
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(path, filepath.Ext(path)) + ext
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Graph complete")
	printFile(outputPath)
	if !dotOnly {
		printNextStep("Inspect", "pdfscope tree "+path)
	}
	return nil
}
