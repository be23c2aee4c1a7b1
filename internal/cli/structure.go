package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdfscope/pdfscope/pkg/object"
	"github.com/pdfscope/pdfscope/pkg/reader"
	"github.com/pdfscope/pdfscope/pkg/tree"
)

// structureCommand creates the structure command, a flat dump of every
// indirect object in the file.
func (c *CLI) structureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "structure <file.pdf|directory>",
		Short: "Dump every indirect object of the PDF",
		Long: `Dump every indirect object of the PDF.

Objects are listed in id order, one level deep, without following
references. Use the tree command for the connected view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStructure(cmd, args[0])
		},
	}
	return cmd
}

func (c *CLI) runStructure(cmd *cobra.Command, input string) error {
	path, err := resolveInput(cmd.Context(), input)
	if err != nil {
		return err
	}
	doc, err := reader.Load(path)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render("trailer"))
	dumpShallow(c, doc.Trailer)

	for _, id := range doc.IDs() {
		obj, _ := doc.Get(id)
		fmt.Printf("%s obj\n", StyleTitle.Render(fmt.Sprintf("%d %d", id.Number, id.Generation)))
		dumpObject(c, obj)
	}
	return nil
}

func dumpObject(c *CLI, obj object.Object) {
	switch v := obj.(type) {
	case *object.Dictionary:
		dumpShallow(c, v)
	case *object.Stream:
		dumpShallow(c, v.Dict)
		fmt.Println("  " + StyleDim.Render(fmt.Sprintf("stream of %d bytes", len(v.Content))))
	case object.Array:
		for i, item := range v {
			fmt.Printf("  [%d] %s\n", i, describe(c, item))
		}
	default:
		fmt.Println("  " + describe(c, obj))
	}
}

func dumpShallow(c *CLI, dict *object.Dictionary) {
	for _, entry := range dict.Entries() {
		fmt.Printf("  %s = %s\n", entry.Key, describe(c, entry.Value))
	}
}

// describe renders one value on a single line without descending into it.
func describe(c *CLI, obj object.Object) string {
	settings := tree.DefaultSettings()
	info := tree.Format(obj, settings, tree.PlainStyler{}, c.Logger)

	switch v := obj.(type) {
	case object.Array:
		return "Array of " + strconv.Itoa(len(v)) + " values"
	case *object.Dictionary:
		return "Dictionary with " + strconv.Itoa(v.Len()) + " entries"
	default:
		if info.Value == "" {
			return info.TypeName
		}
		return info.Value
	}
}
