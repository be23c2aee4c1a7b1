package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdfscope/pdfscope/pkg/reader"
	"github.com/pdfscope/pdfscope/pkg/tree"
)

// infoCommand creates the info command, a short key/value document summary.
func (c *CLI) infoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file.pdf|directory>",
		Short: "Print a short summary of the PDF document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd, args[0])
		},
	}
	return cmd
}

func (c *CLI) runInfo(cmd *cobra.Command, input string) error {
	path, err := resolveInput(cmd.Context(), input)
	if err != nil {
		return err
	}
	doc, err := reader.Load(path)
	if err != nil {
		return err
	}

	fmt.Println("--- " + StyleTitle.Render("PDF Info") + " ---")
	printKeyValue("Version", doc.Version)
	printKeyValue("Xref table size", strconv.Itoa(doc.XrefSize))
	printKeyValue("Objects amount", strconv.Itoa(doc.Len()))
	printKeyValue("Max object id", strconv.FormatUint(uint64(doc.MaxID), 10))

	settings := tree.DefaultSettings()
	for _, entry := range doc.Trailer.Entries() {
		info := tree.Format(entry.Value, settings, tree.PlainStyler{}, c.Logger)
		value := info.Value
		if value == "" {
			value = info.TypeName
		}
		printKeyValue("Trailer."+entry.Key, value)
	}
	return nil
}
