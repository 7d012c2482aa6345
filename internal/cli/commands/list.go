package commands

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/tablegen/internal/loader"
	"github.com/leapstack-labs/tablegen/internal/schema"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var showColumns bool

	cmd := &cobra.Command{
		Use:   "list <definition>",
		Short: "List tables in a definition after normalization",
		Long: `Load and normalize a table-definition file, then print its tables.
With --columns every column is printed with its resolved type and width,
after defaults and references have been applied.`,
		Example: `  # Table summary
  tablegen list tables.yaml

  # Per-column detail
  tablegen list tables.yaml --columns`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0], showColumns)
		},
	}

	cmd.Flags().BoolVar(&showColumns, "columns", false, "Show per-column detail")

	return cmd
}

func runList(cmd *cobra.Command, path string, showColumns bool) error {
	doc, err := loader.Load(path)
	if err != nil {
		return err
	}
	if err := schema.Manipulate(doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	w := table.NewWriter()
	w.SetOutputMirror(cmd.OutOrStdout())
	w.SetStyle(table.StyleLight)

	if showColumns {
		w.AppendHeader(table.Row{"Table", "Column", "Type", "Width", "Ref"})
		for _, t := range doc.Tables {
			for _, c := range t.Columns {
				w.AppendRow(table.Row{t.Name, c.Name, c.Type, formatWidth(c), formatRef(c)})
			}
		}
	} else {
		w.AppendHeader(table.Row{"Table", "Columns"})
		for _, t := range doc.Tables {
			w.AppendRow(table.Row{t.Name, len(t.Columns)})
		}
	}

	w.Render()
	fmt.Fprintf(cmd.OutOrStdout(), "(%d tables)\n", len(doc.Tables))
	return nil
}

func formatWidth(c *schema.Column) string {
	if !c.HasWidth() {
		return ""
	}
	return strconv.Itoa(c.WidthValue())
}

func formatRef(c *schema.Column) string {
	if c.Ref == nil {
		return ""
	}
	return c.Ref.Name
}
