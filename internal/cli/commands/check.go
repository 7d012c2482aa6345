package commands

import (
	"fmt"

	"github.com/leapstack-labs/tablegen/internal/loader"
	"github.com/leapstack-labs/tablegen/internal/schema"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <definition>",
		Short: "Validate a table definition without generating output",
		Long: `Load and normalize a table-definition file, reporting the first
violation found: missing names, duplicate table names, or duplicate
column names within a table.`,
		Example: `  # Validate a definition file
  tablegen check tables.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0])
		},
	}
}

func runCheck(cmd *cobra.Command, path string) error {
	doc, err := loader.Load(path)
	if err != nil {
		return err
	}
	if err := schema.Manipulate(doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	columns := 0
	for _, t := range doc.Tables {
		columns += len(t.Columns)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d tables, %d columns)\n", path, len(doc.Tables), columns)
	return nil
}
