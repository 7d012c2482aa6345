package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tablegen project",
		Long: `Initialize a new tablegen project with a starter configuration,
an example table definition, and a DDL template.

This creates:
  - tablegen.yaml configuration file
  - tables.yaml example table definition
  - templates/ directory with a schema template`,
		Example: `  # Initialize in current directory
  tablegen init

  # Initialize in a new directory
  tablegen init my-project

  # Force overwrite existing files
  tablegen init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := dir + "/tablegen.yaml"
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("tablegen.yaml already exists. Use --force to overwrite")
	}

	if err := copyTemplate("minimal", dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	out := cmd.OutOrStdout()
	files, _ := listTemplateFiles("minimal")
	for _, f := range files {
		fmt.Fprintf(out, "  created %s\n", f)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "tablegen project initialized!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Describe your tables in tables.yaml")
	fmt.Fprintln(out, "  2. Adjust templates/schema.sql.tmpl to taste")
	fmt.Fprintln(out, "  3. Run 'tablegen generate tables.yaml' to produce output")
	fmt.Fprintln(out, "  4. Run 'tablegen list tables.yaml --columns' to inspect the result")

	return nil
}
