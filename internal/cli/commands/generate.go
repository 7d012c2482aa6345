package commands

import (
	"fmt"

	"github.com/leapstack-labs/tablegen/internal/generator"
	"github.com/spf13/cobra"
)

// GenerateOptions holds the generate command's flag values.
type GenerateOptions struct {
	Template   string
	OutDir     string
	OutFile    string
	Pattern    string
	PerTable   bool
	Properties []string
	Stdout     bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <definition>",
		Short: "Generate output from a table definition",
		Long: `Load a table-definition YAML file, normalize it (defaults, references,
uniqueness checks), and render it through a template.

By default one output file is produced for the whole document. With
--per-table the template runs once per table and the file name pattern's
{table} placeholder expands to each table's name.`,
		Example: `  # Render all tables into one schema file
  tablegen generate tables.yaml --template schema.sql.tmpl

  # One DDL file per table
  tablegen generate tables.yaml --template ddl.sql.tmpl --per-table --pattern "{table}.sql"

  # Pass properties through to the template
  tablegen generate tables.yaml -T docs.md.tmpl -p project=crm -p env=prod

  # Print to stdout instead of writing files
  tablegen generate tables.yaml -T schema.sql.tmpl --stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Template, "template", "T", "", "Template name or path")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "", "Output directory")
	cmd.Flags().StringVar(&opts.OutFile, "out-file", "", "Output file name (single-output mode)")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", "", "Per-table output file name pattern, {table} expands to the table name")
	cmd.Flags().BoolVar(&opts.PerTable, "per-table", false, "Render the template once per table")
	cmd.Flags().StringArrayVarP(&opts.Properties, "property", "p", nil, "Template property as key=value (repeatable)")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "Write output to stdout instead of files")

	return cmd
}

func runGenerate(cmd *cobra.Command, definition string, opts *GenerateOptions) error {
	cfg := getConfig()
	logger := newLogger(cfg.Verbose)

	flagProps, err := parseProperties(opts.Properties)
	if err != nil {
		return err
	}

	genOpts := generator.Options{
		Definition:   definition,
		Template:     cfg.Template,
		TemplateDirs: cfg.TemplateDirs,
		OutDir:       cfg.OutDir,
		Output:       cfg.OutFile,
		Pattern:      cfg.Pattern,
		PerTable:     cfg.PerTable,
		Properties:   mergeProperties(cfg.Properties, flagProps),
		Logger:       logger,
	}

	// Command flags beat config file values.
	if opts.Template != "" {
		genOpts.Template = opts.Template
	}
	if opts.OutDir != "" {
		genOpts.OutDir = opts.OutDir
	}
	if opts.OutFile != "" {
		genOpts.Output = opts.OutFile
	}
	if opts.Pattern != "" {
		genOpts.Pattern = opts.Pattern
	}
	if cmd.Flags().Changed("per-table") {
		genOpts.PerTable = opts.PerTable
	}

	g, err := generator.New(genOpts)
	if err != nil {
		return err
	}
	if err := g.Load(); err != nil {
		return err
	}

	if opts.Stdout {
		return g.WriteTo(cmd.OutOrStdout())
	}

	paths, err := g.Build()
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	}
	return nil
}
