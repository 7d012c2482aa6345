// Package config loads tablegen CLI configuration from file, environment
// variables, and flags.
package config

// Defaults for configuration values.
const (
	DefaultOutDir  = "."
	DefaultOutFile = "tables.sql"
	DefaultPattern = "{table}.sql"
)

// DefaultTemplateDirs is the default template search path.
var DefaultTemplateDirs = []string{"templates"}

// Config holds all CLI configuration options.
type Config struct {
	// Template is the default template name or path.
	Template string `koanf:"template"`
	// TemplateDirs is the ordered search path for template names.
	TemplateDirs []string `koanf:"template_dirs"`
	// OutDir is the directory generated files are written to.
	OutDir string `koanf:"out_dir"`
	// OutFile is the file name used in single-output mode.
	OutFile string `koanf:"out_file"`
	// Pattern names per-table output files; {table} expands to the table name.
	Pattern string `koanf:"pattern"`
	// PerTable renders one output per table.
	PerTable bool `koanf:"per_table"`
	// Properties are free-form key/value pairs exposed to templates.
	Properties map[string]string `koanf:"properties"`
	Verbose    bool              `koanf:"verbose"`
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		TemplateDirs: DefaultTemplateDirs,
		OutDir:       DefaultOutDir,
		OutFile:      DefaultOutFile,
		Pattern:      DefaultPattern,
	}
}
