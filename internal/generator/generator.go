// Package generator wires the pipeline together: load a definition file,
// normalize it, and render it through templates into output files.
package generator

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/leapstack-labs/tablegen/internal/loader"
	"github.com/leapstack-labs/tablegen/internal/render"
	"github.com/leapstack-labs/tablegen/internal/schema"
)

const tablePlaceholder = "{table}"

// Options configures a Generator. Zero fields fall back to defaults.
type Options struct {
	// Definition is the path to the table-definition YAML file.
	Definition string
	// Template is the template name or path, resolved via TemplateDirs.
	Template string
	// TemplateDirs is the ordered template search path.
	TemplateDirs []string
	// OutDir is the directory output files are written to.
	OutDir string
	// Output is the file name used in single-output mode.
	Output string
	// Pattern is the per-table file name pattern; {table} expands to the
	// table name.
	Pattern string
	// PerTable renders the template once per table instead of once for
	// the whole document.
	PerTable bool
	// Properties are free-form key/value pairs exposed to templates.
	Properties map[string]string
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

func defaultOptions() Options {
	return Options{
		OutDir:  ".",
		Output:  "tables.sql",
		Pattern: tablePlaceholder + ".sql",
	}
}

// Generator renders a normalized definition document to output text.
type Generator struct {
	opts   Options
	logger *slog.Logger
	engine *render.Engine
	doc    *schema.Document
}

// New creates a generator. Unset options are filled from defaults.
func New(opts Options) (*Generator, error) {
	if err := mergo.Merge(&opts, defaultOptions()); err != nil {
		return nil, fmt.Errorf("applying default options: %w", err)
	}
	if opts.Definition == "" {
		return nil, fmt.Errorf("definition file is required")
	}
	if opts.Template == "" {
		return nil, fmt.Errorf("template is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Generator{
		opts:   opts,
		logger: logger,
		engine: render.NewEngine(opts.TemplateDirs),
	}, nil
}

// Load parses the definition file and normalizes it. It must be called
// before Build or WriteTo.
func (g *Generator) Load() error {
	doc, err := loader.Load(g.opts.Definition)
	if err != nil {
		return err
	}
	if err := schema.Manipulate(doc); err != nil {
		return fmt.Errorf("%s: %w", g.opts.Definition, err)
	}

	g.doc = doc
	g.logger.Debug("loaded definition",
		"path", g.opts.Definition,
		"tables", len(doc.Tables))
	return nil
}

// Document returns the normalized document, or nil before Load.
func (g *Generator) Document() *schema.Document {
	return g.doc
}

// Build renders the document into files under OutDir and returns the
// written paths. In per-table mode each table produces one file named by
// Pattern; otherwise a single file named Output is written.
func (g *Generator) Build() ([]string, error) {
	if g.doc == nil {
		return nil, fmt.Errorf("definition not loaded")
	}
	if err := os.MkdirAll(g.opts.OutDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	if !g.opts.PerTable {
		text, err := g.engine.Document(g.opts.Template, g.doc, g.opts.Properties)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(g.opts.OutDir, g.opts.Output)
		if err := g.writeFile(path, text); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	paths := make([]string, 0, len(g.doc.Tables))
	for _, t := range g.doc.Tables {
		text, err := g.engine.Table(g.opts.Template, t, g.opts.Properties)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", t.Name, err)
		}
		path := filepath.Join(g.opts.OutDir, expandPattern(g.opts.Pattern, t.Name))
		if err := g.writeFile(path, text); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteTo renders the document to a single writer instead of files.
// Per-table mode concatenates the per-table renderings in document order.
func (g *Generator) WriteTo(w io.Writer) error {
	if g.doc == nil {
		return fmt.Errorf("definition not loaded")
	}

	if !g.opts.PerTable {
		text, err := g.engine.Document(g.opts.Template, g.doc, g.opts.Properties)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, text)
		return err
	}

	for _, t := range g.doc.Tables {
		text, err := g.engine.Table(g.opts.Template, t, g.opts.Properties)
		if err != nil {
			return fmt.Errorf("table %q: %w", t.Name, err)
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	g.logger.Debug("wrote output", "path", path, "bytes", len(text))
	return nil
}

// expandPattern substitutes the table name into a file name pattern.
func expandPattern(pattern, table string) string {
	return strings.ReplaceAll(pattern, tablePlaceholder, table)
}
