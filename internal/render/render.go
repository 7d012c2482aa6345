// Package render executes user-supplied text templates against an
// enriched document. It owns template lookup and the rendering context;
// it never re-validates the document it is given.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/leapstack-labs/tablegen/internal/schema"
)

// Engine loads and executes templates. Templates are parsed once and
// cached by resolved path.
type Engine struct {
	searchPaths []string
	templates   map[string]*template.Template
}

// NewEngine creates an engine that resolves template names against the
// given directories in order. A name that is an existing path is used
// as-is.
func NewEngine(searchPaths []string) *Engine {
	return &Engine{
		searchPaths: searchPaths,
		templates:   make(map[string]*template.Template),
	}
}

// Document renders the full table list through the named template.
// The context exposes "tables" and "properties".
func (e *Engine) Document(name string, doc *schema.Document, properties map[string]string) (string, error) {
	return e.execute(name, map[string]any{
		"tables":     doc.Tables,
		"properties": properties,
	})
}

// Table renders a single table through the named template. The context
// exposes "table" and "properties".
func (e *Engine) Table(name string, tbl *schema.Table, properties map[string]string) (string, error) {
	return e.execute(name, map[string]any{
		"table":      tbl,
		"properties": properties,
	})
}

func (e *Engine) execute(name string, ctx map[string]any) (string, error) {
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("rendering template %s: %w", name, err)
	}
	return buf.String(), nil
}

// lookup resolves, parses, and caches a template by name.
func (e *Engine) lookup(name string) (*template.Template, error) {
	path, err := e.resolve(name)
	if err != nil {
		return nil, err
	}
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	tmpl, err := template.New(filepath.Base(path)).
		Option("missingkey=error").
		Funcs(sprig.FuncMap()).
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}

	e.templates[path] = tmpl
	return tmpl, nil
}

// resolve finds a template file by name on the search path.
func (e *Engine) resolve(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	for _, dir := range e.searchPaths {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", &NotFoundError{Name: name, SearchPaths: e.searchPaths}
}
