// Package schema defines the table-definition document model and the
// normalization pass that prepares a document for rendering.
package schema

// Document is the root of a table-definition file: shared column defaults
// plus an ordered list of tables.
type Document struct {
	Defaults *Defaults `yaml:"defaults,omitempty"`
	Tables   []*Table  `yaml:"tables,omitempty"`
}

// Defaults holds fallback column records applied by name. Defaults are
// read-only input to Manipulate; they are never mutated.
type Defaults struct {
	Columns []*Column `yaml:"columns,omitempty"`
}

// Table is a named collection of columns. Name is the table's identity and
// must be unique within the document. A table without columns is valid.
type Table struct {
	Name    string    `yaml:"name"`
	Columns []*Column `yaml:"columns,omitempty"`

	// Meta collects free-form table fields (owner, comment, engine, ...)
	// that are passed through to templates untouched.
	Meta map[string]any `yaml:",inline"`
}

// Column is a named field definition within a table.
//
// Presence is structural: an empty Type means "not set", a nil Width means
// "not set". Extra holds any additional free-form fields from the
// definition file (charset, nullable, comment, ...).
type Column struct {
	Name  string  `yaml:"name"`
	Type  string  `yaml:"type,omitempty"`
	Width *int    `yaml:"width,omitempty"`
	Ref   *Column `yaml:"ref,omitempty"`

	// Table is the back-reference to the owning table, set by Manipulate.
	// It is stored as the table name rather than a pointer so the document
	// stays an acyclic value graph.
	Table string `yaml:"-"`

	Extra map[string]any `yaml:",inline"`
}

// Table returns the table with the given name, or nil.
func (d *Document) Table(name string) *Table {
	for _, t := range d.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// HasWidth reports whether the column defines a width.
func (c *Column) HasWidth() bool {
	return c.Width != nil
}

// WidthValue returns the column width, or 0 when unset. Convenience for
// templates, which cannot dereference pointers.
func (c *Column) WidthValue() int {
	if c.Width == nil {
		return 0
	}
	return *c.Width
}
