// Package loader parses YAML table-definition files into schema documents.
//
// YAML anchors and aliases are the intended way to express column
// references: a column's ref field aliases another column's mapping, e.g.
//
//	tables:
//	  - name: customers
//	    columns:
//	      - &customer_id {name: id, type: INTEGER, width: 11}
//	  - name: orders
//	    columns:
//	      - {name: customer_id, ref: *customer_id}
//
// Aliased column records decode to a single shared *schema.Column, so a
// ref sees every field the referenced column picks up during
// normalization (defaults included), exactly as if both sides pointed at
// one record.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/tablegen/internal/schema"
	"gopkg.in/yaml.v3"
)

// knownRootKeys are the only keys accepted at the document root.
var knownRootKeys = map[string]bool{
	"defaults": true,
	"tables":   true,
}

// Load reads and parses the definition file at path.
func Load(path string) (*schema.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening definition file: %w", err)
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse decodes a definition document from r. The name is used in error
// messages only and may be empty.
func Parse(r io.Reader, name string) (*schema.Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading definition: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, &ParseError{Path: name, Message: fmt.Sprintf("invalid YAML: %v", err)}
	}

	doc := &schema.Document{}
	if len(root.Content) == 0 {
		return doc, nil
	}

	d := &decoder{
		path: name,
		// Aliased column nodes must decode to one shared record.
		columns: make(map[*yaml.Node]*schema.Column),
	}
	if err := d.document(root.Content[0], doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// decoder walks the YAML node tree. Column records are cached by node so
// anchors and their aliases share one *schema.Column.
type decoder struct {
	path    string
	columns map[*yaml.Node]*schema.Column
}

func (d *decoder) errorf(format string, args ...any) error {
	return &ParseError{Path: d.path, Message: fmt.Sprintf(format, args...)}
}

// deref follows alias nodes to the anchored node.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func (d *decoder) document(n *yaml.Node, doc *schema.Document) error {
	n = deref(n)
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return d.errorf("document root must be a mapping, got %s", nodeKind(n))
	}

	for i := 0; i < len(n.Content); i += 2 {
		key, value := n.Content[i].Value, n.Content[i+1]
		if !knownRootKeys[key] {
			return &UnknownKeyError{Path: d.path, Key: key}
		}
		switch key {
		case "defaults":
			defaults, err := d.defaults(value)
			if err != nil {
				return err
			}
			doc.Defaults = defaults
		case "tables":
			tables, err := d.tables(value)
			if err != nil {
				return err
			}
			doc.Tables = tables
		}
	}
	return nil
}

func (d *decoder) defaults(n *yaml.Node) (*schema.Defaults, error) {
	n = deref(n)
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf("defaults must be a mapping, got %s", nodeKind(n))
	}

	defaults := &schema.Defaults{}
	for i := 0; i < len(n.Content); i += 2 {
		key, value := n.Content[i].Value, n.Content[i+1]
		if key != "columns" {
			return nil, d.errorf("unknown defaults key %q (expected columns)", key)
		}
		columns, err := d.columnList(value)
		if err != nil {
			return nil, err
		}
		defaults.Columns = columns
	}
	return defaults, nil
}

func (d *decoder) tables(n *yaml.Node) ([]*schema.Table, error) {
	n = deref(n)
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf("tables must be a sequence, got %s", nodeKind(n))
	}

	tables := make([]*schema.Table, 0, len(n.Content))
	for _, item := range n.Content {
		t, err := d.table(item)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (d *decoder) table(n *yaml.Node) (*schema.Table, error) {
	n = deref(n)
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf("table entry must be a mapping, got %s", nodeKind(n))
	}

	t := &schema.Table{}
	for i := 0; i < len(n.Content); i += 2 {
		key, value := n.Content[i].Value, n.Content[i+1]
		switch key {
		case "name":
			if err := value.Decode(&t.Name); err != nil {
				return nil, d.errorf("table name: %v", err)
			}
		case "columns":
			columns, err := d.columnList(value)
			if err != nil {
				return nil, err
			}
			t.Columns = columns
		default:
			var v any
			if err := value.Decode(&v); err != nil {
				return nil, d.errorf("table field %q: %v", key, err)
			}
			if t.Meta == nil {
				t.Meta = make(map[string]any)
			}
			t.Meta[key] = v
		}
	}
	return t, nil
}

func (d *decoder) columnList(n *yaml.Node) ([]*schema.Column, error) {
	n = deref(n)
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf("columns must be a sequence, got %s", nodeKind(n))
	}

	columns := make([]*schema.Column, 0, len(n.Content))
	for _, item := range n.Content {
		c, err := d.column(item)
		if err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}
	return columns, nil
}

func (d *decoder) column(n *yaml.Node) (*schema.Column, error) {
	n = deref(n)
	if c, ok := d.columns[n]; ok {
		return c, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf("column entry must be a mapping, got %s", nodeKind(n))
	}

	c := &schema.Column{}
	// Cache before descending: a ref may point back at this record.
	d.columns[n] = c

	for i := 0; i < len(n.Content); i += 2 {
		key, value := n.Content[i].Value, n.Content[i+1]
		switch key {
		case "name":
			if err := value.Decode(&c.Name); err != nil {
				return nil, d.errorf("column name: %v", err)
			}
		case "type":
			if err := value.Decode(&c.Type); err != nil {
				return nil, d.errorf("column %q type: %v", c.Name, err)
			}
		case "width":
			var w int
			if err := value.Decode(&w); err != nil {
				return nil, d.errorf("column %q width: %v", c.Name, err)
			}
			c.Width = &w
		case "ref":
			if isNull(deref(value)) {
				continue
			}
			ref, err := d.column(value)
			if err != nil {
				return nil, err
			}
			c.Ref = ref
		default:
			var v any
			if err := value.Decode(&v); err != nil {
				return nil, d.errorf("column field %q: %v", key, err)
			}
			if c.Extra == nil {
				c.Extra = make(map[string]any)
			}
			c.Extra[key] = v
		}
	}
	return c, nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.DocumentNode:
		return "a document"
	default:
		return "an alias"
	}
}
