package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/tablegen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicDocument(t *testing.T) {
	input := `
defaults:
  columns:
    - name: id
      type: INTEGER
      width: 11
tables:
  - name: customers
    columns:
      - name: id
      - name: email
        type: VARCHAR
        width: 255
        nullable: false
`

	doc, err := Parse(strings.NewReader(input), "tables.yaml")
	require.NoError(t, err)

	require.NotNil(t, doc.Defaults)
	require.Len(t, doc.Defaults.Columns, 1)
	assert.Equal(t, "id", doc.Defaults.Columns[0].Name)
	assert.Equal(t, "INTEGER", doc.Defaults.Columns[0].Type)
	require.NotNil(t, doc.Defaults.Columns[0].Width)
	assert.Equal(t, 11, *doc.Defaults.Columns[0].Width)

	require.Len(t, doc.Tables, 1)
	tbl := doc.Tables[0]
	assert.Equal(t, "customers", tbl.Name)
	require.Len(t, tbl.Columns, 2)

	email := tbl.Columns[1]
	assert.Equal(t, "VARCHAR", email.Type)
	assert.Equal(t, false, email.Extra["nullable"])
}

func TestParseRefAlias(t *testing.T) {
	input := `
tables:
  - name: customers
    columns:
      - &customer_id
        name: id
        type: INTEGER
        width: 11
  - name: orders
    columns:
      - name: customer_id
        ref: *customer_id
`

	doc, err := Parse(strings.NewReader(input), "")
	require.NoError(t, err)

	orders := doc.Tables[1]
	ref := orders.Columns[0].Ref
	require.NotNil(t, ref)
	assert.Equal(t, "id", ref.Name)
	assert.Equal(t, "INTEGER", ref.Type)
	require.NotNil(t, ref.Width)
	assert.Equal(t, 11, *ref.Width)

	// The alias decodes to the same record as the anchored column, so the
	// ref sees everything normalization later adds to it.
	assert.Same(t, doc.Tables[0].Columns[0], ref)
}

func TestParseRefSeesNormalizedFields(t *testing.T) {
	input := `
defaults:
  columns:
    - name: id
      type: INTEGER
      width: 11
tables:
  - name: customers
    columns:
      - &customer_id
        name: id
  - name: orders
    columns:
      - name: customer_id
        ref: *customer_id
`

	doc, err := Parse(strings.NewReader(input), "")
	require.NoError(t, err)
	require.NoError(t, schema.Manipulate(doc))

	fk := doc.Tables[1].Columns[0]
	assert.Equal(t, "INTEGER", fk.Type)
	require.NotNil(t, fk.Width)
	assert.Equal(t, 11, *fk.Width)
}

func TestParseInlineRef(t *testing.T) {
	input := `
tables:
  - name: orders
    columns:
      - name: customer_id
        ref: {name: id, type: INTEGER, width: 11}
`

	doc, err := Parse(strings.NewReader(input), "")
	require.NoError(t, err)

	ref := doc.Tables[0].Columns[0].Ref
	require.NotNil(t, ref)
	assert.Equal(t, "INTEGER", ref.Type)
}

func TestParseNullRef(t *testing.T) {
	input := `
tables:
  - name: orders
    columns:
      - name: customer_id
        ref: ~
`

	doc, err := Parse(strings.NewReader(input), "")
	require.NoError(t, err)
	assert.Nil(t, doc.Tables[0].Columns[0].Ref)
}

func TestParseTableMeta(t *testing.T) {
	input := `
tables:
  - name: customers
    owner: crm-team
    comment: one row per customer
`

	doc, err := Parse(strings.NewReader(input), "")
	require.NoError(t, err)
	assert.Equal(t, "crm-team", doc.Tables[0].Meta["owner"])
	assert.Equal(t, "one row per customer", doc.Tables[0].Meta["comment"])
}

func TestParseUnknownRootKey(t *testing.T) {
	input := `
tables: []
tabels:
  - name: typo
`

	_, err := Parse(strings.NewReader(input), "tables.yaml")
	require.Error(t, err)

	var unknown *UnknownKeyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "tabels", unknown.Key)
	assert.Contains(t, err.Error(), "tables.yaml")
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse(strings.NewReader("tables: ["), "broken.yaml")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "broken.yaml", parseErr.Path)
}

func TestParseEmptyDocument(t *testing.T) {
	doc, err := Parse(strings.NewReader(""), "")
	require.NoError(t, err)
	assert.Nil(t, doc.Defaults)
	assert.Empty(t, doc.Tables)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tables:\n  - name: t1\n"), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, "t1", doc.Tables[0].Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening definition file")
}
