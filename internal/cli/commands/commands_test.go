package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDefinition = `
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
      - name: email
        type: VARCHAR
        width: 255
  - name: orders
    columns:
      - name: id
      - name: customer_id
        ref: *customer_id
`

func writeDefinition(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestNewGenerateCommand(t *testing.T) {
	cmd := NewGenerateCommand()

	assert.Equal(t, "generate <definition>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"template", "out-dir", "out-file", "pattern", "per-table", "property", "stdout"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestGenerateToStdout(t *testing.T) {
	definition := writeDefinition(t, testDefinition)
	tmpl := filepath.Join(t.TempDir(), "list.tmpl")
	require.NoError(t, os.WriteFile(tmpl, []byte(`{{range .tables}}{{.Name}};{{end}}`), 0o600))

	out, err := execute(t, NewGenerateCommand(), definition, "--template", tmpl, "--stdout")
	require.NoError(t, err)
	assert.Equal(t, "customers;orders;", out)
}

func TestGeneratePerTableFiles(t *testing.T) {
	definition := writeDefinition(t, testDefinition)
	tmpl := filepath.Join(t.TempDir(), "ddl.tmpl")
	require.NoError(t, os.WriteFile(tmpl, []byte(`-- {{.table.Name}}`), 0o600))
	outDir := t.TempDir()

	out, err := execute(t, NewGenerateCommand(), definition,
		"--template", tmpl, "--per-table", "--out-dir", outDir, "--pattern", "{table}.sql")
	require.NoError(t, err)
	assert.Contains(t, out, "customers.sql")
	assert.Contains(t, out, "orders.sql")

	content, err := os.ReadFile(filepath.Join(outDir, "orders.sql"))
	require.NoError(t, err)
	assert.Equal(t, "-- orders", string(content))
}

func TestGenerateProperties(t *testing.T) {
	definition := writeDefinition(t, testDefinition)
	tmpl := filepath.Join(t.TempDir(), "props.tmpl")
	require.NoError(t, os.WriteFile(tmpl, []byte(`{{index .properties "project"}}`), 0o600))

	out, err := execute(t, NewGenerateCommand(), definition,
		"--template", tmpl, "--stdout", "-p", "project=crm")
	require.NoError(t, err)
	assert.Equal(t, "crm", out)
}

func TestGenerateInvalidProperty(t *testing.T) {
	definition := writeDefinition(t, testDefinition)

	_, err := execute(t, NewGenerateCommand(), definition, "--template", "x.tmpl", "-p", "noequals")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid property")
}

func TestGenerateMissingTemplate(t *testing.T) {
	definition := writeDefinition(t, testDefinition)

	_, err := execute(t, NewGenerateCommand(), definition, "--template", "missing.tmpl", "--stdout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template not found")
}

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()
	assert.Equal(t, "check <definition>", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
}

func TestCheckValidDefinition(t *testing.T) {
	definition := writeDefinition(t, testDefinition)

	out, err := execute(t, NewCheckCommand(), definition)
	require.NoError(t, err)
	assert.Contains(t, out, "OK (2 tables, 4 columns)")
}

func TestCheckDuplicateTable(t *testing.T) {
	definition := writeDefinition(t, "tables:\n  - name: t1\n  - name: t1\n")

	_, err := execute(t, NewCheckCommand(), definition)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate table "t1"`)
}

func TestCheckColumnWithoutName(t *testing.T) {
	definition := writeDefinition(t, "tables:\n  - name: t1\n    columns:\n      - type: INTEGER\n")

	_, err := execute(t, NewCheckCommand(), definition)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `table "t1" has a column with no name`)
}

func TestListColumns(t *testing.T) {
	definition := writeDefinition(t, testDefinition)

	out, err := execute(t, NewListCommand(), definition, "--columns")
	require.NoError(t, err)

	// Defaults and refs resolved before listing.
	assert.Contains(t, out, "customers")
	assert.Contains(t, out, "customer_id")
	assert.Contains(t, out, "INTEGER")
	assert.Contains(t, out, "(2 tables)")
}

func TestListSummary(t *testing.T) {
	definition := writeDefinition(t, testDefinition)

	out, err := execute(t, NewListCommand(), definition)
	require.NoError(t, err)
	assert.Contains(t, out, "orders")
	assert.Contains(t, out, "(2 tables)")
}

func TestInitScaffold(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")

	out, err := execute(t, NewInitCommand(), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "initialized")

	for _, f := range []string{"tablegen.yaml", "tables.yaml", "templates/schema.sql.tmpl"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "expected %s to exist", f)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, NewInitCommand(), dir)
	require.NoError(t, err)

	_, err = execute(t, NewInitCommand(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = execute(t, NewInitCommand(), dir, "--force")
	require.NoError(t, err)
}

func TestInitScaffoldGenerates(t *testing.T) {
	// The scaffold must round-trip through the generator.
	dir := filepath.Join(t.TempDir(), "project")
	_, err := execute(t, NewInitCommand(), dir)
	require.NoError(t, err)

	tmpl := filepath.Join(dir, "templates", "schema.sql.tmpl")
	definition := filepath.Join(dir, "tables.yaml")

	out, err := execute(t, NewGenerateCommand(), definition,
		"--template", tmpl, "--stdout", "-p", "project=example")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE customers")
	assert.Contains(t, out, "CREATE TABLE orders")
	assert.Contains(t, out, "customer_id INTEGER(11)")
}

func TestNewVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand("1.2.3"))
	require.NoError(t, err)
	assert.Contains(t, out, "tablegen v1.2.3")
}

func TestParseProperties(t *testing.T) {
	props, err := parseProperties([]string{"a=1", "b=x=y"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "x=y"}, props)

	props, err = parseProperties(nil)
	require.NoError(t, err)
	assert.Nil(t, props)

	_, err = parseProperties([]string{"=v"})
	require.Error(t, err)
}

func TestMergeProperties(t *testing.T) {
	merged := mergeProperties(
		map[string]string{"a": "cfg", "b": "cfg"},
		map[string]string{"b": "flag"},
	)
	assert.Equal(t, map[string]string{"a": "cfg", "b": "flag"}, merged)

	assert.Nil(t, mergeProperties(nil, nil))
	assert.Equal(t, map[string]string{"x": "1"}, mergeProperties(nil, map[string]string{"x": "1"}))
}
