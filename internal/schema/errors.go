package schema

import "fmt"

// RecordKind identifies which scope a validation error occurred in.
type RecordKind int

const (
	// KindDefault is a column record under defaults.columns.
	KindDefault RecordKind = iota
	// KindTable is a table record.
	KindTable
	// KindColumn is a column record inside a table.
	KindColumn
)

func (k RecordKind) String() string {
	switch k {
	case KindDefault:
		return "default column"
	case KindTable:
		return "table"
	case KindColumn:
		return "column"
	default:
		return fmt.Sprintf("record(%d)", int(k))
	}
}

// MissingNameError indicates a record without the required name field.
// Table carries the owning table's name when Kind is KindColumn.
type MissingNameError struct {
	Kind  RecordKind
	Table string
}

func (e *MissingNameError) Error() string {
	if e.Kind == KindColumn && e.Table != "" {
		return fmt.Sprintf("table %q has a column with no name", e.Table)
	}
	return fmt.Sprintf("%s with no name", e.Kind)
}

// DuplicateNameError indicates a name collision within a scope: across
// defaults, across tables in the document, or across columns in one table.
type DuplicateNameError struct {
	Kind  RecordKind
	Name  string
	Table string
}

func (e *DuplicateNameError) Error() string {
	if e.Kind == KindColumn && e.Table != "" {
		return fmt.Sprintf("duplicate column %q in table %q", e.Name, e.Table)
	}
	return fmt.Sprintf("duplicate %s %q", e.Kind, e.Name)
}
