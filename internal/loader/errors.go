package loader

import "fmt"

// ParseError indicates the definition file is not valid YAML or does not
// decode into the document shape.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// UnknownKeyError indicates an unrecognized top-level key in the
// definition file. Table and column records accept free-form fields, the
// document root does not.
type UnknownKeyError struct {
	Path string
	Key  string
}

func (e *UnknownKeyError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: unknown key %q (expected defaults, tables)", e.Path, e.Key)
	}
	return fmt.Sprintf("unknown key %q (expected defaults, tables)", e.Key)
}
