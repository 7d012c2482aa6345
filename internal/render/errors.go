package render

import (
	"fmt"
	"strings"
)

// NotFoundError indicates a template name that resolved to no file on the
// search path.
type NotFoundError struct {
	Name        string
	SearchPaths []string
}

func (e *NotFoundError) Error() string {
	if len(e.SearchPaths) == 0 {
		return fmt.Sprintf("template not found: %s", e.Name)
	}
	return fmt.Sprintf("template not found: %s (searched %s)", e.Name, strings.Join(e.SearchPaths, ", "))
}
