package render

import (
	"errors"
	"fmt"
)

// ErrTemplateNotFound is the cause of a LookupError for a name that does not
// resolve to a regular file below the root.
var ErrTemplateNotFound = errors.New("template not found")

// LookupError reports a template that could not be found under the root.
type LookupError struct {
	Name string
	Root string
	Err  error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("looking up template %q in %s: %s", e.Name, e.Root, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *LookupError) Unwrap() error {
	return e.Err
}

// RenderError reports a template that failed to parse or evaluate.
// Err is usually a *pongo2.Error carrying file, line and column.
type RenderError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering template %q: %s", e.Name, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *RenderError) Unwrap() error {
	return e.Err
}
