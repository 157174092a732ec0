package output

import "errors"

// Exit codes:
// 0 = Success
// 1 = Usage error (missing or extra arguments, bad flag values)
// 2 = Metadata error (metadata file missing, unreadable, not a YAML mapping)
// 3 = Template error (template not found, bad syntax, evaluation failure)
const (
	ExitSuccess  = 0
	ExitUsage    = 1
	ExitMetadata = 2
	ExitTemplate = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
// The cause is appended so diagnostics keep the parser's or engine's detail.
func (e *ExitError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUsageError creates an error for invocation mistakes (exit code 1).
func NewUsageError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUsage,
		Message: message,
	}
}

// NewMetadataError creates an error for metadata load failures (exit code 2).
func NewMetadataError(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitMetadata,
		Message: message,
		Cause:   cause,
	}
}

// NewTemplateError creates an error for template lookup or render failures (exit code 3).
func NewTemplateError(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitTemplate,
		Message: message,
		Cause:   cause,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUsage for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// cobra reports flag parse failures as plain errors
	return ExitUsage
}
