// Package output provides structured output and error handling for the jot CLI.
package output

import "errors"

// Exit codes. jot does not distinguish failure kinds through the exit code;
// the message text carries the category.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ExitError is an error that carries an exit code for the CLI.
// A Silent error still fails the command but prints no diagnostic.
type ExitError struct {
	Code    int
	Message string
	Cause   error
	Silent  bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues.
// Use for: bad arguments, missing configuration, paths outside the base dir.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitFailure,
		Message: message,
	}
}

// NewSystemError creates an error for system failures.
// Use for: external program failures, I/O errors.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitFailure,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitFailure,
		Message: message,
		Cause:   cause,
	}
}

// NewSilentError wraps cause in an error that aborts the command without
// printing anything. Used for Ctrl+C when quiet-on-ctrl-c is set.
func NewSilentError(cause error) *ExitError {
	msg := "interrupted"
	if cause != nil {
		msg = cause.Error()
	}
	return &ExitError{
		Code:    ExitFailure,
		Message: msg,
		Cause:   cause,
		Silent:  true,
	}
}

// IsSilent reports whether err should be suppressed from diagnostic output.
func IsSilent(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Silent
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitFailure for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitFailure
}
