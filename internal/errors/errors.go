package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes for the goborg CLI, matching borg's own convention so both
// tools can be inspected by the same scripts.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitWarning indicates the command completed but borg flagged
	// something, e.g. a file changed during backup.
	ExitWarning = 1

	// ExitFailure indicates the command failed: bad input, borg error,
	// or a process that could not run.
	ExitFailure = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrNoRepository indicates no repository was configured or given.
	ErrNoRepository = errors.New("no repository configured")

	// ErrNoPassphrase indicates an encrypted repository without any
	// passphrase source.
	ErrNoPassphrase = errors.New("no passphrase available")
)

// ExitError wraps an error with an exit code and optional suggestion for
// the CLI. It implements the error interface and supports unwrapping via
// errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitFailure code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitFailure,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitFailure code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitFailure,
		Suggestion: "Run: goborg doctor",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// New, Newf, Wrap and Wrapf re-export the cockroachdb/errors primitives
// so callers need a single errors import.
func New(msg string) error { return errors.New(msg) }

// Newf formats a new error.
func Newf(format string, args ...any) error { return errors.Newf(format, args...) }

// Wrap annotates err with a message, returning nil when err is nil.
func Wrap(err error, msg string) error { return errors.Wrap(err, msg) }

// Wrapf annotates err with a formatted message, returning nil when err is nil.
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return errors.As(err, target) }
