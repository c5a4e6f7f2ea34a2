// Package errors provides error handling conventions for the goborg CLI.
//
// This package defines sentinel errors for common failure conditions, an
// ExitError type for CLI exit code handling, and exit code constants
// matching borg's own convention (0 success, 1 warning, 2 failure).
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports error unwrapping via [errors.Unwrap] and
// [errors.As]:
//
//	var exitErr *cliErrors.ExitError
//	if errors.As(err, &exitErr) {
//	    if exitErr.Suggestion != "" {
//	        fmt.Println("Suggestion:", exitErr.Suggestion)
//	    }
//	    os.Exit(exitErr.Code)
//	}
//
// The error primitives (New, Wrap, ...) delegate to
// github.com/cockroachdb/errors, so wrapped errors carry stack traces.
package errors
