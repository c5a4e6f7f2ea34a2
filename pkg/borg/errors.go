package borg

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// ValidationError reports an option set that is structurally invalid. It is
// produced by pure in-memory checks before any process is spawned.
type ValidationError struct {
	// Field names the offending option in Go field syntax, e.g. "Repository".
	Field string

	// Reason says what is wrong with it.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Field, e.Reason)
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// UnsupportedOptionCombinationError reports a credential mode or option that
// cannot serve the chosen operation, detected while building the command
// line.
type UnsupportedOptionCombinationError struct {
	Op     string
	Reason string
}

// Error implements the error interface.
func (e *UnsupportedOptionCombinationError) Error() string {
	return fmt.Sprintf("unsupported option combination for %s: %s", e.Op, e.Reason)
}

// SpawnError reports that the borg binary could not be started: not found
// on the search path, not executable, or the spawn primitive failed. The
// operation was never attempted and is safe to retry after fixing the cause.
type SpawnError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("could not start %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *SpawnError) Unwrap() error { return e.Err }

// TimeoutError reports that borg was killed for exceeding the configured
// deadline. Unlike ToolError, the operation did not run to completion and
// nothing can be said about what borg would have reported.
type TimeoutError struct {
	After time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("borg did not finish within %s and was killed", e.After)
}

// ToolError reports that borg ran and failed on its own error path
// (exit code 2). MsgID, when borg provided one, names the failure without
// requiring text matching; Detail carries the human-readable messages.
type ToolError struct {
	MsgID  string
	Detail string
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	if e.MsgID != "" {
		return fmt.Sprintf("borg failed (%s): %s", e.MsgID, e.Detail)
	}
	return fmt.Sprintf("borg failed: %s", e.Detail)
}

// ProcessError reports that the borg process ended abnormally for a reason
// other than borg's own error path, e.g. killed by a signal. ExitCode holds
// the raw observed code (128+signal for signal deaths).
type ProcessError struct {
	ExitCode int
	Detail   string
}

// Error implements the error interface.
func (e *ProcessError) Error() string {
	return fmt.Sprintf("borg exited abnormally with code %d: %s", e.ExitCode, e.Detail)
}

// DecodeError reports that borg signalled success but its output could not
// be parsed into the expected structure. The caller cannot trust a result
// it cannot parse, so this is an error, not a silent fallback. Raw holds
// the unmodified captured stdout for diagnostics.
type DecodeError struct {
	Raw string
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("undecodable borg output: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error { return e.Err }

// IsTimeout reports whether err is a TimeoutError.
func IsTimeout(err error) bool {
	var e *TimeoutError
	return errors.As(err, &e)
}

// IsDecode reports whether err is a DecodeError.
func IsDecode(err error) bool {
	var e *DecodeError
	return errors.As(err, &e)
}

func toolErrorID(err error) string {
	var e *ToolError
	if errors.As(err, &e) {
		return e.MsgID
	}
	return ""
}
