// Package execx runs the external borg binary and captures its output.
//
// The package deliberately knows nothing about borg's flags or JSON schemas;
// it receives a fully built Spec and returns a Result with the raw exit code
// and the buffered stdout/stderr streams. Two Runner implementations are
// provided with identical semantics:
//
//   - Blocking occupies the calling goroutine until the child exits and
//     ignores the supplied context.
//   - Interruptible honors context cancellation and kills the child process
//     before returning, so a cancelled call never leaves an orphan behind.
//
// Timeouts are enforced by both runners. A timed-out child is killed and the
// call reports ErrTimeout, which callers treat differently from a tool that
// ran to completion and failed.
package execx
