package execx

import (
	"bytes"
	"context"
	"os/exec"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/goborg/pkg/fileutil"
)

// ErrTimeout indicates the child process was killed because it exceeded the
// deadline in Spec.Timeout. It is distinct from a non-zero exit: the
// operation was abandoned, not completed.
var ErrTimeout = errors.New("child process exceeded deadline and was killed")

// StartError indicates the child process could not be started at all:
// the binary was not found on the search path, the fork/exec primitive
// failed, or the stdin payload could not be prepared.
type StartError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *StartError) Error() string {
	return "starting " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *StartError) Unwrap() error { return e.Err }

// Spec describes a single child-process invocation. It is built once per
// call and never reused.
type Spec struct {
	// Path is the binary to execute, resolved against $PATH if relative.
	Path string

	// Args are the argv elements after the binary name. No shell is
	// involved at any point.
	Args []string

	// Env is the complete child environment. A nil Env inherits the
	// parent's environment unchanged.
	Env []string

	// StdinPath, when non-empty, names a file whose content is written to
	// the child's stdin, which is then closed. Used only for passphrase
	// streaming.
	StdinPath string

	// Dir is the working directory for the child. Empty means inherit.
	Dir string

	// Timeout kills the child when exceeded. Zero means no deadline.
	Timeout time.Duration
}

// Result is the outcome of one finished invocation.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// Runner abstracts the process-invocation primitive so the command
// construction, classification, and decoding layers above are shared between
// the blocking and the cancellable execution strategies.
type Runner interface {
	Run(ctx context.Context, spec Spec) (*Result, error)
}

// Blocking returns a Runner that runs the child on the calling goroutine
// and ignores the context. Timeouts are still enforced.
func Blocking() Runner { return blockingRunner{} }

// Interruptible returns a Runner that honors context cancellation. The
// child is killed before Run returns when the context is done.
func Interruptible() Runner { return interruptibleRunner{} }

type blockingRunner struct{}

func (blockingRunner) Run(_ context.Context, spec Spec) (*Result, error) {
	// Same execution path as the interruptible runner, but detached from
	// the caller's context. The fresh context exists only to carry the
	// Timeout deadline, which keeps the kill-versus-normal-exit handling
	// in one place.
	return runWithContext(context.Background(), spec)
}

type interruptibleRunner struct{}

func (interruptibleRunner) Run(ctx context.Context, spec Spec) (*Result, error) {
	return runWithContext(ctx, spec)
}

// runWithContext runs the child under ctx, layering the Spec.Timeout on
// top as a deadline whose cause is ErrTimeout.
func runWithContext(ctx context.Context, spec Spec) (*Result, error) {
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, spec.Timeout, ErrTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	// Give the child a short grace window to flush pipes after the kill
	// signal before the pipes are forcibly closed.
	cmd.WaitDelay = 3 * time.Second

	cmd, err := prepare(cmd, spec)
	if err != nil {
		return nil, err
	}

	res, err := runPrepared(cmd)
	if ctxErr := context.Cause(ctx); ctxErr != nil {
		// The kill came from us, not from borg. Report why.
		return nil, ctxErr
	}
	return res, err
}

// prepare resolves the binary, wires the stdin payload, and sets the
// working directory and environment. It never starts the process.
func prepare(cmd *exec.Cmd, spec Spec) (*exec.Cmd, error) {
	path, err := exec.LookPath(spec.Path)
	if err != nil {
		return nil, &StartError{Path: spec.Path, Err: err}
	}
	cmd.Path = path

	if spec.StdinPath != "" {
		payload, err := fileutil.ReadFileWithLimit(spec.StdinPath)
		if err != nil {
			return nil, &StartError{Path: spec.Path, Err: errors.Wrap(err, "reading stdin payload")}
		}
		cmd.Stdin = bytes.NewReader(payload)
	}

	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	return cmd, nil
}

// runPrepared starts the child, waits for it, and packages the outcome.
// A non-zero exit is not an error at this layer; only start failures are.
func runPrepared(cmd *exec.Cmd) (*Result, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, &StartError{Path: cmd.Path, Err: err}
		}
	}

	return &Result{
		ExitCode: exitCode(cmd),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: duration,
	}, nil
}

// exitCode normalizes the exit status. Children killed by a signal report
// 128+signal, matching what shells and borg's own tooling observe.
func exitCode(cmd *exec.Cmd) int {
	state := cmd.ProcessState
	if state == nil {
		return -1
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return state.ExitCode()
}
