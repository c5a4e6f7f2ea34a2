package execx

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"time"

	"github.com/cockroachdb/errors"
)

// Stream runs the child like Interruptible but invokes onStderrLine for
// every line the child writes to stderr while it is still running. The
// lines are also retained in the Result so classification sees the full
// stream afterwards. Stdout is buffered as usual.
//
// borg emits progress as line-delimited JSON on stderr, so this is the
// primitive behind progress-reporting operations.
func Stream(ctx context.Context, spec Spec, onStderrLine func(line string)) (*Result, error) {
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, spec.Timeout, ErrTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.WaitDelay = 3 * time.Second

	cmd, err := prepare(cmd, spec)
	if err != nil {
		return nil, err
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, &StartError{Path: spec.Path, Err: err}
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &StartError{Path: spec.Path, Err: err}
	}

	var stderr bytes.Buffer
	scanner := bufio.NewScanner(io.TeeReader(stderrPipe, &stderr))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		onStderrLine(scanner.Text())
	}

	waitErr := cmd.Wait()
	duration := time.Since(start)

	if ctxErr := context.Cause(ctx); ctxErr != nil {
		return nil, ctxErr
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, &StartError{Path: spec.Path, Err: waitErr}
		}
	}

	return &Result{
		ExitCode: exitCode(cmd),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: duration,
	}, nil
}
