package borg

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/goborg/internal/borglog"
	"github.com/thoreinstein/goborg/internal/cmdline"
	"github.com/thoreinstein/goborg/internal/execx"
)

// Client drives a borg binary. Each operation builds a fresh argument
// vector, runs one child process, classifies its exit, and decodes its
// output. A Client holds no process state between calls, so it is safe
// for concurrent use; borg's own repository lock serializes conflicting
// operations against the same repository.
//
// Every operation comes in two forms. The plain method (Init, Create,
// List, ...) blocks until borg finishes and ignores everything but the
// configured Timeout. The Context variant (InitContext, ...) additionally
// kills the child when ctx is cancelled.
type Client struct {
	// Options apply to every invocation.
	Options CommonOptions

	// Credential supplies the repository passphrase. The zero value
	// supplies none.
	Credential Credential

	// Timeout kills borg when a single operation exceeds it. Zero means
	// no deadline.
	Timeout time.Duration

	// Logger receives borg's own log stream, re-emitted at the levels
	// borg assigned. Nil discards it.
	Logger *slog.Logger

	blocking      execx.Runner
	interruptible execx.Runner
}

// New returns a Client with the default borg binary, no credential and
// no deadline. The zero value works the same; New exists for symmetry
// with the rest of the package's constructors.
func New() *Client {
	return &Client{
		blocking:      execx.Blocking(),
		interruptible: execx.Interruptible(),
	}
}

// command starts the argument vector every operation shares: --log-json
// first so stderr is machine-readable, then the remote-access flags.
func (c *Client) command() *cmdline.Builder {
	b := cmdline.NewBuilder()
	b.Arg("--log-json")
	c.Options.appendTo(b)
	return b
}

// finish applies the credential and seals the command line. dir is the
// child's working directory; extract is the only operation that sets it.
func (c *Client) finish(b *cmdline.Builder, dir string) cmdline.CommandLine {
	stdin := c.Credential.apply(b)
	cl := b.Build()
	cl.StdinPath = stdin
	cl.Dir = dir
	return cl
}

// requireKeyless rejects a configured credential for operations that
// never touch repository keys. Failing loudly beats silently ignoring a
// secret the caller thought was in effect.
func (c *Client) requireKeyless(op string) error {
	if !c.Credential.IsNone() {
		return &UnsupportedOptionCombinationError{
			Op:     op,
			Reason: "operation does not use repository keys; configure no credential",
		}
	}
	return nil
}

// blockingRunner returns the configured blocking runner, defaulting for
// zero-value Clients so literal construction works like New().
func (c *Client) blockingRunner() execx.Runner {
	if c.blocking == nil {
		return execx.Blocking()
	}
	return c.blocking
}

// interruptibleRunner is the cancellable counterpart of blockingRunner.
func (c *Client) interruptibleRunner() execx.Runner {
	if c.interruptible == nil {
		return execx.Interruptible()
	}
	return c.interruptible
}

// run executes the sealed command line and classifies the outcome.
// It returns the raw result for decoding plus the warning state, or a
// typed error.
func (c *Client) run(ctx context.Context, r execx.Runner, cl cmdline.CommandLine) (*execx.Result, Outcome[Unit], error) {
	spec := execx.Spec{
		Path:      c.Options.binary(),
		Args:      cl.Args,
		Env:       cl.Env,
		StdinPath: cl.StdinPath,
		Dir:       cl.Dir,
		Timeout:   c.Timeout,
	}

	res, err := r.Run(ctx, spec)
	if err != nil {
		return nil, Outcome[Unit]{}, c.mapRunError(err)
	}

	records := borglog.Parse(res.Stderr)
	if c.Logger != nil {
		borglog.Forward(c.Logger, records)
	}

	w, err := classify(res, records)
	if err != nil {
		return nil, Outcome[Unit]{}, err
	}
	return res, w, nil
}

// mapRunError translates runner failures into the public error types.
// Context cancellation passes through untranslated so callers can match
// it with errors.Is as usual.
func (c *Client) mapRunError(err error) error {
	switch {
	case errors.Is(err, execx.ErrTimeout):
		return &TimeoutError{After: c.Timeout}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	var start *execx.StartError
	if errors.As(err, &start) {
		return &SpawnError{Path: start.Path, Err: start.Err}
	}
	return &SpawnError{Path: c.Options.binary(), Err: err}
}

// decode unmarshals a --json stdout payload. borg already reported
// success at this point, so an undecodable payload is an error in its
// own right, never a silent zero value.
func decode[T any](res *execx.Result, w Outcome[Unit]) (Outcome[T], error) {
	var out Outcome[T]
	if err := json.Unmarshal(res.Stdout, &out.Value); err != nil {
		return out, &DecodeError{Raw: string(res.Stdout), Err: err}
	}
	out.Warning = w.Warning
	out.warned = w.warned
	return out, nil
}
