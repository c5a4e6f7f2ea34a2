package borg

import (
	"context"

	"github.com/thoreinstein/goborg/internal/execx"
)

// CompactOptions parameterize free-space compaction.
type CompactOptions struct {
	// Repository is the location of the repository to compact.
	Repository string

	// Threshold is the minimum saved-space percentage that makes a
	// segment worth rewriting. Zero uses borg's default (10).
	Threshold uint
}

func (o CompactOptions) validate() error {
	if o.Repository == "" {
		return invalidf("Repository", "empty repository location")
	}
	if o.Threshold > 100 {
		return invalidf("Threshold", "%d is not a percentage", o.Threshold)
	}
	return nil
}

// Compact frees repository space held by deleted segments. Compaction
// works below the encryption layer, so the Client must carry no
// credential. It blocks until borg finishes.
func (c *Client) Compact(opts CompactOptions) (Outcome[Unit], error) {
	return c.compactOp(context.Background(), c.blockingRunner(), opts)
}

// CompactContext is Compact with cancellation; borg is killed when ctx
// ends.
func (c *Client) CompactContext(ctx context.Context, opts CompactOptions) (Outcome[Unit], error) {
	return c.compactOp(ctx, c.interruptibleRunner(), opts)
}

func (c *Client) compactOp(ctx context.Context, r execx.Runner, opts CompactOptions) (Outcome[Unit], error) {
	if err := opts.validate(); err != nil {
		return Outcome[Unit]{}, err
	}
	if err := c.requireKeyless("compact"); err != nil {
		return Outcome[Unit]{}, err
	}

	b := c.command()
	b.Arg("compact")
	b.UintOption("--threshold", opts.Threshold)
	b.Arg(opts.Repository)

	_, out, err := c.run(ctx, r, c.finish(b, ""))
	if err != nil {
		return Outcome[Unit]{}, err
	}
	return out, nil
}
