package borg

import (
	"context"

	"github.com/thoreinstein/goborg/internal/execx"
)

// PruneOptions parameterize retention-based archive removal. Counts of
// zero mean "rule not in effect"; at least one rule must be in effect.
type PruneOptions struct {
	// Repository is the location of the repository to prune.
	Repository string

	// KeepWithin keeps all archives younger than the interval.
	KeepWithin PruneWithin

	// KeepSecondly through KeepYearly keep the last N archives of each
	// calendar bucket.
	KeepSecondly uint
	KeepMinutely uint
	KeepHourly   uint
	KeepDaily    uint
	KeepWeekly   uint
	KeepMonthly  uint
	KeepYearly   uint

	// GlobArchives restricts pruning to archives matching a shell
	// pattern. Archives outside the pattern are never touched.
	GlobArchives string

	// CheckpointInterval is the seconds between checkpoints while
	// deleting. Zero uses borg's default.
	CheckpointInterval uint
}

func (o PruneOptions) validate() error {
	if o.Repository == "" {
		return invalidf("Repository", "empty repository location")
	}
	if !o.KeepWithin.IsZero() {
		if err := o.KeepWithin.validate(); err != nil {
			return err
		}
	}
	counted := o.KeepSecondly + o.KeepMinutely + o.KeepHourly +
		o.KeepDaily + o.KeepWeekly + o.KeepMonthly + o.KeepYearly
	if o.KeepWithin.IsZero() && counted == 0 {
		return invalidf("PruneOptions", "no retention rule in effect; pruning would delete every archive")
	}
	return nil
}

// Prune removes archives that no retention rule keeps. It blocks until
// borg finishes.
func (c *Client) Prune(opts PruneOptions) (Outcome[Unit], error) {
	return c.pruneOp(context.Background(), c.blockingRunner(), opts)
}

// PruneContext is Prune with cancellation; borg is killed when ctx ends.
func (c *Client) PruneContext(ctx context.Context, opts PruneOptions) (Outcome[Unit], error) {
	return c.pruneOp(ctx, c.interruptibleRunner(), opts)
}

func (c *Client) pruneOp(ctx context.Context, r execx.Runner, opts PruneOptions) (Outcome[Unit], error) {
	if err := opts.validate(); err != nil {
		return Outcome[Unit]{}, err
	}
	if err := c.Credential.validate(); err != nil {
		return Outcome[Unit]{}, err
	}

	b := c.command()
	b.Arg("prune")
	if !opts.KeepWithin.IsZero() {
		b.Option("--keep-within", opts.KeepWithin.String())
	}
	b.UintOption("--keep-secondly", opts.KeepSecondly)
	b.UintOption("--keep-minutely", opts.KeepMinutely)
	b.UintOption("--keep-hourly", opts.KeepHourly)
	b.UintOption("--keep-daily", opts.KeepDaily)
	b.UintOption("--keep-weekly", opts.KeepWeekly)
	b.UintOption("--keep-monthly", opts.KeepMonthly)
	b.UintOption("--keep-yearly", opts.KeepYearly)
	b.Option("--glob-archives", opts.GlobArchives)
	b.UintOption("--checkpoint-interval", opts.CheckpointInterval)
	b.Arg(opts.Repository)

	_, out, err := c.run(ctx, r, c.finish(b, ""))
	if err != nil {
		return Outcome[Unit]{}, err
	}
	return out, nil
}
