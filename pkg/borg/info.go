package borg

import (
	"context"

	"github.com/thoreinstein/goborg/internal/execx"
)

// InfoOptions parameterize repository and archive inspection.
type InfoOptions struct {
	// Repository is the location of the repository to inspect.
	Repository string

	// Archive restricts the query to one named archive. Mutually
	// exclusive with First, Last and GlobArchives.
	Archive string

	// First limits the query to the N oldest archives.
	First uint

	// Last limits the query to the N newest archives.
	Last uint

	// GlobArchives restricts the query to archives matching a shell
	// pattern.
	GlobArchives string
}

func (o InfoOptions) validate() error {
	if o.Repository == "" {
		return invalidf("Repository", "empty repository location")
	}
	if o.Archive != "" && (o.First != 0 || o.Last != 0 || o.GlobArchives != "") {
		return invalidf("Archive", "archive selection flags cannot combine with a fixed archive name")
	}
	return nil
}

func (o InfoOptions) target() string {
	if o.Archive != "" {
		return o.Repository + "::" + o.Archive
	}
	return o.Repository
}

// Info returns repository details and, when archives are selected, their
// statistics. It blocks until borg finishes.
func (c *Client) Info(opts InfoOptions) (Outcome[InfoResult], error) {
	return c.infoOp(context.Background(), c.blockingRunner(), opts)
}

// InfoContext is Info with cancellation; borg is killed when ctx ends.
func (c *Client) InfoContext(ctx context.Context, opts InfoOptions) (Outcome[InfoResult], error) {
	return c.infoOp(ctx, c.interruptibleRunner(), opts)
}

func (c *Client) infoOp(ctx context.Context, r execx.Runner, opts InfoOptions) (Outcome[InfoResult], error) {
	if err := opts.validate(); err != nil {
		return Outcome[InfoResult]{}, err
	}
	if err := c.Credential.validate(); err != nil {
		return Outcome[InfoResult]{}, err
	}

	b := c.command()
	b.Arg("info", "--json")
	b.UintOption("--first", opts.First)
	b.UintOption("--last", opts.Last)
	b.Option("--glob-archives", opts.GlobArchives)
	b.Arg(opts.target())

	res, w, err := c.run(ctx, r, c.finish(b, ""))
	if err != nil {
		return Outcome[InfoResult]{}, err
	}
	return decode[InfoResult](res, w)
}
