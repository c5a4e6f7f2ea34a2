package borg

import (
	"context"

	"github.com/thoreinstein/goborg/internal/execx"
)

// ListOptions parameterize archive listing.
type ListOptions struct {
	// Repository is the location of the repository to list.
	Repository string
}

func (o ListOptions) validate() error {
	if o.Repository == "" {
		return invalidf("Repository", "empty repository location")
	}
	return nil
}

// List returns the archives of a repository. It blocks until borg
// finishes.
func (c *Client) List(opts ListOptions) (Outcome[ListResult], error) {
	return c.listOp(context.Background(), c.blockingRunner(), opts)
}

// ListContext returns the archives of a repository and kills borg when
// ctx is cancelled.
func (c *Client) ListContext(ctx context.Context, opts ListOptions) (Outcome[ListResult], error) {
	return c.listOp(ctx, c.interruptibleRunner(), opts)
}

func (c *Client) listOp(ctx context.Context, r execx.Runner, opts ListOptions) (Outcome[ListResult], error) {
	if err := opts.validate(); err != nil {
		return Outcome[ListResult]{}, err
	}
	if err := c.Credential.validate(); err != nil {
		return Outcome[ListResult]{}, err
	}

	b := c.command()
	b.Arg("list", "--json", opts.Repository)

	res, w, err := c.run(ctx, r, c.finish(b, ""))
	if err != nil {
		return Outcome[ListResult]{}, err
	}
	return decode[ListResult](res, w)
}
