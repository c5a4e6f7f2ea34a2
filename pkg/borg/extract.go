package borg

import (
	"context"

	"github.com/thoreinstein/goborg/internal/execx"
)

// ExtractOptions parameterize archive extraction.
type ExtractOptions struct {
	// Repository is the location of the repository.
	Repository string

	// Archive is the archive to extract from.
	Archive string

	// Paths restricts extraction to the given paths within the archive.
	// Empty extracts everything.
	Paths []string

	// Destination is the directory borg runs in; borg always extracts
	// into its working directory. Empty means the current directory.
	Destination string

	// DryRun goes through the motions without writing any files.
	DryRun bool

	// NumericIDs restores owner and group by number instead of name.
	NumericIDs bool

	// StripComponents removes the given number of leading path elements.
	StripComponents uint
}

func (o ExtractOptions) validate() error {
	if o.Repository == "" {
		return invalidf("Repository", "empty repository location")
	}
	if o.Archive == "" {
		return invalidf("Archive", "empty archive name")
	}
	return nil
}

// Extract restores archive contents into the destination directory. It
// blocks until borg finishes.
func (c *Client) Extract(opts ExtractOptions) (Outcome[Unit], error) {
	return c.extractOp(context.Background(), c.blockingRunner(), opts)
}

// ExtractContext is Extract with cancellation; borg is killed when ctx
// ends. Files already restored stay on disk.
func (c *Client) ExtractContext(ctx context.Context, opts ExtractOptions) (Outcome[Unit], error) {
	return c.extractOp(ctx, c.interruptibleRunner(), opts)
}

func (c *Client) extractOp(ctx context.Context, r execx.Runner, opts ExtractOptions) (Outcome[Unit], error) {
	if err := opts.validate(); err != nil {
		return Outcome[Unit]{}, err
	}
	if err := c.Credential.validate(); err != nil {
		return Outcome[Unit]{}, err
	}

	b := c.command()
	b.Arg("extract")
	b.Flag("--dry-run", opts.DryRun)
	b.Flag("--numeric-ids", opts.NumericIDs)
	b.UintOption("--strip-components", opts.StripComponents)
	b.Arg(opts.Repository + "::" + opts.Archive)
	b.Arg(opts.Paths...)

	_, out, err := c.run(ctx, r, c.finish(b, opts.Destination))
	if err != nil {
		return Outcome[Unit]{}, err
	}
	return out, nil
}
