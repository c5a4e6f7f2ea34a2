package borg

import (
	"context"

	"github.com/thoreinstein/goborg/internal/execx"
)

// Deleting a whole repository normally stops for an interactive
// confirmation; the acknowledgement travels by environment instead.
const envDeleteAck = "BORG_DELETE_I_KNOW_WHAT_I_AM_DOING"

// DeleteOptions parameterize archive or repository deletion. Either
// Archive names what to delete, or All must be set explicitly to delete
// the whole repository.
type DeleteOptions struct {
	// Repository is the location of the repository.
	Repository string

	// Archive is the archive to delete. Empty only with All.
	Archive string

	// AdditionalArchives are further archives deleted in the same run.
	AdditionalArchives []string

	// All deletes the entire repository including its local cache.
	// Deliberately not inferable from an empty Archive.
	All bool

	// DryRun reports what would be deleted without deleting it.
	DryRun bool

	// Force deletes even when archives are corrupted.
	Force bool
}

func (o DeleteOptions) validate() error {
	if o.Repository == "" {
		return invalidf("Repository", "empty repository location")
	}
	if o.Archive == "" && !o.All {
		return invalidf("Archive", "no archive named; set All to delete the whole repository")
	}
	if o.Archive != "" && o.All {
		return invalidf("All", "cannot combine with a named archive")
	}
	if len(o.AdditionalArchives) > 0 && o.Archive == "" {
		return invalidf("AdditionalArchives", "requires a primary Archive")
	}
	return nil
}

// Delete removes archives, or with All the entire repository. It blocks
// until borg finishes.
func (c *Client) Delete(opts DeleteOptions) (Outcome[Unit], error) {
	return c.deleteOp(context.Background(), c.blockingRunner(), opts)
}

// DeleteContext is Delete with cancellation; borg is killed when ctx
// ends.
func (c *Client) DeleteContext(ctx context.Context, opts DeleteOptions) (Outcome[Unit], error) {
	return c.deleteOp(ctx, c.interruptibleRunner(), opts)
}

func (c *Client) deleteOp(ctx context.Context, r execx.Runner, opts DeleteOptions) (Outcome[Unit], error) {
	if err := opts.validate(); err != nil {
		return Outcome[Unit]{}, err
	}
	if err := c.Credential.validate(); err != nil {
		return Outcome[Unit]{}, err
	}

	b := c.command()
	b.Arg("delete")
	b.Flag("--dry-run", opts.DryRun)
	b.Flag("--force", opts.Force)
	if opts.All {
		b.Arg(opts.Repository)
		b.Setenv(envDeleteAck, "YES")
	} else {
		b.Arg(opts.Repository + "::" + opts.Archive)
		b.Arg(opts.AdditionalArchives...)
	}

	_, out, err := c.run(ctx, r, c.finish(b, ""))
	if err != nil {
		return Outcome[Unit]{}, err
	}
	return out, nil
}
