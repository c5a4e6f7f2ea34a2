package borg

import (
	"context"

	"github.com/thoreinstein/goborg/internal/execx"
)

// Repair mode normally stops for an interactive confirmation. The wrapper
// never owns a terminal, so the acknowledgement travels by environment.
const envCheckAck = "BORG_CHECK_I_KNOW_WHAT_I_AM_DOING"

// CheckOptions parameterize repository and archive consistency checking.
type CheckOptions struct {
	// Repository is the location of the repository to check.
	Repository string

	// RepositoryOnly checks only the repository, skipping archives.
	// Mutually exclusive with ArchivesOnly and VerifyData.
	RepositoryOnly bool

	// ArchivesOnly checks only archive metadata, skipping the repository.
	ArchivesOnly bool

	// VerifyData additionally decrypts and verifies every data chunk.
	// Slow; implies the archive part of the check.
	VerifyData bool

	// Repair attempts to fix any inconsistencies found. Potentially
	// destructive on a damaged repository.
	Repair bool

	// First limits the archive check to the N oldest archives.
	First uint

	// Last limits the archive check to the N newest archives.
	Last uint

	// GlobArchives limits the archive check to archives matching a shell
	// pattern.
	GlobArchives string
}

func (o CheckOptions) validate() error {
	if o.Repository == "" {
		return invalidf("Repository", "empty repository location")
	}
	if o.RepositoryOnly && o.ArchivesOnly {
		return invalidf("RepositoryOnly", "cannot combine with ArchivesOnly")
	}
	if o.RepositoryOnly && o.VerifyData {
		return invalidf("RepositoryOnly", "cannot combine with VerifyData")
	}
	return nil
}

// Check verifies the consistency of a repository and its archives. It
// blocks until borg finishes, which can be a long time with VerifyData.
func (c *Client) Check(opts CheckOptions) (Outcome[Unit], error) {
	return c.checkOp(context.Background(), c.blockingRunner(), opts)
}

// CheckContext is Check with cancellation; borg is killed when ctx ends.
func (c *Client) CheckContext(ctx context.Context, opts CheckOptions) (Outcome[Unit], error) {
	return c.checkOp(ctx, c.interruptibleRunner(), opts)
}

func (c *Client) checkOp(ctx context.Context, r execx.Runner, opts CheckOptions) (Outcome[Unit], error) {
	if err := opts.validate(); err != nil {
		return Outcome[Unit]{}, err
	}
	if err := c.Credential.validate(); err != nil {
		return Outcome[Unit]{}, err
	}

	b := c.command()
	b.Arg("check")
	b.Flag("--repository-only", opts.RepositoryOnly)
	b.Flag("--archives-only", opts.ArchivesOnly)
	b.Flag("--verify-data", opts.VerifyData)
	b.Flag("--repair", opts.Repair)
	b.UintOption("--first", opts.First)
	b.UintOption("--last", opts.Last)
	b.Option("--glob-archives", opts.GlobArchives)
	b.Arg(opts.Repository)
	if opts.Repair {
		b.Setenv(envCheckAck, "YES")
	}

	_, out, err := c.run(ctx, r, c.finish(b, ""))
	if err != nil {
		return Outcome[Unit]{}, err
	}
	return out, nil
}
