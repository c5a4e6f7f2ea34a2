package borg

import (
	"context"

	"github.com/thoreinstein/goborg/internal/execx"
)

// MountOptions parameterize mounting a repository or archive as a FUSE
// filesystem. borg backgrounds itself after the mount succeeds, so the
// operation returns once the filesystem is up.
type MountOptions struct {
	// Repository is the location of the repository to mount.
	Repository string

	// Archive mounts a single archive instead of the whole repository.
	// Mutually exclusive with First, Last and GlobArchives.
	Archive string

	// First mounts only the N oldest archives.
	First uint

	// Last mounts only the N newest archives.
	Last uint

	// GlobArchives mounts only archives matching a shell pattern.
	GlobArchives string

	// Mountpoint is the directory the filesystem appears under. Must
	// exist and be empty.
	Mountpoint string

	// Select restricts the visible paths with ordered pattern
	// instructions.
	Select []PatternInstruction
}

func (o MountOptions) validate() error {
	if o.Repository == "" {
		return invalidf("Repository", "empty repository location")
	}
	if o.Mountpoint == "" {
		return invalidf("Mountpoint", "empty mountpoint")
	}
	if o.Archive != "" && (o.First != 0 || o.Last != 0 || o.GlobArchives != "") {
		return invalidf("Archive", "archive selection flags cannot combine with a fixed archive name")
	}
	for _, p := range o.Select {
		if err := p.validate("Select"); err != nil {
			return err
		}
	}
	return nil
}

func (o MountOptions) source() string {
	if o.Archive != "" {
		return o.Repository + "::" + o.Archive
	}
	return o.Repository
}

// Mount exposes a repository or archive as a read-only filesystem under
// the mountpoint. Unmount with Umount when done.
func (c *Client) Mount(opts MountOptions) (Outcome[Unit], error) {
	return c.mountOp(context.Background(), c.blockingRunner(), opts)
}

// MountContext is Mount with cancellation; borg is killed when ctx ends.
func (c *Client) MountContext(ctx context.Context, opts MountOptions) (Outcome[Unit], error) {
	return c.mountOp(ctx, c.interruptibleRunner(), opts)
}

func (c *Client) mountOp(ctx context.Context, r execx.Runner, opts MountOptions) (Outcome[Unit], error) {
	if err := opts.validate(); err != nil {
		return Outcome[Unit]{}, err
	}
	if err := c.Credential.validate(); err != nil {
		return Outcome[Unit]{}, err
	}

	b := c.command()
	b.Arg("mount", opts.source())
	b.UintOption("--first", opts.First)
	b.UintOption("--last", opts.Last)
	b.Option("--glob-archives", opts.GlobArchives)
	b.Arg(opts.Mountpoint)
	for _, p := range opts.Select {
		b.Assignment("--pattern", p.String())
	}

	_, out, err := c.run(ctx, r, c.finish(b, ""))
	if err != nil {
		return Outcome[Unit]{}, err
	}
	return out, nil
}

// Umount detaches a filesystem previously attached with Mount. The
// mountpoint is all borg needs, so the Client must carry no credential.
func (c *Client) Umount(mountpoint string) (Outcome[Unit], error) {
	return c.umountOp(context.Background(), c.blockingRunner(), mountpoint)
}

// UmountContext is Umount with cancellation.
func (c *Client) UmountContext(ctx context.Context, mountpoint string) (Outcome[Unit], error) {
	return c.umountOp(ctx, c.interruptibleRunner(), mountpoint)
}

func (c *Client) umountOp(ctx context.Context, r execx.Runner, mountpoint string) (Outcome[Unit], error) {
	if mountpoint == "" {
		return Outcome[Unit]{}, invalidf("Mountpoint", "empty mountpoint")
	}
	if err := c.requireKeyless("umount"); err != nil {
		return Outcome[Unit]{}, err
	}

	b := c.command()
	b.Arg("umount", mountpoint)

	_, out, err := c.run(ctx, r, c.finish(b, ""))
	if err != nil {
		return Outcome[Unit]{}, err
	}
	return out, nil
}
