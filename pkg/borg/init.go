package borg

import (
	"context"

	"github.com/thoreinstein/goborg/internal/execx"
)

// InitOptions parameterize repository creation.
type InitOptions struct {
	// Repository is the location of the repository to create.
	Repository string

	// Encryption selects the repository's encryption mode. Required; use
	// EncryptionNone explicitly for an unencrypted repository.
	Encryption EncryptionMode

	// AppendOnly creates the repository in append-only mode.
	AppendOnly bool

	// MakeParentDirs creates missing parent directories of Repository.
	MakeParentDirs bool

	// StorageQuota caps the repository size, e.g. "5G". Empty means
	// unlimited.
	StorageQuota string
}

func (o InitOptions) validate() error {
	if o.Repository == "" {
		return invalidf("Repository", "empty repository location")
	}
	if o.Encryption == "" {
		return invalidf("Encryption", "encryption mode is required")
	}
	if !o.Encryption.valid() {
		return invalidf("Encryption", "unknown mode %q", string(o.Encryption))
	}
	return nil
}

// Init creates a new repository. It blocks until borg finishes.
func (c *Client) Init(opts InitOptions) (Outcome[Unit], error) {
	return c.initOp(context.Background(), c.blockingRunner(), opts)
}

// InitContext creates a new repository and kills borg when ctx is
// cancelled.
func (c *Client) InitContext(ctx context.Context, opts InitOptions) (Outcome[Unit], error) {
	return c.initOp(ctx, c.interruptibleRunner(), opts)
}

func (c *Client) initOp(ctx context.Context, r execx.Runner, opts InitOptions) (Outcome[Unit], error) {
	if err := opts.validate(); err != nil {
		return Outcome[Unit]{}, err
	}
	if err := c.Credential.validate(); err != nil {
		return Outcome[Unit]{}, err
	}
	if opts.Encryption != EncryptionNone && c.Credential.IsNone() {
		return Outcome[Unit]{}, &UnsupportedOptionCombinationError{
			Op:     "init",
			Reason: "encrypted repository requires a credential",
		}
	}

	b := c.command()
	b.Arg("init", "-e", string(opts.Encryption))
	b.Flag("--append-only", opts.AppendOnly)
	b.Flag("--make-parent-dirs", opts.MakeParentDirs)
	b.Option("--storage-quota", opts.StorageQuota)
	b.Arg(opts.Repository)

	_, out, err := c.run(ctx, r, c.finish(b, ""))
	if err != nil {
		return Outcome[Unit]{}, err
	}
	return out, nil
}
