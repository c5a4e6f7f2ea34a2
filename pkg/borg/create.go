package borg

import (
	"context"
	"regexp"

	"github.com/thoreinstein/goborg/internal/cmdline"
	"github.com/thoreinstein/goborg/internal/execx"
)

// borg reserves the checkpoint namespace for its own partial archives.
var checkpointName = regexp.MustCompile(`\.checkpoint(\.\d+)?$`)

// CreateOptions parameterize archive creation.
type CreateOptions struct {
	// Repository is the location of the target repository.
	Repository string

	// Archive is the name of the new archive. Must be unique within the
	// repository and must not use borg's checkpoint suffix.
	Archive string

	// Paths are the files and directories to back up. At least one path
	// or one pattern root is required.
	Paths []string

	// Comment is attached to the archive.
	Comment string

	// Compression selects the data compression. Zero value leaves the
	// choice to borg.
	Compression Compression

	// NumericIDs stores owner and group as numbers instead of names.
	NumericIDs bool

	// Sparse detects holes in input files and stores them as such.
	Sparse bool

	// ReadSpecial opens and reads device files and FIFOs instead of
	// storing them as-is.
	ReadSpecial bool

	// NoXattrs skips extended attributes.
	NoXattrs bool

	// NoACLs skips access control lists.
	NoACLs bool

	// NoFlags skips BSD file flags.
	NoFlags bool

	// ExcludeCaches skips directories tagged with CACHEDIR.TAG.
	ExcludeCaches bool

	// Patterns are ordered include/exclude/root instructions, applied
	// first-match-wins.
	Patterns []PatternInstruction

	// Excludes are standalone exclusion patterns.
	Excludes []Pattern

	// PatternFile names a file of pattern instructions.
	PatternFile string

	// ExcludeFile names a file of exclusion patterns.
	ExcludeFile string
}

func (o CreateOptions) validate() error {
	if o.Repository == "" {
		return invalidf("Repository", "empty repository location")
	}
	if o.Archive == "" {
		return invalidf("Archive", "empty archive name")
	}
	if checkpointName.MatchString(o.Archive) {
		return invalidf("Archive", "name %q uses the reserved checkpoint suffix", o.Archive)
	}
	if len(o.Paths) == 0 && !hasPatternRoot(o.Patterns) {
		return invalidf("Paths", "nothing to back up: no paths and no pattern roots")
	}
	if err := o.Compression.validate(); err != nil {
		return err
	}
	for _, p := range o.Patterns {
		if err := p.validate("Patterns"); err != nil {
			return err
		}
	}
	for _, p := range o.Excludes {
		if err := p.validate("Excludes"); err != nil {
			return err
		}
	}
	return nil
}

func hasPatternRoot(instructions []PatternInstruction) bool {
	for _, i := range instructions {
		if i.IsRoot() {
			return true
		}
	}
	return false
}

// appendTo renders the create flags in their fixed order, after the
// "create --json" prefix the caller has already placed.
func (o CreateOptions) appendTo(b *cmdline.Builder) {
	b.Option("--comment", o.Comment)
	if !o.Compression.IsZero() {
		b.Option("--compression", o.Compression.String())
	}
	b.Flag("--numeric-ids", o.NumericIDs)
	b.Flag("--sparse", o.Sparse)
	b.Flag("--read-special", o.ReadSpecial)
	b.Flag("--noxattrs", o.NoXattrs)
	b.Flag("--noacls", o.NoACLs)
	b.Flag("--noflags", o.NoFlags)
	b.Flag("--exclude-caches", o.ExcludeCaches)
	for _, p := range o.Patterns {
		b.Assignment("--pattern", p.String())
	}
	for _, p := range o.Excludes {
		b.Assignment("--exclude", p.String())
	}
	b.Option("--patterns-from", o.PatternFile)
	b.Option("--exclude-from", o.ExcludeFile)
	b.Arg(o.Repository + "::" + o.Archive)
	b.Arg(o.Paths...)
}

// Create makes a new archive and returns its statistics. It blocks until
// borg finishes.
func (c *Client) Create(opts CreateOptions) (Outcome[CreateResult], error) {
	return c.createOp(context.Background(), c.blockingRunner(), opts)
}

// CreateContext makes a new archive and kills borg when ctx is cancelled.
// A cancelled create leaves at most a checkpoint archive behind; the data
// already transferred is reused on the next run.
func (c *Client) CreateContext(ctx context.Context, opts CreateOptions) (Outcome[CreateResult], error) {
	return c.createOp(ctx, c.interruptibleRunner(), opts)
}

func (c *Client) createOp(ctx context.Context, r execx.Runner, opts CreateOptions) (Outcome[CreateResult], error) {
	if err := opts.validate(); err != nil {
		return Outcome[CreateResult]{}, err
	}
	if err := c.Credential.validate(); err != nil {
		return Outcome[CreateResult]{}, err
	}

	b := c.command()
	b.Arg("create", "--json")
	opts.appendTo(b)

	res, w, err := c.run(ctx, r, c.finish(b, ""))
	if err != nil {
		return Outcome[CreateResult]{}, err
	}
	return decode[CreateResult](res, w)
}
