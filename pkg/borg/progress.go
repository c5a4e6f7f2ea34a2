package borg

import (
	"context"

	"github.com/thoreinstein/goborg/internal/borglog"
	"github.com/thoreinstein/goborg/internal/cmdline"
	"github.com/thoreinstein/goborg/internal/execx"
)

// CreateProgress is one progress update emitted while an archive is being
// created. The final update has Finished set and zeroed counters.
type CreateProgress struct {
	// OriginalSize is the bytes read so far.
	OriginalSize uint64

	// CompressedSize is the bytes after compression.
	CompressedSize uint64

	// DeduplicatedSize is the bytes actually added to the repository.
	DeduplicatedSize uint64

	// NFiles is the number of files processed so far.
	NFiles uint64

	// Path is the file borg is currently reading.
	Path string

	// Finished marks the last update of the run.
	Finished bool
}

// CreateWithProgress is CreateContext with live progress reporting: fn is
// called from the reader goroutine for every progress update borg emits,
// then the decoded result is returned as usual. fn must not block for
// long, or it stalls borg's stderr pipe.
func (c *Client) CreateWithProgress(ctx context.Context, opts CreateOptions, fn func(CreateProgress)) (Outcome[CreateResult], error) {
	if err := opts.validate(); err != nil {
		return Outcome[CreateResult]{}, err
	}
	if err := c.Credential.validate(); err != nil {
		return Outcome[CreateResult]{}, err
	}

	// --progress must precede the subcommand, right after --log-json.
	b := cmdline.NewBuilder()
	b.Arg("--log-json", "--progress")
	c.Options.appendTo(b)
	b.Arg("create", "--json")
	opts.appendTo(b)
	cl := c.finish(b, "")

	spec := execx.Spec{
		Path:      c.Options.binary(),
		Args:      cl.Args,
		Env:       cl.Env,
		StdinPath: cl.StdinPath,
		Timeout:   c.Timeout,
	}

	res, err := execx.Stream(ctx, spec, func(line string) {
		rec := borglog.ParseLine(line)
		if rec.Type != borglog.TypeArchiveProgress {
			return
		}
		fn(CreateProgress{
			OriginalSize:     rec.OriginalSize,
			CompressedSize:   rec.CompressedSize,
			DeduplicatedSize: rec.DeduplicatedSize,
			NFiles:           rec.NFiles,
			Path:             rec.Path,
			Finished:         rec.Finished,
		})
	})
	if err != nil {
		return Outcome[CreateResult]{}, c.mapRunError(err)
	}

	records := borglog.Parse(res.Stderr)
	if c.Logger != nil {
		borglog.Forward(c.Logger, records)
	}
	w, err := classify(res, records)
	if err != nil {
		return Outcome[CreateResult]{}, err
	}
	return decode[CreateResult](res, w)
}
