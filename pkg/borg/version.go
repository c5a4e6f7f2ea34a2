package borg

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
)

// Version reports the version string of the configured borg binary, e.g.
// "1.2.8". It is the cheapest way to verify the binary is present and
// runnable.
func (c *Client) Version(ctx context.Context) (string, error) {
	b := c.command()
	b.Arg("--version")

	res, _, err := c.run(ctx, c.interruptibleRunner(), c.finish(b, ""))
	if err != nil {
		return "", err
	}

	// borg prints "borg 1.2.8\n".
	out := strings.TrimSpace(string(res.Stdout))
	version, ok := strings.CutPrefix(out, "borg ")
	if !ok || version == "" {
		return "", &DecodeError{Raw: string(res.Stdout), Err: errors.Newf("unrecognized version output %q", out)}
	}
	return version, nil
}
