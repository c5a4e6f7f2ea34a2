package borg

import (
	"github.com/thoreinstein/goborg/internal/borglog"
	"github.com/thoreinstein/goborg/internal/execx"
)

// Exit codes in borg's documented convention. This mapping is a
// compatibility surface: tooling that inspects the same codes must agree
// with it.
const (
	exitSuccess = 0
	exitWarning = 1
	exitError   = 2
)

// classify maps a finished invocation onto the success/warning/error
// trichotomy. Success and warning come back as an Outcome carrying the
// warning state and text; everything past that is a typed error.
// Decoding happens after classification, and only for success and
// warning outcomes.
func classify(res *execx.Result, records []borglog.Record) (Outcome[Unit], error) {
	detail := borglog.Text(records)
	if detail == "" {
		detail = string(res.Stderr)
	}

	switch {
	case res.ExitCode == exitSuccess:
		return Outcome[Unit]{}, nil
	case res.ExitCode == exitWarning:
		// Exit code 1 is a warning even when borg wrote nothing;
		// the state must not depend on the text being non-empty.
		return Outcome[Unit]{Warning: detail, warned: true}, nil
	case res.ExitCode == exitError:
		return Outcome[Unit]{}, &ToolError{MsgID: borglog.FirstErrorID(records), Detail: detail}
	default:
		return Outcome[Unit]{}, &ProcessError{ExitCode: res.ExitCode, Detail: detail}
	}
}

// IsRepositoryExists reports whether err is borg refusing to re-create an
// existing repository.
func IsRepositoryExists(err error) bool {
	return toolErrorID(err) == borglog.IDRepositoryAlreadyExists
}

// IsRepositoryDoesNotExist reports whether err is borg failing to find the
// repository at the given location.
func IsRepositoryDoesNotExist(err error) bool {
	return toolErrorID(err) == borglog.IDRepositoryDoesNotExist
}

// IsArchiveExists reports whether err is borg rejecting a duplicate
// archive name.
func IsArchiveExists(err error) bool {
	return toolErrorID(err) == borglog.IDArchiveAlreadyExists
}

// IsArchiveDoesNotExist reports whether err is borg failing to find the
// named archive.
func IsArchiveDoesNotExist(err error) bool {
	return toolErrorID(err) == borglog.IDArchiveDoesNotExist
}

// IsPassphraseWrong reports whether err is borg rejecting the supplied
// passphrase.
func IsPassphraseWrong(err error) bool {
	return toolErrorID(err) == borglog.IDPassphraseWrong
}

// IsLockTimeout reports whether err is borg failing to acquire the
// repository lock, typically because another client holds it.
func IsLockTimeout(err error) bool {
	id := toolErrorID(err)
	return id == borglog.IDLockTimeout || id == borglog.IDLockError
}
