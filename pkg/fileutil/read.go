// Package fileutil provides bounded file reading helpers.
package fileutil

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// MaxFileSize is the maximum file size we'll read (1MB).
// The files handled here are passphrase and pattern files; anything larger
// is almost certainly a mistake, and the cap prevents memory exhaustion.
const MaxFileSize = 1024 * 1024 // 1MB

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file up to MaxFileSize.
// It returns an error if the file is larger than the limit.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast if the size is already known to be too large.
	info, err := f.Stat()
	if err == nil {
		if info.Size() > MaxFileSize {
			return nil, ErrFileTooLarge
		}
	}

	r := io.LimitReader(f, MaxFileSize+1)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}

// ReadTrimmedLine reads a file and returns its first line with surrounding
// whitespace removed. Passphrase files commonly carry a trailing newline
// that must not become part of the secret.
func ReadTrimmedLine(path string) (string, error) {
	data, err := ReadFileWithLimit(path)
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSpace(line), nil
}
