package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether the writer is backed by a terminal. Anything
// exposing an Fd() method is inspected; everything else counts as not a
// terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether the writer should receive ANSI color
// codes. Respects NO_COLOR (https://no-color.org) and TERM=dumb.
func SupportsColor(w io.Writer) bool {
	return supportsColor(w, IsTTY(w))
}

func supportsColor(w io.Writer, isTTY bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
