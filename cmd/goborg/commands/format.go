package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/thoreinstein/goborg/pkg/borg"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	failColor   = color.New(color.FgRed, color.Bold)
)

// humanBytes renders a byte count in binary units, one decimal place.
func humanBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// printArchiveStats renders the size summary of a finished create.
func printArchiveStats(w io.Writer, a borg.Archive) {
	headerColor.Fprintf(w, "Archive %s\n", a.Name)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  Files:\t%d\n", a.Stats.NFiles)
	fmt.Fprintf(tw, "  Original size:\t%s\n", humanBytes(a.Stats.OriginalSize))
	fmt.Fprintf(tw, "  Compressed size:\t%s\n", humanBytes(a.Stats.CompressedSize))
	fmt.Fprintf(tw, "  Deduplicated size:\t%s\n", humanBytes(a.Stats.DeduplicatedSize))
	fmt.Fprintf(tw, "  Duration:\t%.1fs\n", a.Duration)
	tw.Flush()
}
