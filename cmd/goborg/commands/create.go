package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/goborg/internal/errors"
	"github.com/thoreinstein/goborg/pkg/borg"
)

var (
	createArchive     string
	createComment     string
	createCompression string
	createExcludes    []string
	createExcludeFile string
	createNumericIDs  bool
	createStats       bool
	createProgress    bool
)

func init() {
	createCmd.Flags().StringVarP(&createArchive, "archive", "a", "",
		"archive name (required)")
	createCmd.Flags().StringVar(&createComment, "comment", "",
		"comment stored with the archive")
	createCmd.Flags().StringVarP(&createCompression, "compression", "C", "",
		"compression, e.g. lz4, zstd,3, zlib,6 (default: from config)")
	createCmd.Flags().StringSliceVar(&createExcludes, "exclude", nil,
		"shell exclude pattern, repeatable")
	createCmd.Flags().StringVar(&createExcludeFile, "exclude-from", "",
		"file with exclusion patterns")
	createCmd.Flags().BoolVar(&createNumericIDs, "numeric-ids", false,
		"store owner and group as numbers")
	createCmd.Flags().BoolVar(&createStats, "stats", true,
		"print archive statistics when done")
	createCmd.Flags().BoolVar(&createProgress, "progress", false,
		"live progress while the backup runs")
	_ = createCmd.MarkFlagRequired("archive")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create PATH...",
	Short: "Back up paths into a new archive",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	repo, err := repository()
	if err != nil {
		return err
	}

	compression, err := parseCompression(firstNonEmpty(createCompression, cfg.Compression))
	if err != nil {
		return err
	}

	var excludes []borg.Pattern
	for _, e := range createExcludes {
		excludes = append(excludes, borg.Shell(e))
	}

	opts := borg.CreateOptions{
		Repository:  repo,
		Archive:     createArchive,
		Paths:       args,
		Comment:     createComment,
		Compression: compression,
		NumericIDs:  createNumericIDs,
		Excludes:    excludes,
		ExcludeFile: createExcludeFile,
	}

	client := newClient(cmd, true)

	var out borg.Outcome[borg.CreateResult]
	if createProgress {
		out, err = client.CreateWithProgress(cmd.Context(), opts, printProgress(cmd))
		fmt.Fprintln(cmd.ErrOrStderr())
	} else {
		out, err = client.CreateContext(cmd.Context(), opts)
	}
	if err != nil {
		return describeBorgError(err)
	}

	if createStats && !quiet {
		printArchiveStats(cmd.OutOrStdout(), out.Value.Archive)
	}
	return reportWarning(out)
}

// printProgress renders borg's progress updates on one redrawn line.
func printProgress(cmd *cobra.Command) func(borg.CreateProgress) {
	w := cmd.ErrOrStderr()
	return func(p borg.CreateProgress) {
		if p.Finished {
			return
		}
		fmt.Fprintf(w, "\r\033[K%s  %d files  %s", humanBytes(p.OriginalSize), p.NFiles, p.Path)
	}
}

// parseCompression turns the CLI's "algo[,level]" syntax into a typed
// compression choice.
func parseCompression(s string) (borg.Compression, error) {
	if s == "" {
		return borg.Compression{}, nil
	}
	algo, levelStr, hasLevel := strings.Cut(s, ",")
	level := 0
	if hasLevel {
		var err error
		level, err = strconv.Atoi(levelStr)
		if err != nil {
			return borg.Compression{}, errors.NewUserError(err, "compression level must be a number")
		}
	}
	switch algo {
	case "none":
		return borg.CompressionNone(), nil
	case "lz4":
		return borg.CompressionLZ4(), nil
	case "zstd":
		if !hasLevel {
			level = 3
		}
		return borg.CompressionZstd(level), nil
	case "zlib":
		if !hasLevel {
			level = 6
		}
		return borg.CompressionZlib(level), nil
	case "lzma":
		if !hasLevel {
			level = 6
		}
		return borg.CompressionLZMA(level), nil
	default:
		return borg.Compression{}, errors.NewUserError(
			errors.Newf("unknown compression %q", algo),
			"valid: none, lz4, zstd, zlib, lzma")
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
