package commands

import (
	"fmt"
	"os"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thoreinstein/goborg/internal/errors"
	"github.com/thoreinstein/goborg/pkg/borg"
)

var (
	extractArchive     string
	extractDestination string
	extractDryRun      bool
	extractNumericIDs  bool
	extractStrip       uint
)

func init() {
	extractCmd.Flags().StringVarP(&extractArchive, "archive", "a", "",
		"archive to extract (interactive picker when omitted)")
	extractCmd.Flags().StringVarP(&extractDestination, "destination", "d", "",
		"directory to extract into (default: current directory)")
	extractCmd.Flags().BoolVarP(&extractDryRun, "dry-run", "n", false,
		"show what would be extracted without writing files")
	extractCmd.Flags().BoolVar(&extractNumericIDs, "numeric-ids", false,
		"restore owner and group as numbers")
	extractCmd.Flags().UintVar(&extractStrip, "strip-components", 0,
		"remove N leading path elements on extraction")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract [PATH...]",
	Short: "Restore files from an archive",
	RunE:  runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	repo, err := repository()
	if err != nil {
		return err
	}

	client := newClient(cmd, true)

	archive := extractArchive
	if archive == "" {
		archive, err = pickArchive(cmd, client, repo)
		if err != nil {
			return err
		}
	}

	out, err := client.ExtractContext(cmd.Context(), borg.ExtractOptions{
		Repository:      repo,
		Archive:         archive,
		Paths:           args,
		Destination:     extractDestination,
		DryRun:          extractDryRun,
		NumericIDs:      extractNumericIDs,
		StripComponents: extractStrip,
	})
	if err != nil {
		return describeBorgError(err)
	}

	if !quiet {
		okColor.Fprintf(cmd.OutOrStdout(), "Extracted archive %s\n", archive)
	}
	return reportWarning(out)
}

// pickArchive lists the repository and lets the user fuzzy-select an
// archive. Requires a terminal.
func pickArchive(cmd *cobra.Command, client *borg.Client, repo string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.NewUserError(errors.Newf("no archive named"),
			"pass --archive when not running interactively")
	}

	out, err := client.ListContext(cmd.Context(), borg.ListOptions{Repository: repo})
	if err != nil {
		return "", describeBorgError(err)
	}
	archives := out.Value.Archives
	if len(archives) == 0 {
		return "", errors.NewUserError(errors.Newf("repository has no archives"),
			"Run: goborg create")
	}

	idx, err := fuzzyfinder.Find(
		archives,
		func(i int) string {
			return archives[i].Name
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			a := archives[i]
			return fmt.Sprintf("Archive: %s\nStarted: %s\nID: %s",
				a.Name,
				a.Start.Format("2006-01-02 15:04:05"),
				a.ID,
			)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errors.NewUserError(errors.New("no archive selected"),
				"pass --archive to name one directly")
		}
		return "", errors.Wrap(err, "archive selection failed")
	}
	return archives[idx].Name, nil
}
