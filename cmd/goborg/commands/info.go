package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/goborg/pkg/borg"
)

var (
	infoArchive string
	infoLast    uint
	infoFirst   uint
	infoGlob    string
)

func init() {
	infoCmd.Flags().StringVarP(&infoArchive, "archive", "a", "",
		"show a single archive instead of the repository")
	infoCmd.Flags().UintVar(&infoFirst, "first", 0,
		"show only the N oldest archives")
	infoCmd.Flags().UintVar(&infoLast, "last", 0,
		"show only the N newest archives")
	infoCmd.Flags().StringVar(&infoGlob, "glob-archives", "",
		"show only archives matching a shell pattern")
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show repository or archive details",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, _ []string) error {
	repo, err := repository()
	if err != nil {
		return err
	}

	client := newClient(cmd, true)
	out, err := client.InfoContext(cmd.Context(), borg.InfoOptions{
		Repository:   repo,
		Archive:      infoArchive,
		First:        infoFirst,
		Last:         infoLast,
		GlobArchives: infoGlob,
	})
	if err != nil {
		return describeBorgError(err)
	}

	w := cmd.OutOrStdout()
	headerColor.Fprintf(w, "Repository %s\n", out.Value.Repository.Location)
	fmt.Fprintf(w, "  ID:         %s\n", out.Value.Repository.ID)
	fmt.Fprintf(w, "  Modified:   %s\n", out.Value.Repository.LastModified.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Encryption: %s\n", out.Value.Encryption.Mode)
	if out.Value.Cache.Path != "" {
		fmt.Fprintf(w, "  Cache:      %s (%s unique)\n",
			out.Value.Cache.Path, humanBytes(out.Value.Cache.Stats.UniqueCSize))
	}
	for _, a := range out.Value.Archives {
		fmt.Fprintln(w)
		printArchiveStats(w, a)
	}
	return reportWarning(out)
}
