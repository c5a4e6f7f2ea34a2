package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/goborg/pkg/borg"
)

var compactThreshold uint

func init() {
	compactCmd.Flags().UintVar(&compactThreshold, "threshold", 0,
		"minimum saved-space percentage to rewrite a segment (default: 10)")
	rootCmd.AddCommand(compactCmd)
}

// Compact works on segment files only and never needs the repository key.
var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Free repository space left by deleted archives",
	Args:  cobra.NoArgs,
	RunE:  runCompact,
}

func runCompact(cmd *cobra.Command, _ []string) error {
	repo, err := repository()
	if err != nil {
		return err
	}

	client := newClient(cmd, false)
	out, err := client.CompactContext(cmd.Context(), borg.CompactOptions{
		Repository: repo,
		Threshold:  compactThreshold,
	})
	if err != nil {
		return describeBorgError(err)
	}

	if !quiet {
		okColor.Fprintln(cmd.OutOrStdout(), "Compaction finished.")
	}
	return reportWarning(out)
}
