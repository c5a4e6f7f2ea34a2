package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/goborg/pkg/borg"
)

var (
	checkRepoOnly     bool
	checkArchivesOnly bool
	checkVerifyData   bool
	checkRepair       bool
	checkLast         uint
)

func init() {
	checkCmd.Flags().BoolVar(&checkRepoOnly, "repository-only", false,
		"check only the repository, skip archives")
	checkCmd.Flags().BoolVar(&checkArchivesOnly, "archives-only", false,
		"check only archive metadata, skip the repository")
	checkCmd.Flags().BoolVar(&checkVerifyData, "verify-data", false,
		"decrypt and verify every data chunk (slow)")
	checkCmd.Flags().BoolVar(&checkRepair, "repair", false,
		"attempt to fix inconsistencies (risky on damaged repositories)")
	checkCmd.Flags().UintVar(&checkLast, "last", 0,
		"check only the N newest archives")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify repository and archive consistency",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	repo, err := repository()
	if err != nil {
		return err
	}

	client := newClient(cmd, true)
	out, err := client.CheckContext(cmd.Context(), borg.CheckOptions{
		Repository:     repo,
		RepositoryOnly: checkRepoOnly,
		ArchivesOnly:   checkArchivesOnly,
		VerifyData:     checkVerifyData,
		Repair:         checkRepair,
		Last:           checkLast,
	})
	if err != nil {
		return describeBorgError(err)
	}

	if !quiet {
		okColor.Fprintln(cmd.OutOrStdout(), "Check passed.")
	}
	return reportWarning(out)
}
