package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/goborg/internal/errors"
	"github.com/thoreinstein/goborg/pkg/borg"
)

var (
	deleteAll    bool
	deleteDryRun bool
	deleteForce  bool
	deleteYes    bool
)

func init() {
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false,
		"delete the entire repository including its cache")
	deleteCmd.Flags().BoolVarP(&deleteDryRun, "dry-run", "n", false,
		"show what would be deleted without deleting anything")
	deleteCmd.Flags().BoolVar(&deleteForce, "force", false,
		"delete even when archives are corrupted")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false,
		"skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete [ARCHIVE...]",
	Short: "Delete archives, or the whole repository with --all",
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	repo, err := repository()
	if err != nil {
		return err
	}

	if len(args) == 0 && !deleteAll {
		return errors.NewUserError(errors.New("nothing to delete"),
			"name archives to delete, or pass --all for the whole repository")
	}
	if len(args) > 0 && deleteAll {
		return errors.NewUserError(errors.New("--all cannot combine with archive names"),
			"drop the archive names or the --all flag")
	}

	if !deleteDryRun && !deleteYes {
		what := fmt.Sprintf("%d archive(s)", len(args))
		if deleteAll {
			what = "the ENTIRE repository " + repo
		}
		if !confirm(cmd, fmt.Sprintf("Delete %s?", what)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	opts := borg.DeleteOptions{
		Repository: repo,
		All:        deleteAll,
		DryRun:     deleteDryRun,
		Force:      deleteForce,
	}
	if len(args) > 0 {
		opts.Archive = args[0]
		opts.AdditionalArchives = args[1:]
	}

	client := newClient(cmd, true)
	out, err := client.DeleteContext(cmd.Context(), opts)
	if err != nil {
		return describeBorgError(err)
	}

	if !quiet {
		okColor.Fprintln(cmd.OutOrStdout(), "Deletion finished.")
	}
	return reportWarning(out)
}

// confirm asks a yes/no question on stdin. Anything but "y" or "yes"
// counts as no, including a closed stdin.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
