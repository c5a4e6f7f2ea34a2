package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/goborg/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, and build date of goborg, and the version of the borg binary it drives.`,
	Run: func(c *cobra.Command, _ []string) {
		fmt.Fprintf(c.OutOrStdout(), "goborg version %s\n", cmd.Version)
		fmt.Fprintf(c.OutOrStdout(), "  commit: %s\n", cmd.Commit)
		fmt.Fprintf(c.OutOrStdout(), "  built:  %s\n", cmd.Date)

		if borgVersion, err := newClient(c, false).Version(c.Context()); err == nil {
			fmt.Fprintf(c.OutOrStdout(), "  borg:   %s\n", borgVersion)
		}
	},
}
