package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/goborg/pkg/borg"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the archives in the repository",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	repo, err := repository()
	if err != nil {
		return err
	}

	client := newClient(cmd, true)
	out, err := client.ListContext(cmd.Context(), borg.ListOptions{Repository: repo})
	if err != nil {
		return describeBorgError(err)
	}

	if len(out.Value.Archives) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Repository is empty.")
		return reportWarning(out)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTARTED")
	for _, a := range out.Value.Archives {
		fmt.Fprintf(tw, "%s\t%s\n", a.Name, a.Start.Format("2006-01-02 15:04:05"))
	}
	tw.Flush()
	return reportWarning(out)
}
