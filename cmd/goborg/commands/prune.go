package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/goborg/internal/errors"
	"github.com/thoreinstein/goborg/pkg/borg"
)

var (
	pruneWithin  string
	pruneDaily   uint
	pruneWeekly  uint
	pruneMonthly uint
	pruneYearly  uint
	pruneGlob    string
)

func init() {
	pruneCmd.Flags().StringVar(&pruneWithin, "keep-within", "",
		"keep all archives younger than this interval, e.g. 2d, 1w")
	pruneCmd.Flags().UintVar(&pruneDaily, "keep-daily", 0,
		"number of daily archives to keep")
	pruneCmd.Flags().UintVar(&pruneWeekly, "keep-weekly", 0,
		"number of weekly archives to keep")
	pruneCmd.Flags().UintVar(&pruneMonthly, "keep-monthly", 0,
		"number of monthly archives to keep")
	pruneCmd.Flags().UintVar(&pruneYearly, "keep-yearly", 0,
		"number of yearly archives to keep")
	pruneCmd.Flags().StringVar(&pruneGlob, "glob-archives", "",
		"prune only archives matching a shell pattern")
	rootCmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete archives according to retention rules",
	Long: `Delete archives that fall outside the configured retention rules.

Rules come from the prune section of the config file; any rule flag set on
the command line replaces the whole configured rule set.`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func runPrune(cmd *cobra.Command, _ []string) error {
	repo, err := repository()
	if err != nil {
		return err
	}

	opts := borg.PruneOptions{
		Repository:   repo,
		GlobArchives: pruneGlob,
	}

	flagged := cmd.Flags().Changed("keep-within") ||
		cmd.Flags().Changed("keep-daily") ||
		cmd.Flags().Changed("keep-weekly") ||
		cmd.Flags().Changed("keep-monthly") ||
		cmd.Flags().Changed("keep-yearly")

	within := pruneWithin
	if !flagged {
		within = cfg.Prune.KeepWithin
		opts.KeepDaily = cfg.Prune.KeepDaily
		opts.KeepWeekly = cfg.Prune.KeepWeekly
		opts.KeepMonthly = cfg.Prune.KeepMonthly
		opts.KeepYearly = cfg.Prune.KeepYearly
	} else {
		opts.KeepDaily = pruneDaily
		opts.KeepWeekly = pruneWeekly
		opts.KeepMonthly = pruneMonthly
		opts.KeepYearly = pruneYearly
	}
	if within != "" {
		opts.KeepWithin, err = parseKeepWithin(within)
		if err != nil {
			return err
		}
	}

	client := newClient(cmd, true)
	out, err := client.PruneContext(cmd.Context(), opts)
	if err != nil {
		return describeBorgError(err)
	}

	if !quiet {
		okColor.Fprintln(cmd.OutOrStdout(), "Prune finished.")
	}
	return reportWarning(out)
}

// parseKeepWithin parses intervals of the form "<count><unit>" where unit
// is one of H, d, w, m, y.
func parseKeepWithin(s string) (borg.PruneWithin, error) {
	fail := func() (borg.PruneWithin, error) {
		return borg.PruneWithin{}, errors.NewUserError(
			errors.Newf("invalid keep-within interval %q", s),
			"use <count><unit> with unit H, d, w, m or y, e.g. 2d")
	}
	if len(s) < 2 {
		return fail()
	}
	count, err := strconv.ParseUint(strings.TrimSuffix(s, s[len(s)-1:]), 10, 32)
	if err != nil {
		return fail()
	}
	var unit borg.WithinUnit
	switch s[len(s)-1] {
	case 'H':
		unit = borg.WithinHours
	case 'd':
		unit = borg.WithinDays
	case 'w':
		unit = borg.WithinWeeks
	case 'm':
		unit = borg.WithinMonths
	case 'y':
		unit = borg.WithinYears
	default:
		return fail()
	}
	return borg.PruneWithin{Count: uint(count), Unit: unit}, nil
}
