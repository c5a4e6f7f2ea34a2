package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/goborg/internal/doctor"
	"github.com/thoreinstein/goborg/internal/errors"
)

var (
	doctorJSON    bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose-checks", false,
		"show all checks including passed ones")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and repository issues",
	Long: `Run diagnostic checks on the goborg setup.

Validates the configuration file, verifies the borg binary runs, inspects
the passphrase source, and contacts the repository.

Exit codes:
  0 - All checks passed
  1 - Warnings present, no errors
  2 - Errors present`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	repo, _ := repository()
	client := newClient(cmd, true)

	runner := doctor.NewRunner()
	runner.AddCheck(&doctor.ConfigCheck{Cfg: cfg, LoadErr: configLoadErr})
	runner.AddCheck(&doctor.BinaryCheck{Client: client})
	runner.AddCheck(&doctor.PassphraseCheck{Cfg: cfg})
	runner.AddCheck(&doctor.RepositoryCheck{Repository: repo, Client: client})

	report := runner.Run(cmd.Context())

	if err := printDoctorReport(cmd, report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(nil, errors.ExitFailure)
	}
	if report.HasWarnings() {
		return errors.NewExitError(nil, errors.ExitWarning)
	}
	return nil
}

func printDoctorReport(cmd *cobra.Command, report *doctor.Report) error {
	w := cmd.OutOrStdout()

	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	for _, result := range report.Results {
		if result.Status == doctor.SeverityPass && !doctorVerbose {
			continue
		}
		printCheckResult(cmd, result)
	}

	s := report.Summary
	fmt.Fprintf(w, "\n%d passed, %d warnings, %d errors\n", s.Passed, s.Warnings, s.Errors)
	return nil
}

func printCheckResult(cmd *cobra.Command, result *doctor.CheckResult) {
	w := cmd.OutOrStdout()

	var label string
	switch result.Status {
	case doctor.SeverityPass:
		label = okColor.Sprint("ok")
	case doctor.SeverityWarning:
		label = warnColor.Sprint("warn")
	case doctor.SeverityError:
		label = failColor.Sprint("FAIL")
	default:
		label = "info"
	}

	fmt.Fprintf(w, "[%s] %s: %s\n", label, result.Name, result.Message)
	if result.FixHint != "" {
		fmt.Fprintf(w, "       hint: %s\n", result.FixHint)
	}
	for key, value := range result.Details {
		fmt.Fprintf(w, "       %s: %v\n", key, value)
	}
}
