// Package commands implements the CLI commands for goborg.
package commands

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/goborg/cmd"
	"github.com/thoreinstein/goborg/internal/config"
	"github.com/thoreinstein/goborg/internal/errors"
	"github.com/thoreinstein/goborg/internal/logging"
)

// repoFlag holds the value of the --repository flag.
var repoFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// timeoutFlag bounds the runtime of a single borg invocation.
var timeoutFlag time.Duration

// cfg is the loaded configuration, populated by initConfig.
var cfg = &config.Config{}

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&repoFlag, "repository", "r", "",
		"repository location (default: from config)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0,
		"kill borg when one operation exceeds this duration (0: no limit)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("goborg version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load("")
	if cfg == nil {
		cfg = &config.Config{}
	}
}

var rootCmd = &cobra.Command{
	Use:   "goborg",
	Short: "Drive borg backups with typed results",
	Long: `goborg drives the borg backup tool: it builds the exact command
lines, keeps passphrases out of argv, and turns borg's exit codes and
JSON output into readable results.

The repository location and credentials come from
~/.config/goborg/config.yaml, GOBORG_-prefixed environment variables,
or the --repository flag.`,
	Example: `  # Initialize an encrypted repository
  goborg init -r /backup/repo --encryption repokey

  # Back up /etc and /home
  goborg create -r /backup/repo --archive "daily-{now}" /etc /home

  # See what is in there
  goborg list -r /backup/repo

  # Check system health
  goborg doctor`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("GOBORG_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handlers := []slog.Handler{
		logging.BuildHandler(logging.Format(logFormat), cmd.ErrOrStderr(), opts),
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig surfaces config load and validation problems before any
// subcommand talks to borg.
func checkConfig(cmd *cobra.Command) error {
	// doctor must run on a broken config; that is its whole point.
	switch cmd.Name() {
	case "help", "version", "doctor":
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return errors.NewConfigError(errs[0])
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
