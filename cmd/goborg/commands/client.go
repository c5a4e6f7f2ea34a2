package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thoreinstein/goborg/internal/errors"
	"github.com/thoreinstein/goborg/internal/logging"
	"github.com/thoreinstein/goborg/pkg/borg"
)

// repository returns the target repository, preferring the flag over the
// config file.
func repository() (string, error) {
	if repoFlag != "" {
		return repoFlag, nil
	}
	if cfg.Repository != "" {
		return cfg.Repository, nil
	}
	return "", errors.NewUserError(errors.ErrNoRepository,
		"pass --repository or set repository in the config")
}

// newClient builds a borg client from config and flags. Operations that
// never touch repository keys must pass withCredential=false, matching
// the library's keyless policy.
func newClient(cmd *cobra.Command, withCredential bool) *borg.Client {
	c := borg.New()
	c.Options = borg.CommonOptions{
		BinaryPath:      cfg.Binary,
		RemotePath:      cfg.RemotePath,
		RSH:             cfg.RSH,
		UploadRateLimit: cfg.UploadRateLimit,
	}
	c.Timeout = timeoutFlag
	c.Logger = logging.FromContext(cmd.Context())
	if withCredential {
		c.Credential = resolveCredential()
	}
	return c
}

// resolveCredential picks the passphrase source: config file entry, then
// passphrase command, then the inherited BORG_PASSPHRASE variable.
func resolveCredential() borg.Credential {
	if cfg.PassphraseFile != "" {
		return borg.PassphraseFile(cfg.PassphraseFile)
	}
	if cfg.PassphraseCommand != "" {
		return borg.PassphraseCommand(cfg.PassphraseCommand)
	}
	if secret, ok := os.LookupEnv("BORG_PASSPHRASE"); ok && secret != "" {
		return borg.Passphrase(secret)
	}
	return borg.NoCredential()
}

// promptPassphrase reads a passphrase from the terminal without echo.
// Used when an operation needs a secret and none is configured.
func promptPassphrase(prompt string) (borg.Credential, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return borg.NoCredential(), errors.NewUserError(errors.ErrNoPassphrase,
			"set passphrase_file or passphrase_command in the config, or run interactively")
	}
	os.Stderr.WriteString(prompt)
	secret, err := term.ReadPassword(fd)
	os.Stderr.WriteString("\n")
	if err != nil {
		return borg.NoCredential(), errors.Wrap(err, "reading passphrase")
	}
	if len(secret) == 0 {
		return borg.NoCredential(), errors.NewUserError(errors.ErrNoPassphrase, "empty passphrase")
	}
	return borg.Passphrase(string(secret)), nil
}

// describeBorgError attaches an exit code and, for the well-known
// failures, an actionable hint.
func describeBorgError(err error) error {
	switch {
	case err == nil:
		return nil
	case borg.IsRepositoryExists(err):
		return errors.NewExitError(err, errors.ExitFailure)
	case borg.IsRepositoryDoesNotExist(err):
		return &errors.ExitError{Err: err, Code: errors.ExitFailure,
			Suggestion: "Run: goborg init"}
	case borg.IsPassphraseWrong(err):
		return &errors.ExitError{Err: err, Code: errors.ExitFailure,
			Suggestion: "Check passphrase_file / passphrase_command in the config"}
	case borg.IsLockTimeout(err):
		return &errors.ExitError{Err: err, Code: errors.ExitFailure,
			Suggestion: "Another borg holds the repository lock; wait or run: borg break-lock"}
	case borg.IsTimeout(err):
		return &errors.ExitError{Err: err, Code: errors.ExitFailure,
			Suggestion: "Raise --timeout or run without one"}
	default:
		return errors.NewExitError(err, errors.ExitFailure)
	}
}

// reportWarning surfaces a warning outcome without failing the command.
// The process still exits with borg's warning code so scripts notice.
func reportWarning[T any](out borg.Outcome[T]) error {
	if !out.Warned() {
		return nil
	}
	slog.Warn("borg reported a warning", "detail", out.Warning)
	return errors.NewExitError(nil, errors.ExitWarning)
}
