package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/thoreinstein/goborg/internal/config"
	"github.com/thoreinstein/goborg/pkg/borg"
	"github.com/thoreinstein/goborg/pkg/fileutil"
)

// groupOtherReadable matches permission bits that expose a file beyond
// its owner.
const groupOtherReadable os.FileMode = 0077

// ConfigCheck validates the loaded configuration file.
type ConfigCheck struct {
	Cfg *config.Config

	// LoadErr is the error from loading the config file, if any.
	LoadErr error
}

var _ Check = (*ConfigCheck)(nil)

func (c *ConfigCheck) Name() string     { return "config" }
func (c *ConfigCheck) Category() string { return "config" }

func (c *ConfigCheck) Run(_ context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if c.LoadErr != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("configuration failed to load: %v", c.LoadErr)
		result.FixHint = "fix or remove the config file"
		return result
	}

	if errs := config.Validate(c.Cfg); len(errs) > 0 {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("configuration has %d problem(s)", len(errs))
		result.Details = map[string]any{}
		for i, err := range errs {
			result.Details[fmt.Sprintf("problem_%d", i+1)] = err.Error()
		}
		return result
	}

	result.Status = SeverityPass
	result.Message = "configuration is valid"
	return result
}

// BinaryCheck verifies that the borg binary exists and runs.
type BinaryCheck struct {
	Client *borg.Client
}

var _ Check = (*BinaryCheck)(nil)

func (c *BinaryCheck) Name() string     { return "borg-binary" }
func (c *BinaryCheck) Category() string { return "borg" }

func (c *BinaryCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	version, err := c.Client.Version(ctx)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("borg could not be run: %v", err)
		result.FixHint = "install borgbackup, or set binary in the config file"
		return result
	}

	result.Status = SeverityPass
	result.Message = "borg " + version
	return result
}

// PassphraseCheck inspects the configured passphrase source.
type PassphraseCheck struct {
	Cfg *config.Config
}

var _ Check = (*PassphraseCheck)(nil)

func (c *PassphraseCheck) Name() string     { return "passphrase" }
func (c *PassphraseCheck) Category() string { return "config" }

func (c *PassphraseCheck) Run(_ context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	switch {
	case c.Cfg.PassphraseFile != "":
		secret, err := fileutil.ReadTrimmedLine(c.Cfg.PassphraseFile)
		if err != nil {
			result.Status = SeverityError
			result.Message = fmt.Sprintf("passphrase file unreadable: %v", err)
			result.FixHint = "create the file or fix passphrase_file in the config"
			return result
		}
		if secret == "" {
			result.Status = SeverityError
			result.Message = "passphrase file is empty"
			return result
		}
		info, err := os.Stat(c.Cfg.PassphraseFile)
		if err != nil {
			result.Status = SeverityError
			result.Message = fmt.Sprintf("passphrase file unreadable: %v", err)
			return result
		}
		if info.Mode().Perm()&groupOtherReadable != 0 {
			result.Status = SeverityWarning
			result.Message = fmt.Sprintf("passphrase file %s is readable by other users (%04o)",
				c.Cfg.PassphraseFile, info.Mode().Perm())
			result.FixHint = "Run: chmod 600 " + c.Cfg.PassphraseFile
			return result
		}
		result.Status = SeverityPass
		result.Message = "passphrase file present with safe permissions"

	case c.Cfg.PassphraseCommand != "":
		result.Status = SeverityPass
		result.Message = "passphrase comes from a command"

	case os.Getenv("BORG_PASSPHRASE") != "":
		result.Status = SeverityWarning
		result.Message = "passphrase comes from the BORG_PASSPHRASE environment variable"
		result.FixHint = "prefer passphrase_file or passphrase_command in the config"

	default:
		result.Status = SeverityInfo
		result.Message = "no passphrase source configured (fine for unencrypted repositories)"
	}
	return result
}

// RepositoryCheck verifies that the configured repository answers.
type RepositoryCheck struct {
	// Repository is the resolved repository location, empty when none is
	// configured.
	Repository string

	Client *borg.Client
}

var _ Check = (*RepositoryCheck)(nil)

func (c *RepositoryCheck) Name() string     { return "repository" }
func (c *RepositoryCheck) Category() string { return "borg" }

func (c *RepositoryCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if c.Repository == "" {
		result.Status = SeverityWarning
		result.Message = "no repository configured"
		result.FixHint = "set repository in the config file or pass --repository"
		return result
	}

	out, err := c.Client.ListContext(ctx, borg.ListOptions{Repository: c.Repository})
	switch {
	case borg.IsRepositoryDoesNotExist(err):
		result.Status = SeverityError
		result.Message = fmt.Sprintf("repository %s does not exist", c.Repository)
		result.FixHint = "Run: goborg init"
	case borg.IsPassphraseWrong(err):
		result.Status = SeverityError
		result.Message = "repository exists but the passphrase is wrong"
		result.FixHint = "check the configured passphrase source"
	case err != nil:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("repository unreachable: %v", err)
	case out.Warned():
		result.Status = SeverityWarning
		result.Message = "repository answered with a warning: " + out.Warning
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("repository reachable, %d archive(s)", len(out.Value.Archives))
	}
	return result
}
