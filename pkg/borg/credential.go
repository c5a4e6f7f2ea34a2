package borg

import (
	"github.com/thoreinstein/goborg/internal/cmdline"
)

// Environment variables understood by borg for passphrase delivery.
const (
	envPassphrase   = "BORG_PASSPHRASE"
	envPassphraseFD = "BORG_PASSPHRASE_FD"
	envPassCommand  = "BORG_PASSCOMMAND"
)

// CredentialMode identifies how the repository passphrase reaches borg.
type CredentialMode int

// The closed set of credential delivery modes. Exactly one is active per
// invocation; the Credential constructors make other states unrepresentable.
const (
	// CredentialNone supplies no secret; valid for unencrypted
	// repositories and for keyless operations.
	CredentialNone CredentialMode = iota

	// CredentialPassphrase places the secret in the BORG_PASSPHRASE
	// environment variable of the child process (and nowhere else).
	CredentialPassphrase

	// CredentialPassphraseFile streams the content of a local file to the
	// child's stdin, announced via BORG_PASSPHRASE_FD=0. The secret never
	// enters the environment or the argument vector.
	CredentialPassphraseFile

	// CredentialPassphraseCommand tells borg to run a command and use its
	// output as the passphrase (BORG_PASSCOMMAND). Only the command line
	// is transmitted, never the secret itself.
	CredentialPassphraseCommand
)

// Credential is the passphrase delivery choice for a Client. The zero
// value supplies no credential.
type Credential struct {
	mode  CredentialMode
	value string
}

// NoCredential returns the explicit "no secret" credential.
func NoCredential() Credential { return Credential{} }

// Passphrase delivers secret via the child's environment.
func Passphrase(secret string) Credential {
	return Credential{mode: CredentialPassphrase, value: secret}
}

// PassphraseFile streams the content of path to borg's stdin.
func PassphraseFile(path string) Credential {
	return Credential{mode: CredentialPassphraseFile, value: path}
}

// PassphraseCommand makes borg obtain the passphrase by running command.
func PassphraseCommand(command string) Credential {
	return Credential{mode: CredentialPassphraseCommand, value: command}
}

// Mode returns the delivery mode.
func (c Credential) Mode() CredentialMode { return c.mode }

// IsNone reports whether no secret is supplied.
func (c Credential) IsNone() bool { return c.mode == CredentialNone }

func (c Credential) validate() error {
	switch c.mode {
	case CredentialNone:
		return nil
	case CredentialPassphrase:
		if c.value == "" {
			return invalidf("Credential", "empty passphrase")
		}
	case CredentialPassphraseFile:
		if c.value == "" {
			return invalidf("Credential", "empty passphrase file path")
		}
	case CredentialPassphraseCommand:
		if c.value == "" {
			return invalidf("Credential", "empty passphrase command")
		}
	}
	return nil
}

// apply wires the credential into the child environment and returns the
// stdin payload path, when the file-streaming mode is active.
func (c Credential) apply(b *cmdline.Builder) (stdinPath string) {
	switch c.mode {
	case CredentialPassphrase:
		b.Setenv(envPassphrase, c.value)
	case CredentialPassphraseFile:
		b.Setenv(envPassphraseFD, "0")
		return c.value
	case CredentialPassphraseCommand:
		b.Setenv(envPassCommand, c.value)
	}
	return ""
}
