package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/goborg/pkg/borg"
)

var (
	initEncryption     string
	initAppendOnly     bool
	initMakeParentDirs bool
	initStorageQuota   string
)

func init() {
	initCmd.Flags().StringVarP(&initEncryption, "encryption", "e", "repokey",
		"encryption mode: none, repokey, keyfile, authenticated, repokey-blake2, keyfile-blake2, authenticated-blake2")
	initCmd.Flags().BoolVar(&initAppendOnly, "append-only", false,
		"create an append-only repository")
	initCmd.Flags().BoolVar(&initMakeParentDirs, "make-parent-dirs", false,
		"create missing parent directories")
	initCmd.Flags().StringVar(&initStorageQuota, "storage-quota", "",
		"repository size limit, e.g. 5G")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new repository",
	Long: `Create a new borg repository at the configured location.

Encrypted modes need a passphrase. It is taken from passphrase_file or
passphrase_command in the config, the BORG_PASSPHRASE environment
variable, or prompted interactively as a last resort.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	repo, err := repository()
	if err != nil {
		return err
	}

	mode := borg.EncryptionMode(initEncryption)
	client := newClient(cmd, mode != borg.EncryptionNone)

	if mode != borg.EncryptionNone && client.Credential.IsNone() {
		cred, err := promptPassphrase("New passphrase: ")
		if err != nil {
			return err
		}
		client.Credential = cred
	}

	out, err := client.InitContext(cmd.Context(), borg.InitOptions{
		Repository:     repo,
		Encryption:     mode,
		AppendOnly:     initAppendOnly,
		MakeParentDirs: initMakeParentDirs,
		StorageQuota:   initStorageQuota,
	})
	if err != nil {
		return describeBorgError(err)
	}

	okColor.Fprintf(cmd.OutOrStdout(), "Repository created at %s (%s)\n", repo, mode)
	if mode != borg.EncryptionNone {
		fmt.Fprintln(cmd.OutOrStdout(), "Keep the passphrase safe: without it the repository is unreadable.")
	}
	return reportWarning(out)
}
