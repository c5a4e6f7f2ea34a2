package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/goborg/internal/paths"
	"github.com/thoreinstein/goborg/pkg/borg"
)

var (
	mountArchive string
	mountLast    uint
	mountGlob    string
)

func init() {
	mountCmd.Flags().StringVarP(&mountArchive, "archive", "a", "",
		"mount a single archive instead of the whole repository")
	mountCmd.Flags().UintVar(&mountLast, "last", 0,
		"mount only the N newest archives")
	mountCmd.Flags().StringVar(&mountGlob, "glob-archives", "",
		"mount only archives matching a shell pattern")
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(umountCmd)
}

var mountCmd = &cobra.Command{
	Use:   "mount [MOUNTPOINT]",
	Short: "Mount the repository as a FUSE filesystem",
	Long: `Mount the repository, or a single archive, as a read-only FUSE
filesystem. Without a mountpoint argument a directory under the cache
directory is created and used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMount,
}

func runMount(cmd *cobra.Command, args []string) error {
	repo, err := repository()
	if err != nil {
		return err
	}

	var mountpoint string
	if len(args) > 0 {
		mountpoint = args[0]
	} else {
		mountpoint = paths.DefaultMountDir()
		if err := paths.EnsureDir(mountpoint, paths.DefaultDirPerm); err != nil {
			return err
		}
	}

	client := newClient(cmd, true)
	out, err := client.MountContext(cmd.Context(), borg.MountOptions{
		Repository:   repo,
		Archive:      mountArchive,
		Last:         mountLast,
		GlobArchives: mountGlob,
		Mountpoint:   mountpoint,
	})
	if err != nil {
		return describeBorgError(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Mounted at %s\n", mountpoint)
	fmt.Fprintf(cmd.OutOrStdout(), "Run: goborg umount %s\n", mountpoint)
	return reportWarning(out)
}

// Umount talks to the FUSE layer only, so it never needs the key.
var umountCmd = &cobra.Command{
	Use:   "umount MOUNTPOINT",
	Short: "Unmount a mounted repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runUmount,
}

func runUmount(cmd *cobra.Command, args []string) error {
	client := newClient(cmd, false)
	out, err := client.UmountContext(cmd.Context(), args[0])
	if err != nil {
		return describeBorgError(err)
	}

	if !quiet {
		okColor.Fprintf(cmd.OutOrStdout(), "Unmounted %s\n", args[0])
	}
	return reportWarning(out)
}
