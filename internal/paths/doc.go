// Package paths resolves the directories goborg keeps its own files in.
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base
// Directory Specification compliance. On Linux and macOS, paths follow
// XDG conventions (~/.config, ~/.cache).
//
//	paths.ConfigDir()       // ~/.config/goborg/
//	paths.DefaultMountDir() // ~/.cache/goborg/mnt/
//
// None of this concerns borg's repositories or caches; those live
// wherever borg puts them.
package paths
