// Package config provides configuration management for the goborg CLI.
//
// This package handles loading and validating goborg's own configuration
// file. It never talks to borg; it only decides what the CLI passes on.
//
// # Configuration File
//
// The default configuration file location is ~/.config/goborg/config.yaml:
//
//	repository: ssh://backup@host/./repo
//	passphrase_command: pass show backup/borg
//	compression: zstd,3
//	prune:
//	  keep_daily: 7
//	  keep_weekly: 4
//	  keep_monthly: 6
//
// Every key can be overridden with a GOBORG_-prefixed environment
// variable, e.g. GOBORG_REPOSITORY.
//
// # Validation
//
// Loaded configurations are checked with [Validate]; the CLI reports all
// problems at once rather than failing on the first.
package config
