// Package config provides configuration management for goborg using Viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/thoreinstein/goborg/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = paths.AppName

// Config represents the top-level configuration structure.
type Config struct {
	// Repository is the default repository location.
	Repository string `mapstructure:"repository" yaml:"repository"`

	// Binary overrides the borg executable used locally.
	Binary string `mapstructure:"binary" yaml:"binary"`

	// RemotePath overrides the borg executable on the remote side.
	RemotePath string `mapstructure:"remote_path" yaml:"remote_path"`

	// RSH is the remote shell command for ssh:// repositories.
	RSH string `mapstructure:"rsh" yaml:"rsh"`

	// UploadRateLimit caps upload bandwidth in kiB/s. Zero is unlimited.
	UploadRateLimit uint `mapstructure:"upload_ratelimit" yaml:"upload_ratelimit"`

	// PassphraseFile names a file whose first line is the passphrase.
	PassphraseFile string `mapstructure:"passphrase_file" yaml:"passphrase_file"`

	// PassphraseCommand is a command borg runs to obtain the passphrase.
	PassphraseCommand string `mapstructure:"passphrase_command" yaml:"passphrase_command"`

	// Compression is the default for create, e.g. "zstd,3".
	Compression string `mapstructure:"compression" yaml:"compression"`

	// Prune holds the default retention policy.
	Prune PruneConfig `mapstructure:"prune" yaml:"prune"`
}

// PruneConfig is the retention policy applied by the prune command when
// no flags override it.
type PruneConfig struct {
	KeepWithin  string `mapstructure:"keep_within" yaml:"keep_within"`
	KeepDaily   uint   `mapstructure:"keep_daily" yaml:"keep_daily"`
	KeepWeekly  uint   `mapstructure:"keep_weekly" yaml:"keep_weekly"`
	KeepMonthly uint   `mapstructure:"keep_monthly" yaml:"keep_monthly"`
	KeepYearly  uint   `mapstructure:"keep_yearly" yaml:"keep_yearly"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support: GOBORG_REPOSITORY etc.
	viper.SetEnvPrefix("GOBORG")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("binary", "borg")
	viper.SetDefault("compression", "")
	viper.SetDefault("prune.keep_daily", 7)
	viper.SetDefault("prune.keep_weekly", 4)
	viper.SetDefault("prune.keep_monthly", 6)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Users write ~/backups/repo in YAML; borg gets the real path.
	for _, p := range []*string{&cfg.Repository, &cfg.Binary, &cfg.PassphraseFile} {
		expanded, err := paths.ExpandHome(*p)
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", *p, err)
		}
		*p = expanded
	}

	return &cfg, nil
}
