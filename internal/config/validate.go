package config

import (
	"errors"
	"path/filepath"
	"strings"
)

// Validation errors for configuration fields.
var (
	// ErrBothPassphraseSources indicates both a passphrase file and a
	// passphrase command are configured.
	ErrBothPassphraseSources = errors.New("passphrase_file and passphrase_command are mutually exclusive")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.PassphraseFile != "" && cfg.PassphraseCommand != "" {
		errs = append(errs, ErrBothPassphraseSources)
	}

	if cfg.PassphraseFile != "" {
		if err := validatePath(cfg.PassphraseFile); err != nil {
			errs = append(errs, &PathError{
				Field: "passphrase_file",
				Path:  cfg.PassphraseFile,
				Err:   err,
			})
		}
	}

	if cfg.Binary != "" {
		if err := validatePath(cfg.Binary); err != nil {
			errs = append(errs, &PathError{
				Field: "binary",
				Path:  cfg.Binary,
				Err:   err,
			})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	// Clean the path and check it's not empty after cleaning
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
