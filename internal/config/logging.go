package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rshade/b62/internal/logging"
)

// LoggingConfig is the logging section of the configuration file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Validate rejects unknown level and format names.
func (lc LoggingConfig) Validate() error {
	if !slices.Contains(validLogLevels, strings.ToLower(lc.Level)) {
		return fmt.Errorf("%w: logging.level must be one of %v, got %q", ErrInvalidConfig, validLogLevels, lc.Level)
	}
	if !slices.Contains(validLogFmts, strings.ToLower(lc.Format)) {
		return fmt.Errorf("%w: logging.format must be one of %v, got %q", ErrInvalidConfig, validLogFmts, lc.Format)
	}
	return nil
}

// ToLoggingConfig converts config.LoggingConfig to logging.Config for use with
// the internal/logging package.
//
// The conversion applies these rules:
//   - Level, Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: strings.ToLower(lc.Format),
		Output: output,
		File:   lc.File,
	}
}
