package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables recognised by Load.
const (
	EnvHome         = "B62_HOME"
	EnvMaxBatchSize = "B62_MAX_BATCH_SIZE"
	EnvWorkers      = "B62_WORKERS"
	EnvChunkSize    = "B62_CHUNK_SIZE"
	EnvLogLevel     = "B62_LOG_LEVEL"
	EnvLogFormat    = "B62_LOG_FORMAT"
	EnvOutput       = "B62_OUTPUT"
)

// Defaults and bounds for the batch section.
const (
	DefaultMaxBatchSize = 1_000_000
	DefaultChunkSize    = 4096
	MinChunkSize        = 1
	MaxChunkSize        = 1 << 16
)

// Output formats accepted in output.default_format and --output.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatTable  = "table"
)

// dotEnvFile is the best-effort .env overlay read from the working directory.
const dotEnvFile = ".env"

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

//nolint:gochecknoglobals // Compile-time constant lookup tables.
var (
	validFormats   = []string{FormatText, FormatJSON, FormatNDJSON, FormatTable}
	validLogLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}
	validLogFmts   = []string{"console", "json"}
)

// Config is the b62 configuration file.
type Config struct {
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`

	configPath string
}

// BatchConfig tunes the batch engine.
type BatchConfig struct {
	// MaxSize is the largest batch admitted by encode/decode batch operations.
	MaxSize int `yaml:"max_size"`

	// Workers bounds concurrency. 0 means one worker per CPU.
	Workers int `yaml:"workers"`

	// ChunkSize is the number of consecutive elements per unit of work.
	ChunkSize int `yaml:"chunk_size"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Batch: BatchConfig{
			MaxSize:   DefaultMaxBatchSize,
			Workers:   0,
			ChunkSize: DefaultChunkSize,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			DefaultFormat: FormatText,
		},
		configPath: DefaultConfigPath(),
	}
}

// HomeDir returns the b62 configuration directory: $B62_HOME, or ~/.b62.
func HomeDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".b62"
	}
	return filepath.Join(home, ".b62")
}

// DefaultConfigPath returns the path of the global configuration file.
func DefaultConfigPath() string {
	return filepath.Join(HomeDir(), "config.yaml")
}

// Load builds a Config from defaults, the YAML file at path (if it exists),
// a .env file in the working directory (if it exists) and the environment.
// An empty path means DefaultConfigPath. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultConfigPath()
	}
	cfg.configPath = path

	if _, err := os.Stat(path); err == nil {
		if mergeErr := ShallowMergeYAML(cfg, path); mergeErr != nil {
			return nil, mergeErr
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("cannot access config path %s: %w", path, err)
	}

	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDotEnv exports variables from a .env file without overriding the
// existing environment. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from environment variables.
func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) error {
	ints := []struct {
		name   string
		target *int
	}{
		{EnvMaxBatchSize, &c.Batch.MaxSize},
		{EnvWorkers, &c.Batch.Workers},
		{EnvChunkSize, &c.Batch.ChunkSize},
	}
	for _, v := range ints {
		raw, ok := lookupEnv(v.name)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, v.name, raw)
		}
		*v.target = n
	}

	strs := []struct {
		name   string
		target *string
	}{
		{EnvLogLevel, &c.Logging.Level},
		{EnvLogFormat, &c.Logging.Format},
		{EnvOutput, &c.Output.DefaultFormat},
	}
	for _, v := range strs {
		if raw, ok := lookupEnv(v.name); ok && raw != "" {
			*v.target = raw
		}
	}

	return nil
}

// Validate reports every out-of-range setting, joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if c.Batch.MaxSize < 1 {
		errs = append(errs, fmt.Errorf("%w: batch.max_size must be >= 1, got %d",
			ErrInvalidConfig, c.Batch.MaxSize))
	}
	if c.Batch.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: batch.workers must be >= 0, got %d",
			ErrInvalidConfig, c.Batch.Workers))
	}
	if c.Batch.ChunkSize < MinChunkSize || c.Batch.ChunkSize > MaxChunkSize {
		errs = append(errs, fmt.Errorf("%w: batch.chunk_size must be between %d and %d, got %d",
			ErrInvalidConfig, MinChunkSize, MaxChunkSize, c.Batch.ChunkSize))
	}
	if !slices.Contains(validFormats, c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("%w: output.default_format must be one of %v, got %q",
			ErrInvalidConfig, validFormats, c.Output.DefaultFormat))
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ConfigPath returns the file this Config was loaded from or will be saved to.
func (c *Config) ConfigPath() string { return c.configPath }

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) { c.configPath = path }

// Save writes the configuration as YAML, creating the parent directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsValidFormat reports whether format is a known output format.
func IsValidFormat(format string) bool {
	return slices.Contains(validFormats, format)
}
