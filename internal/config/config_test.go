package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/b62/internal/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultMaxBatchSize, cfg.Batch.MaxSize)
	assert.Equal(t, 0, cfg.Batch.Workers)
	assert.Equal(t, DefaultChunkSize, cfg.Batch.ChunkSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, FormatText, cfg.Output.DefaultFormat)
	require.NoError(t, cfg.Validate())
}

func TestHomeDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)

	assert.Equal(t, dir, HomeDir())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), DefaultConfigPath())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxBatchSize, cfg.Batch.MaxSize)
	assert.Equal(t, path, cfg.ConfigPath())
}

func TestLoad_PartialSectionKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
batch:
  workers: 3
output:
  default_format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Batch.Workers)
	assert.Equal(t, DefaultMaxBatchSize, cfg.Batch.MaxSize)
	assert.Equal(t, DefaultChunkSize, cfg.Batch.ChunkSize)
	assert.Equal(t, FormatJSON, cfg.Output.DefaultFormat)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_UnknownKeysIgnored(t *testing.T) {
	path := writeConfig(t, `
plugins:
  aws: {}
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeConfig(t, "# nothing here\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Batch, cfg.Batch)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "batch: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing overlay YAML")
}

func TestLoad_WrongSectionType(t *testing.T) {
	path := writeConfig(t, "batch:\n  max_size: lots\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"batch"`)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "batch:\n  max_size: 10\n  workers: 2\n")
	t.Setenv(EnvMaxBatchSize, "25")
	t.Setenv(EnvOutput, FormatNDJSON)
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Batch.MaxSize)
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.Equal(t, FormatNDJSON, cfg.Output.DefaultFormat)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_EnvNotInteger(t *testing.T) {
	t.Setenv(EnvWorkers, "many")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), EnvWorkers)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvChunkSize: "128",
		EnvLogFormat: "json",
		EnvWorkers:   "",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.applyEnv(lookup))
	assert.Equal(t, 128, cfg.Batch.ChunkSize)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 0, cfg.Batch.Workers, "empty value leaves the field alone")
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		require.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("sets unset variables only", func(t *testing.T) {
		// Register cleanup for both keys, then clear the one .env should fill.
		t.Setenv(EnvChunkSize, "placeholder")
		require.NoError(t, os.Unsetenv(EnvChunkSize))
		t.Setenv(EnvOutput, FormatTable)

		path := filepath.Join(t.TempDir(), ".env")
		content := EnvChunkSize + "=64\n" + EnvOutput + "=json\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		require.NoError(t, loadDotEnv(path))
		assert.Equal(t, "64", os.Getenv(EnvChunkSize))
		assert.Equal(t, FormatTable, os.Getenv(EnvOutput))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero max size", func(c *Config) { c.Batch.MaxSize = 0 }, "batch.max_size"},
		{"negative workers", func(c *Config) { c.Batch.Workers = -1 }, "batch.workers"},
		{"zero chunk", func(c *Config) { c.Batch.ChunkSize = 0 }, "batch.chunk_size"},
		{"huge chunk", func(c *Config) { c.Batch.ChunkSize = MaxChunkSize + 1 }, "batch.chunk_size"},
		{"bad format", func(c *Config) { c.Output.DefaultFormat = "xml" }, "output.default_format"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"upper level ok", func(c *Config) { c.Logging.Level = "DEBUG" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Batch.MaxSize = 0
	cfg.Batch.Workers = -2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch.max_size")
	assert.Contains(t, err.Error(), "batch.workers")
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.SetConfigPath(path)
	cfg.Batch.Workers = 7
	require.NoError(t, cfg.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Batch.Workers)
	assert.Equal(t, cfg.Output, loaded.Output)
}

func TestSave_EmptyPath(t *testing.T) {
	cfg := Default()
	cfg.SetConfigPath("")
	require.Error(t, cfg.Save())
}

func TestIsValidFormat(t *testing.T) {
	assert.True(t, IsValidFormat(FormatTable))
	assert.False(t, IsValidFormat("yaml"))
}

func TestToLoggingConfig(t *testing.T) {
	stderr := LoggingConfig{Level: "debug", Format: "JSON"}.ToLoggingConfig()
	assert.Equal(t, logging.Config{Level: "debug", Format: logging.FormatJSON, Output: logging.OutputStderr}, stderr)

	file := LoggingConfig{Level: "info", Format: "console", File: "/tmp/b62.log"}.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, file.Output)
	assert.Equal(t, "/tmp/b62.log", file.File)
}
