package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/b62/internal/config"
	"github.com/rshade/b62/internal/engine/batch"
	"github.com/rshade/b62/internal/logging"
)

// annotationConfigOptional marks commands that still run when the config
// file cannot be loaded. They see defaults and the load error.
const annotationConfigOptional = "b62/config-optional"

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// session is the per-invocation state resolved by the root command before
// any subcommand runs.
type session struct {
	cfg     *config.Config
	loadErr error
	logger  zerolog.Logger

	logResult *logging.LogPathResult
}

// NewRootCmd creates the root Cobra command for the b62 CLI.
// It loads configuration, applies flag overrides, sets up logging and trace
// IDs, and wires the encode, decode, batch, config and version subcommands.
func NewRootCmd(ver string) *cobra.Command {
	s := &session{logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:           "b62",
		Short:         "Base62 encoder and decoder for unsigned 64-bit integers",
		Long:          "b62: Convert uint64 values to and from Base62 (0-9A-Za-z), one at a time or in parallel batches",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd, s)
			s.logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, s.logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file path (default $B62_HOME/config.yaml)")
	cmd.PersistentFlags().Int("max-batch-size", 0, "maximum elements per batch (0 = use config value)")
	cmd.PersistentFlags().Int("workers", 0, "parallel workers for batch conversion (0 = use config value)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: text, json, ndjson or table (default from config)")

	cmd.AddCommand(
		newEncodeCmd(s), newDecodeCmd(s), newBatchCmd(s),
		newConfigCmd(s), newVersionCmd(ver),
	)

	return cmd
}

const rootCmdExample = `  # Encode numbers
  b62 encode 123456789 18446744073709551615

  # Decode strings as JSON
  b62 decode 8M0kX LygHa16AHYF --output json

  # Decode a newline-delimited file in parallel
  b62 batch decode --input ids.txt --workers 8 --stats

  # Encode numbers from stdin, skipping blank lines
  seq 1 100000 | b62 batch encode --skip-blank --output ndjson

  # Initialize configuration
  b62 config init`

// loadConfig resolves the configuration: config file, .env, environment and
// finally explicitly set flags.
func (s *session) loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		if cmd.Annotations[annotationConfigOptional] == "" {
			return usageError(fmt.Errorf("loading configuration: %w", err))
		}
		s.loadErr = err
		cfg = config.Default()
		if path != "" {
			cfg.SetConfigPath(path)
		}
	}

	if n, _ := cmd.Flags().GetInt("max-batch-size"); n != 0 {
		cfg.Batch.MaxSize = n
	}
	if n, _ := cmd.Flags().GetInt("workers"); n != 0 {
		cfg.Batch.Workers = n
	}
	if format, _ := cmd.Flags().GetString("output"); format != "" {
		if !config.IsValidFormat(format) {
			return usageError(fmt.Errorf("unknown output format %q (want text, json, ndjson or table)", format))
		}
		cfg.Output.DefaultFormat = format
	}

	s.cfg = cfg
	return nil
}

// engine builds a batch engine from the validated configuration.
func (s *session) engine(opts ...batch.Option) (*batch.Engine, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, usageError(err)
	}

	base := []batch.Option{
		batch.WithMaxBatchSize(s.cfg.Batch.MaxSize),
		batch.WithChunkSize(s.cfg.Batch.ChunkSize),
		batch.WithLogger(logging.ComponentLogger(s.logger, "batch")),
	}
	if s.cfg.Batch.Workers > 0 {
		base = append(base, batch.WithWorkers(s.cfg.Batch.Workers))
	}

	eng, err := batch.New(append(base, opts...)...)
	if err != nil {
		return nil, usageError(err)
	}
	return eng, nil
}

// format returns the resolved output format.
func (s *session) format() string {
	return s.cfg.Output.DefaultFormat
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(newConfigInitCmd(s), newConfigValidateCmd(s), newConfigShowCmd(s))
	return cmd
}
