package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newConfigValidateCmd creates the config validate command for validating configuration.
func newConfigValidateCmd(s *session) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the config file, .env, B62_*
environment variables and flags, for syntax and value ranges.

This includes:
- batch.max_size >= 1
- batch.workers >= 0
- batch.chunk_size between 1 and 65536
- known logging level and format
- known output format`,
		Example: `  # Validate current configuration
  b62 config validate

  # Validate and show detailed information
  b62 config validate --verbose`,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, s, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, s *session, verbose bool) error {
	if s.loadErr != nil {
		return usageError(fmt.Errorf("configuration validation failed: %w", s.loadErr))
	}
	if err := s.cfg.Validate(); err != nil {
		return usageError(fmt.Errorf("configuration validation failed: %w", err))
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, s)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, s *session) {
	cfg := s.cfg
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	cmd.Printf("  Max batch size: %d\n", cfg.Batch.MaxSize)
	if cfg.Batch.Workers == 0 {
		cmd.Println("  Workers: one per CPU")
	} else {
		cmd.Printf("  Workers: %d\n", cfg.Batch.Workers)
	}
	cmd.Printf("  Chunk size: %d\n", cfg.Batch.ChunkSize)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
}

// newConfigShowCmd creates the config show command that prints the effective configuration.
func newConfigShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Example: `  # Show configuration with an override applied
  B62_WORKERS=4 b62 config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(s.cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			cmd.Printf("# %s\n%s", s.cfg.ConfigPath(), data)
			return nil
		},
	}
}
