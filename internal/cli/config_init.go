package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/b62/internal/config"
)

// newConfigInitCmd creates the config init command for initializing configuration.
// It writes the built-in defaults to the resolved config path
// ($B62_HOME/config.yaml unless --config is given).
func newConfigInitCmd(s *session) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at
$B62_HOME/config.yaml (default ~/.b62/config.yaml), or at --config.`,
		Example: `  # Create global configuration
  b62 config init

  # Create configuration, overwriting existing
  b62 config init --force`,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, s.cfg.ConfigPath(), force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

// initConfig saves the default configuration to path.
func initConfig(cmd *cobra.Command, path string, force bool) error {
	// Check if config already exists and force isn't set
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	cfg := config.Default()
	cfg.SetConfigPath(path)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)

	return nil
}
