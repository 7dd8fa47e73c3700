package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/schoolconsole/internal/config"
)

// ErrConfigExists is returned by "config init" when a config file is present.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// newConfigCmd groups the configuration subcommands.
func newConfigCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the console configuration",
	}
	cmd.AddCommand(
		newConfigInitCmd(lookupEnv),
		newConfigValidateCmd(),
	)
	return cmd
}

// newConfigInitCmd writes the default configuration to the user config file.
func newConfigInitCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	var (
		force   bool
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates ~/.schoolconsole/config.yaml (or $SCHOOLCONSOLE_HOME/config.yaml)
with the default settings.`,
		Example: `  # Create the configuration
  schoolconsole config init

  # Point it at a deployed backend, overwriting an existing file
  schoolconsole config init --base-url https://school.example.com/api --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := homeConfigPath(lookupEnv)
			if err != nil {
				return err
			}

			if !force {
				if _, statErr := os.Stat(path); statErr == nil {
					return fmt.Errorf("%w: %s", ErrConfigExists, path)
				} else if !os.IsNotExist(statErr) {
					return fmt.Errorf("cannot access config path %s: %w", path, statErr)
				}
			}

			cfg := config.Default()
			if baseURL != "" {
				cfg.API.BaseURL = baseURL
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			if err = cfg.Save(path); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			cmd.Printf("Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "backend base URL to store")

	return cmd
}
