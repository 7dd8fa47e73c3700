package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/schoolconsole/internal/config"
	"github.com/rshade/schoolconsole/internal/console"
	"github.com/rshade/schoolconsole/internal/logging"
	"github.com/rshade/schoolconsole/internal/school"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the schoolconsole CLI.
// It wires up configuration, logging, tracing, audit logging, one command
// group per registered entity module, and the console-wide commands.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithArgs(ver, school.Registry(), os.LookupEnv)
}

// NewRootCmdWithArgs creates the root command with an explicit module
// registry and env lookup for testability.
func NewRootCmdWithArgs(
	ver string,
	registry *console.Registry,
	lookupEnv func(string) (string, bool),
) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "schoolconsole",
		Short:   "Administrative console for the school platform",
		Long:    "schoolconsole: browse, search and maintain school records through the platform's REST API",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, lookupEnv)
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "overlay config file merged onto ~/.schoolconsole/config.yaml")
	cmd.PersistentFlags().String("api-url", "", "backend base URL (overrides config file and env var)")

	for _, m := range registry.All() {
		cmd.AddCommand(newModuleCmd(m))
	}
	cmd.AddCommand(
		newModulesCmd(registry),
		newConfigCmd(lookupEnv),
		newSummaryCmd(registry),
		newTUICmd(registry),
		newDevServerCmd(),
		newVersionCmd(),
	)

	return cmd
}

// loadConfig builds the effective configuration: defaults, the home config
// file, the --config overlay, the environment and finally CLI flags.
func loadConfig(cmd *cobra.Command, lookupEnv func(string) (string, bool)) (*config.Config, error) {
	cfg := config.Default()

	if path, err := homeConfigPath(lookupEnv); err == nil {
		loadHomeConfig(cmd, cfg, path)
	}

	if overlay, _ := cmd.Flags().GetString("config"); overlay != "" {
		if err := config.ShallowMergeYAML(cfg, overlay); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv(lookupEnv)

	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// homeConfigPath resolves the user config file, honoring SCHOOLCONSOLE_HOME
// as seen through lookupEnv.
func homeConfigPath(lookupEnv func(string) (string, bool)) (string, error) {
	if dir, ok := lookupEnv(config.EnvHome); ok && dir != "" {
		return filepath.Join(dir, "config.yaml"), nil
	}
	return config.GetConfigPath()
}

func loadHomeConfig(cmd *cobra.Command, cfg *config.Config, path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := cfg.Load(path); err != nil {
		cmd.PrintErrf("Warning: ignoring config file: %v\n", err)
		*cfg = *config.Default()
	}
}

const rootCmdExample = `  # List active students, second page
  schoolconsole students list --page 2

  # Search inactive users by name
  schoolconsole users list --inactive --search laura

  # Soft-delete and restore a course
  schoolconsole courses delete crs-001
  schoolconsole courses restore crs-001

  # Create an event from a YAML file
  schoolconsole events create --file event.yaml

  # Open the interactive console on the behavior records module
  schoolconsole tui behavior-records

  # Run the in-memory development backend
  schoolconsole dev-server --addr 127.0.0.1:8080`
