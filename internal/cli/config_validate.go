package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/schoolconsole/internal/config"
)

// newConfigValidateCmd reports the effective configuration. Loading and
// validation already happened in the root PersistentPreRunE, so reaching
// RunE means the configuration is valid.
func newConfigValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Long: `Loads the config file, the --config overlay, the environment and flags, and
checks the result: an absolute http(s) base URL, a positive timeout and
positive page settings.`,
		Example: `  schoolconsole config validate
  schoolconsole config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			cmd.Println("Configuration is valid")

			if verbose {
				cmd.Printf("  api.base_url:          %s\n", cfg.API.BaseURL)
				cmd.Printf("  api.timeout:           %s\n", cfg.API.Timeout)
				cmd.Printf("  api.token:             %s\n", redact(cfg.API.Token))
				cmd.Printf("  ui.items_per_page:     %d\n", cfg.UI.ItemsPerPage)
				cmd.Printf("  ui.max_visible_pages:  %d\n", cfg.UI.MaxVisiblePages)
				cmd.Printf("  logging.level:         %s\n", cfg.Logging.Level)
				cmd.Printf("  logging.format:        %s\n", cfg.Logging.Format)
				cmd.Printf("  logging.audit.enabled: %t\n", cfg.Logging.Audit.Enabled)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show the effective settings")

	return cmd
}

func redact(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	return "(set)"
}
