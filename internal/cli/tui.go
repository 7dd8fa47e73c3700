package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/schoolconsole/internal/config"
	"github.com/rshade/schoolconsole/internal/console"
	"github.com/rshade/schoolconsole/internal/logging"
	"github.com/rshade/schoolconsole/internal/tui"
)

// ErrNotTerminal is returned when the console is started without a terminal.
var ErrNotTerminal = errors.New("the interactive console requires a terminal; use the list commands instead")

func newTUICmd(registry *console.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [module]",
		Short: "Open the interactive console",
		Long: `Open the interactive console on a module (students by default).

Keys: ←/→ page, ↑/↓ select, / search, c cycle category, i switch between
active and inactive records, d delete, r restore, tab next module, q quit.`,
		Example: `  schoolconsole tui
  schoolconsole tui courses`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var start console.Module
			if len(args) == 1 {
				m, err := registry.Lookup(args[0])
				if err != nil {
					return err
				}
				start = m
			}

			if !isTerminal(os.Stdout) || !interactiveInput(cmd) {
				return ErrNotTerminal
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cfg := config.GetGlobalConfig()
			log := logging.FromContext(ctx)
			log.Debug().Ctx(ctx).Str("component", "cli").Msg("starting interactive console")

			return tui.Run(ctx, tui.Options{
				Registry: registry,
				Start:    start,
				Env: console.Env{
					Client:      client,
					PerPage:     cfg.UI.ItemsPerPage,
					LoadTimeout: cfg.API.Timeout,
					Logger:      *log,
				},
				MaxVisible: cfg.UI.MaxVisiblePages,
			})
		},
	}
}
