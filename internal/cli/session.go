package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/schoolconsole/internal/config"
	"github.com/rshade/schoolconsole/internal/console"
	"github.com/rshade/schoolconsole/internal/lifecycle"
	"github.com/rshade/schoolconsole/internal/logging"
	"github.com/rshade/schoolconsole/internal/repository"
)

// newClient builds the backend client from the global configuration.
func newClient(cmd *cobra.Command) (*repository.Client, error) {
	cfg := config.GetGlobalConfig()
	log := logging.FromContext(cmd.Context())

	client, err := repository.NewClient(cfg.API.BaseURL,
		repository.WithTimeout(cfg.API.Timeout),
		repository.WithToken(cfg.API.Token),
		repository.WithLogger(*log),
	)
	if err != nil {
		return nil, fmt.Errorf("configuring backend client: %w", err)
	}
	return client, nil
}

// openSession opens module against the configured backend.
func openSession(cmd *cobra.Command, m console.Module, gateway lifecycle.Gateway, perPage int) (console.Session, error) {
	client, err := newClient(cmd)
	if err != nil {
		return nil, err
	}
	cfg := config.GetGlobalConfig()
	if perPage <= 0 {
		perPage = cfg.UI.ItemsPerPage
	}
	return m.Open(console.Env{
		Client:      client,
		Gateway:     gateway,
		Notifier:    cliNotifier{cmd: cmd},
		PerPage:     perPage,
		LoadTimeout: cfg.API.Timeout,
		Logger:      *logging.FromContext(cmd.Context()),
	}), nil
}

// cliNotifier prints success notices. Failures are returned as errors and
// reported by cobra, so they are not printed twice.
type cliNotifier struct {
	cmd *cobra.Command
}

func (n cliNotifier) Notify(notice lifecycle.Notice) {
	if notice.Level == lifecycle.LevelSuccess {
		n.cmd.Println(notice.Message)
	}
}
