package cli

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/schoolconsole/internal/console"
	"github.com/rshade/schoolconsole/internal/lifecycle"
	"github.com/rshade/schoolconsole/internal/logging"
)

// summaryConcurrency bounds the number of modules counted at once.
const summaryConcurrency = 4

type moduleSummary struct {
	Module string `json:"module"`
	console.Counts
	Error string `json:"error,omitempty"`
}

func newSummaryCmd(registry *console.Registry) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show active and inactive record counts for every module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != outputTable && output != outputJSON {
				return fmt.Errorf("%w %q: want table or json", ErrInvalidOutput, output)
			}
			rows, err := collectSummary(cmd, registry.All())
			if err != nil {
				return err
			}
			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			renderSummary(cmd, rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table or json")
	return cmd
}

// collectSummary counts every module concurrently. A failing module is
// reported in its row and does not abort the others.
func collectSummary(cmd *cobra.Command, modules []console.Module) ([]moduleSummary, error) {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	rows := make([]moduleSummary, len(modules))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(summaryConcurrency)

	for i, m := range modules {
		session, err := openSession(cmd, m, lifecycle.AutoDecline{}, 0)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			counts, countErr := session.Counts(gCtx)
			row := moduleSummary{Module: m.Name(), Counts: counts}
			if countErr != nil {
				log.Warn().Ctx(gCtx).Str("module", m.Name()).Err(countErr).Msg("counting module failed")
				row.Error = countErr.Error()
			}
			mu.Lock()
			rows[i] = row
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func renderSummary(cmd *cobra.Command, rows []moduleSummary) {
	t := newTable("Module", "Active", "Inactive", "Total")
	for _, r := range rows {
		if r.Error != "" {
			t.Row(r.Module, "error", "error", r.Error)
			continue
		}
		t.Row(r.Module, strconv.Itoa(r.Active), strconv.Itoa(r.Inactive), strconv.Itoa(r.Active+r.Inactive))
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
}
