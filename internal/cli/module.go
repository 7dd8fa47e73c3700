package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/schoolconsole/internal/config"
	"github.com/rshade/schoolconsole/internal/console"
	"github.com/rshade/schoolconsole/internal/lifecycle"
	"github.com/rshade/schoolconsole/internal/liststate"
	"github.com/rshade/schoolconsole/internal/logging"
	"github.com/rshade/schoolconsole/internal/pagination"
	"github.com/rshade/schoolconsole/internal/record"
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// ErrInvalidOutput is returned for an unsupported --output value.
var ErrInvalidOutput = errors.New("invalid output format")

// listParams holds the flags of "<module> list".
type listParams struct {
	inactive bool
	search   string
	category string
	page     int
	pageSize int
	output   string
}

// newModuleCmd creates the command group for one entity module.
func newModuleCmd(m console.Module) *cobra.Command {
	cmd := &cobra.Command{
		Use:     m.Name(),
		Aliases: m.Aliases(),
		Short:   "Manage " + strings.ToLower(m.Title()),
	}
	cmd.AddCommand(
		newListCmd(m),
		newGetCmd(m),
		newCreateCmd(m),
		newUpdateCmd(m),
		newDeleteCmd(m),
		newRestoreCmd(m),
	)
	return cmd
}

func newListCmd(m console.Module) *cobra.Command {
	var params listParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + strings.ToLower(m.Title()),
		Long: fmt.Sprintf(`List %s one page at a time.

--inactive switches to the soft-deleted collection. --search matches any
searchable text field case-insensitively; --category filters on %q.
A --page past the last page shows the last page.`, strings.ToLower(m.Title()), m.CategoryField()),
		Example: fmt.Sprintf(`  schoolconsole %[1]s list
  schoolconsole %[1]s list --page 2 --page-size 20
  schoolconsole %[1]s list --inactive --search smith --output json`, m.Name()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeList(cmd, m, params)
		},
	}

	cmd.Flags().BoolVar(&params.inactive, "inactive", false, "List soft-deleted records")
	cmd.Flags().StringVarP(&params.search, "search", "s", "", "Case-insensitive text search")
	cmd.Flags().StringVarP(&params.category, "category", "c", "", "Exact "+m.CategoryField()+" to show")
	cmd.Flags().IntVarP(&params.page, "page", "p", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&params.pageSize, "page-size", 0, "Records per page (0 = use config default)")
	cmd.Flags().StringVarP(&params.output, "output", "o", outputTable, "Output format: table or json")

	return cmd
}

func executeList(cmd *cobra.Command, m console.Module, params listParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if params.output != outputTable && params.output != outputJSON {
		return fmt.Errorf("%w %q: want table or json", ErrInvalidOutput, params.output)
	}
	paging := pagination.Params{Page: params.page, PageSize: params.pageSize}
	if err := paging.Validate(); err != nil {
		return err
	}

	cfg := config.GetGlobalConfig()
	session, err := openSession(cmd, m, lifecycle.AutoDecline{}, paging.EffectivePageSize(cfg.UI.ItemsPerPage))
	if err != nil {
		return err
	}

	visibility := record.VisibilityActive
	if params.inactive {
		visibility = record.VisibilityInactive
	}
	if err = session.SetVisibility(ctx, visibility); err != nil {
		return fmt.Errorf("loading %s: %w", m.Name(), err)
	}
	session.SetFilter(liststate.Filter{Search: params.search, Category: params.category})
	session.RequestPage(paging.EffectivePage())

	snap := session.Snapshot(cfg.UI.MaxVisiblePages)
	if snap.Diagnostic != "" {
		cmd.PrintErrf("Warning: the server returned an unexpected %s payload: %s\n", m.Name(), snap.Diagnostic)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "cli").
		Str("module", m.Name()).
		Int("page", snap.Meta.CurrentPage).
		Int("total_items", snap.Meta.TotalItems).
		Msg("list rendered")

	if params.output == outputJSON {
		return writeJSON(cmd.OutOrStdout(), listOutput{
			Module:     m.Name(),
			Visibility: snap.Visibility.String(),
			Items:      snap.Records,
			Pagination: snap.Meta,
		})
	}
	renderList(cmd.OutOrStdout(), m, snap)
	return nil
}

type listOutput struct {
	Module     string          `json:"module"`
	Visibility string          `json:"visibility"`
	Items      []any           `json:"items"`
	Pagination pagination.Meta `json:"pagination"`
}

func newGetCmd(m console.Module) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one " + strings.ToLower(m.Noun()),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != outputJSON && output != outputYAML {
				return fmt.Errorf("%w %q: want json or yaml", ErrInvalidOutput, output)
			}
			session, err := openSession(cmd, m, lifecycle.AutoDecline{}, 0)
			if err != nil {
				return err
			}
			item, err := session.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetching %s %s: %w", m.Name(), args[0], err)
			}
			if output == outputYAML {
				return writeYAML(cmd.OutOrStdout(), item)
			}
			return writeJSON(cmd.OutOrStdout(), item)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputYAML, "Output format: yaml or json")
	return cmd
}

// mutationParams holds the flags shared by create and update.
type mutationParams struct {
	file  string
	force bool
}

func newCreateCmd(m console.Module) *cobra.Command {
	var params mutationParams

	cmd := &cobra.Command{
		Use:   "create --file <path>",
		Short: "Create a " + strings.ToLower(m.Noun()) + " from a YAML or JSON file",
		Example: fmt.Sprintf(`  schoolconsole %[1]s create --file new.yaml
  schoolconsole %[1]s create --file new.json --force`, m.Name()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields, err := readFields(params.file)
			if err != nil {
				return err
			}
			session, err := openSession(cmd, m, newGateway(cmd, params.force), 0)
			if err != nil {
				return err
			}
			created, outcome, err := session.Create(cmd.Context(), fields)
			if err != nil {
				return err
			}
			if outcome == lifecycle.OutcomeDeclined {
				cmd.PrintErrln("Creation cancelled.")
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), created)
		},
	}
	addMutationFlags(cmd, &params)
	return cmd
}

func newUpdateCmd(m console.Module) *cobra.Command {
	var params mutationParams

	cmd := &cobra.Command{
		Use:   "update <id> --file <path>",
		Short: "Update an active " + strings.ToLower(m.Noun()),
		Long: `Overlay the fields in a YAML or JSON file onto the current record and save it.
Fields not present in the file keep their current values. Only active records
can be edited; id and status cannot be changed this way.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := readFields(params.file)
			if err != nil {
				return err
			}
			session, err := openSession(cmd, m, newGateway(cmd, params.force), 0)
			if err != nil {
				return err
			}
			updated, outcome, err := session.Update(cmd.Context(), args[0], fields)
			if err != nil {
				return err
			}
			if outcome == lifecycle.OutcomeDeclined {
				cmd.PrintErrln("Update cancelled.")
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), updated)
		},
	}
	addMutationFlags(cmd, &params)
	return cmd
}

func addMutationFlags(cmd *cobra.Command, params *mutationParams) {
	cmd.Flags().StringVarP(&params.file, "file", "f", "", "YAML or JSON file with the record fields (required)")
	cmd.Flags().BoolVar(&params.force, "force", false, "Skip confirmation prompt")
	_ = cmd.MarkFlagRequired("file")
}

// readFields reads a YAML or JSON document into a field map.
func readFields(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var fields map[string]any
	if err = yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%s contains no fields", path)
	}
	return fields, nil
}

func newDeleteCmd(m console.Module) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Soft-delete a " + strings.ToLower(m.Noun()),
		Long: `Mark an active record INACTIVE. Nothing is destroyed; the record moves to
the inactive list and can be restored.`,
		Example: fmt.Sprintf(`  schoolconsole %[1]s delete <id>
  schoolconsole %[1]s delete <id> --force`, m.Name()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeTransition(cmd, m, args[0], force, lifecycle.ActionDelete)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}

func newRestoreCmd(m console.Module) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a soft-deleted " + strings.ToLower(m.Noun()),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeTransition(cmd, m, args[0], force, lifecycle.ActionRestore)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}

func executeTransition(cmd *cobra.Command, m console.Module, id string, force bool, action lifecycle.Action) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	session, err := openSession(cmd, m, newGateway(cmd, force), 0)
	if err != nil {
		return err
	}

	var outcome lifecycle.Outcome
	if action == lifecycle.ActionRestore {
		outcome, err = session.Restore(ctx, id)
	} else {
		outcome, err = session.Delete(ctx, id)
	}
	if err != nil {
		return err
	}
	if outcome == lifecycle.OutcomeDeclined {
		cmd.PrintErrf("%s cancelled.\n", capitalize(string(action)))
		return nil
	}

	log.Info().
		Ctx(ctx).
		Str("component", "cli").
		Str("operation", string(action)).
		Str("module", m.Name()).
		Str("record_id", id).
		Msg("lifecycle action committed")
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
