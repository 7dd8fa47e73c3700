package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/schoolconsole/internal/console"
)

// newModulesCmd lists the registered modules, or resolves one name.
func newModulesCmd(registry *console.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "modules [name]",
		Short: "List the available entity modules",
		Example: `  schoolconsole modules
  schoolconsole modules behaviour`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modules := registry.All()
			if len(args) == 1 {
				m, err := registry.Lookup(args[0])
				if err != nil {
					return err
				}
				modules = []console.Module{m}
			}

			t := newTable("Module", "Aliases", "Category", "Columns")
			for _, m := range modules {
				t.Row(m.Name(), strings.Join(m.Aliases(), ", "), m.CategoryField(), strings.Join(m.Columns(), ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}
