package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/schoolconsole/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("schoolconsole %s\n", version.GetVersion())
			cmd.Printf("  commit: %s\n", version.GetGitCommit())
			cmd.Printf("  built:  %s\n", version.GetBuildDate())
			cmd.Printf("  go:     %s\n", version.GetGoVersion())
		},
	}
}
