package cli

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/schoolconsole/internal/lifecycle"
)

// confirmPrompt prints prompt to stderr and reads a y/N answer from the
// command's input. Anything but "y" or "yes" declines, including EOF.
func confirmPrompt(cmd *cobra.Command, prompt string) bool {
	cmd.PrintErr(prompt)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return response == "y" || response == "yes"
}

// interactiveInput reports whether confirmations can be asked. Input
// injected with cmd.SetIn always counts as interactive.
func interactiveInput(cmd *cobra.Command) bool {
	if in, ok := cmd.InOrStdin().(*os.File); ok && in == os.Stdin {
		return isTerminal(os.Stdin)
	}
	return true
}

// promptGateway confirms lifecycle actions on the terminal.
type promptGateway struct {
	cmd *cobra.Command
}

// newGateway returns the confirmation gateway for a CLI action. --force
// approves everything; a non-terminal stdin declines with a hint.
func newGateway(cmd *cobra.Command, force bool) lifecycle.Gateway {
	if force {
		return lifecycle.AutoConfirm{}
	}
	return promptGateway{cmd: cmd}
}

func (g promptGateway) ConfirmDelete(_ context.Context, label string) (bool, error) {
	return g.confirm("Deactivate " + label + "? It will move to the inactive list.")
}

func (g promptGateway) ConfirmRestore(_ context.Context, label string) (bool, error) {
	return g.confirm("Restore " + label + "? It will move back to the active list.")
}

func (g promptGateway) Confirm(_ context.Context, _, message string) (bool, error) {
	return g.confirm(message)
}

func (g promptGateway) confirm(message string) (bool, error) {
	if !interactiveInput(g.cmd) {
		g.cmd.PrintErrln("stdin is not a terminal; re-run with --force to skip confirmation.")
		return false, nil
	}
	g.cmd.PrintErrln(message)
	return confirmPrompt(g.cmd, "Continue? [y/N]: "), nil
}
