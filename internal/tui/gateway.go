package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Prompt is a pending confirmation shown as a modal.
type Prompt struct {
	Title   string
	Message string
	reply   chan bool
}

// Answer resolves the prompt. Only the first answer counts.
func (p Prompt) Answer(ok bool) {
	select {
	case p.reply <- ok:
	default:
	}
}

// promptMsg delivers a Prompt to the model.
type promptMsg struct {
	prompt Prompt
}

// Gateway is a lifecycle.Gateway that hands confirmations to the Bubble Tea
// program and blocks the calling action until the operator answers.
type Gateway struct {
	prompts chan Prompt
}

// NewGateway creates a Gateway.
func NewGateway() *Gateway {
	return &Gateway{prompts: make(chan Prompt)}
}

// ConfirmDelete asks to deactivate the labelled record.
func (g *Gateway) ConfirmDelete(ctx context.Context, label string) (bool, error) {
	return g.Confirm(ctx, "Deactivate", fmt.Sprintf("Deactivate %s? It will move to the inactive list.", label))
}

// ConfirmRestore asks to restore the labelled record.
func (g *Gateway) ConfirmRestore(ctx context.Context, label string) (bool, error) {
	return g.Confirm(ctx, "Restore", fmt.Sprintf("Restore %s? It will move back to the active list.", label))
}

// Confirm publishes a prompt and waits for its answer.
func (g *Gateway) Confirm(ctx context.Context, title, message string) (bool, error) {
	p := Prompt{Title: title, Message: message, reply: make(chan bool, 1)}

	select {
	case g.prompts <- p:
	case <-ctx.Done():
		return false, ctx.Err()
	}

	select {
	case ok := <-p.reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Wait returns a command that delivers the next prompt.
func (g *Gateway) Wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case p := <-g.prompts:
			return promptMsg{prompt: p}
		case <-ctx.Done():
			return nil
		}
	}
}
