package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/rshade/schoolconsole/internal/console"
	"github.com/rshade/schoolconsole/internal/pagination"
)

//nolint:gochecknoglobals // Shared read-only styles.
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// newTable returns a bordered table with the console's header styling.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// renderList writes one page of a module as a table followed by the page selector.
func renderList(w io.Writer, m console.Module, snap console.Snapshot) {
	title := fmt.Sprintf("%s (%s)", m.Title(), strings.ToLower(snap.Visibility.String()))
	fmt.Fprintln(w, headerStyle.UnsetPadding().Render(title))

	if len(snap.Rows) == 0 {
		if snap.Filter.IsZero() {
			fmt.Fprintln(w, "No records found.")
		} else {
			fmt.Fprintln(w, "No records match the current filter.")
		}
		return
	}

	t := newTable(append([]string{"ID"}, m.Columns()...)...)
	for _, row := range snap.Rows {
		t.Row(append([]string{row.ID}, row.Cells...)...)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, renderFooter(snap.Meta, snap.Window))
}

// renderFooter renders "Page 2 of 3 · 23 records   1 [2] 3".
func renderFooter(meta pagination.Meta, window pagination.Window) string {
	parts := make([]string, 0, len(window))
	for _, tok := range window {
		switch {
		case tok.Ellipsis:
			parts = append(parts, mutedStyle.Render(tok.String()))
		case tok.Page == meta.CurrentPage:
			parts = append(parts, currentStyle.Render("["+tok.String()+"]"))
		default:
			parts = append(parts, tok.String())
		}
	}
	summary := fmt.Sprintf("Page %d of %d · %d records", meta.CurrentPage, max(meta.TotalPages, 1), meta.TotalItems)
	return summary + "   " + strings.Join(parts, " ")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML renders v through its JSON form so field names match the API.
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic map[string]any
	if err = json.Unmarshal(data, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err = enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}
