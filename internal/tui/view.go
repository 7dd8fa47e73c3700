package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rshade/schoolconsole/internal/lifecycle"
	"github.com/rshade/schoolconsole/internal/record"
)

// View renders the current view (Bubble Tea interface).
func (m *Model) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderFilterLine(),
		m.renderBody(),
	}
	if status := m.renderStatus(); status != "" {
		sections = append(sections, status)
	}
	if m.state == ViewStateConfirm && m.prompt != nil {
		sections = append(sections, m.renderModal())
	} else {
		sections = append(sections, MutedStyle.Render(helpLine))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m *Model) renderHeader() string {
	badge := ActiveBadgeStyle.Render(record.StatusActive.String())
	if m.snap.Visibility == record.VisibilityInactive {
		badge = InactiveBadgeStyle.Render(record.StatusInactive.String())
	}

	tabs := make([]string, 0, len(m.modules))
	for i, mod := range m.modules {
		if i == m.active {
			tabs = append(tabs, TitleStyle.Render(mod.Title()))
		} else {
			tabs = append(tabs, MutedStyle.Render(mod.Title()))
		}
	}

	header := strings.Join(tabs, MutedStyle.Render(" | ")) + "  " + badge
	if m.Loading() {
		header += "  " + m.spinner.View() + LabelStyle.Render("Loading...")
	}
	return header
}

func (m *Model) renderFilterLine() string {
	search := ValueStyle.Render(m.search.Value())
	if m.state == ViewStateSearch {
		search = m.search.View()
	} else if m.search.Value() == "" {
		search = MutedStyle.Render("(none)")
	}

	line := LabelStyle.Render("Search: ") + search
	if field := m.Module().CategoryField(); field != "" {
		category := m.currentCategory()
		if category == "" {
			category = "all"
		}
		line += LabelStyle.Render("   "+field+": ") + ValueStyle.Render(category)
	}
	return line
}

func (m *Model) renderBody() string {
	if len(m.snap.Rows) == 0 {
		switch {
		case m.Loading():
			return MutedStyle.Render("Loading records...")
		case !m.snap.Filter.IsZero():
			return MutedStyle.Render("No records match the current filter.")
		default:
			return MutedStyle.Render("No records found.")
		}
	}

	headers := append([]string{"ID"}, m.Module().Columns()...)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(MutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderStyle
			case row == m.cursor:
				return SelectedStyle
			default:
				return CellStyle
			}
		})
	for _, row := range m.snap.Rows {
		t.Row(append([]string{row.ID}, row.Cells...)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, t.Render(), m.renderPager())
}

// renderPager renders "Page 2 of 3 · 23 records   1 [2] 3".
func (m *Model) renderPager() string {
	meta := m.snap.Meta
	parts := make([]string, 0, len(m.snap.Window))
	for _, tok := range m.snap.Window {
		switch {
		case tok.Ellipsis:
			parts = append(parts, MutedStyle.Render(tok.String()))
		case tok.Page == meta.CurrentPage:
			parts = append(parts, CurrentPageStyle.Render("["+tok.String()+"]"))
		default:
			parts = append(parts, tok.String())
		}
	}
	summary := fmt.Sprintf("Page %d of %d · %d records", meta.CurrentPage, max(meta.TotalPages, 1), meta.TotalItems)
	return LabelStyle.Render(summary) + "   " + strings.Join(parts, " ")
}

func (m *Model) renderStatus() string {
	var lines []string
	if m.snap.Diagnostic != "" {
		lines = append(lines, WarningStyle.Render("⚠ "+m.snap.Diagnostic))
	}
	if m.snap.Err != nil {
		lines = append(lines, ErrorStyle.Render("Could not load records: "+m.snap.Err.Error()))
	}
	if m.notice != nil {
		if m.notice.Level == lifecycle.LevelError {
			lines = append(lines, ErrorStyle.Render("✗ "+m.notice.Message))
		} else {
			lines = append(lines, SuccessStyle.Render("✓ "+m.notice.Message))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderModal() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(m.prompt.Title),
		"",
		m.prompt.Message,
		"",
		MutedStyle.Render("y confirm · n cancel"),
	)
	return ModalStyle.Width(max(min(m.width-4, 64), 20)).Render(body)
}
