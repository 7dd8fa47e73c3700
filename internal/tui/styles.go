package tui

import "github.com/charmbracelet/lipgloss"

// Terminal colors used by the console.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("240")
	ColorSelected  = lipgloss.Color("57")
	ColorSelectFg  = lipgloss.Color("229")
	ColorSuccess   = lipgloss.Color("42")
	ColorError     = lipgloss.Color("196")
	ColorWarning   = lipgloss.Color("214")
	ColorInactive  = lipgloss.Color("208")
	ColorModalEdge = lipgloss.Color("63")
)

//nolint:gochecknoglobals // Shared lipgloss styles, immutable after init.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)

	ActiveBadgeStyle = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.Color("0")).Background(ColorSuccess).Padding(0, 1)

	InactiveBadgeStyle = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.Color("0")).Background(ColorInactive).Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorLabel)

	ValueStyle = lipgloss.NewStyle().Foreground(ColorValue)

	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader).Padding(0, 1)

	CellStyle = lipgloss.NewStyle().Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().Padding(0, 1).
			Foreground(ColorSelectFg).Background(ColorSelected)

	CurrentPageStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)

	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorModalEdge).
			Padding(1, 2)
)
