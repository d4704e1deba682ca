package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#0d7377")
	muted  = lipgloss.Color("8")

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f8f7f4")).
			Background(accent).
			Bold(true).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)

	actorStyle   = lipgloss.NewStyle().Foreground(accent).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(muted).Width(9)
	footerStyle  = lipgloss.NewStyle().Foreground(muted)
	openStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	offlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
