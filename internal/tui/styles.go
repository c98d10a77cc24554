package tui

import (
	"github.com/charmbracelet/lipgloss"

	"vnrename/internal/matching"
)

var (
	Primary   = lipgloss.Color("#7C3AED")
	Secondary = lipgloss.Color("#10B981")
	Muted     = lipgloss.Color("#6B7280")
	White     = lipgloss.Color("#FFFFFF")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	Selected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	Detail = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1).
		MarginTop(1)

	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	HelpKey  = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	HelpDesc = lipgloss.NewStyle().Foreground(Muted)
)

// ConfidenceStyle colors text on the red to green confidence scale.
func ConfidenceStyle(confidence float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(matching.ConfidenceColor(confidence)))
}
