package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmKeyMap defines key bindings for yes/no questions.
type ConfirmKeyMap struct {
	Confirm key.Binding
	Decline key.Binding
	Quit    key.Binding
}

var ConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "rename"),
	),
	Decline: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "keep name"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ConfirmModel asks a yes/no question about a set of detail lines.
type ConfirmModel struct {
	title string
	lines []string

	confirmed bool
	quit      bool
	done      bool
}

// NewConfirmModel creates a confirmation view.
func NewConfirmModel(title string, lines ...string) *ConfirmModel {
	return &ConfirmModel{title: title, lines: lines}
}

// Init implements tea.Model.
func (m *ConfirmModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, ConfirmKeys.Quit):
		m.quit = true
	case key.Matches(keyMsg, ConfirmKeys.Confirm):
		m.confirmed = true
	case key.Matches(keyMsg, ConfirmKeys.Decline):
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

// Confirmed reports whether the user answered yes.
func (m *ConfirmModel) Confirmed() bool { return m.confirmed }

// Quit reports whether the user asked to stop the whole run.
func (m *ConfirmModel) Quit() bool { return m.quit }

// View implements tea.Model.
func (m *ConfirmModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(Detail.Render(strings.Join(m.lines, "\n")))
	b.WriteString("\n\n")
	b.WriteString(helpLine(ConfirmKeys.Confirm, ConfirmKeys.Decline, ConfirmKeys.Quit))
	return b.String()
}
