package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// FormKeyMap defines key bindings for text entry forms. Letters are typed
// into the focused field, so quitting needs ctrl+c.
type FormKeyMap struct {
	Submit key.Binding
	Next   key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

var FormKeys = FormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// FormField is one labelled text input.
type FormField struct {
	Label string
	Input textinput.Model
}

// NewFormField creates a field with a placeholder and an initial value.
func NewFormField(label, placeholder, value string) FormField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.SetValue(value)
	return FormField{Label: label, Input: input}
}

// FormModel collects one or more text values. Enter on the last field
// submits; enter on an earlier field moves focus forward.
type FormModel struct {
	title   string
	notes   []string
	fields  []FormField
	focused int

	submitted bool
	cancelled bool
	quit      bool
	done      bool
}

// NewFormModel creates a form and focuses its first field.
func NewFormModel(title string, notes []string, fields ...FormField) *FormModel {
	m := &FormModel{title: title, notes: notes, fields: fields}
	if len(m.fields) > 0 {
		m.fields[0].Input.Focus()
	}
	return m
}

// Init implements tea.Model.
func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, FormKeys.Quit):
			m.quit = true
			m.done = true
			return m, tea.Quit
		case key.Matches(keyMsg, FormKeys.Cancel):
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case key.Matches(keyMsg, FormKeys.Next):
			m.focus(m.focused + 1)
			return m, nil
		case key.Matches(keyMsg, FormKeys.Submit):
			if m.focused < len(m.fields)-1 {
				m.focus(m.focused + 1)
				return m, nil
			}
			m.submitted = true
			m.done = true
			return m, tea.Quit
		}
	}
	if m.focused >= len(m.fields) {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focused].Input, cmd = m.fields[m.focused].Input.Update(msg)
	return m, cmd
}

func (m *FormModel) focus(index int) {
	if len(m.fields) < 2 {
		return
	}
	m.fields[m.focused].Input.Blur()
	m.focused = index % len(m.fields)
	m.fields[m.focused].Input.Focus()
}

// Value returns the trimmed value of field index.
func (m *FormModel) Value(index int) string {
	if index < 0 || index >= len(m.fields) {
		return ""
	}
	return strings.TrimSpace(m.fields[index].Input.Value())
}

// Submitted reports whether the form was submitted with enter.
func (m *FormModel) Submitted() bool { return m.submitted }

// Cancelled reports whether the form was dismissed with esc.
func (m *FormModel) Cancelled() bool { return m.cancelled }

// Quit reports whether the user asked to stop the whole run.
func (m *FormModel) Quit() bool { return m.quit }

// View implements tea.Model.
func (m *FormModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(Title.Render(m.title))
	b.WriteString("\n")
	for _, note := range m.notes {
		b.WriteString(Subtitle.Render(note))
		b.WriteString("\n")
	}
	for i, field := range m.fields {
		b.WriteString(InputLabel.Render(field.Label))
		b.WriteString("\n")
		if i == m.focused {
			b.WriteString(InputFocused.Render(field.Input.View()))
		} else {
			b.WriteString(InputField.Render(field.Input.View()))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	bindings := []key.Binding{FormKeys.Submit}
	if len(m.fields) > 1 {
		bindings = append(bindings, FormKeys.Next)
	}
	bindings = append(bindings, FormKeys.Cancel, FormKeys.Quit)
	b.WriteString(helpLine(bindings...))
	return b.String()
}
