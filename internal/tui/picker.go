package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"vnrename/internal/matching"
	"vnrename/internal/naming"
	"vnrename/internal/workflow"
)

// PickerKeyMap defines key bindings for the candidate picker.
type PickerKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Details key.Binding
	Skip    key.Binding
	Quit    key.Binding
}

var PickerKeys = PickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Details: key.NewBinding(
		key.WithKeys("d", "tab"),
		key.WithHelp("d", "details"),
	),
	Skip: key.NewBinding(
		key.WithKeys("s", "esc"),
		key.WithHelp("s/esc", "skip folder"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// PickerModel lists ranked candidates for one folder.
type PickerModel struct {
	folder      string
	candidates  []matching.Candidate
	cursor      int
	showDetails bool

	chosen int
	quit   bool
	done   bool
}

// NewPickerModel creates a picker for folder.
func NewPickerModel(folder string, candidates []matching.Candidate) *PickerModel {
	return &PickerModel{folder: folder, candidates: candidates, chosen: -1}
}

// Init implements tea.Model.
func (m *PickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, PickerKeys.Quit):
		m.quit = true
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, PickerKeys.Skip):
		m.chosen = -1
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, PickerKeys.Select):
		if len(m.candidates) > 0 {
			m.chosen = m.cursor
			m.done = true
			return m, tea.Quit
		}
	case key.Matches(keyMsg, PickerKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, PickerKeys.Down):
		if m.cursor < len(m.candidates)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, PickerKeys.Details):
		m.showDetails = !m.showDetails
	}
	return m, nil
}

// Chosen returns the selected index, or -1 when the folder was skipped.
func (m *PickerModel) Chosen() int { return m.chosen }

// Quit reports whether the user asked to stop the whole run.
func (m *PickerModel) Quit() bool { return m.quit }

// View implements tea.Model.
func (m *PickerModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(Title.Render(m.folder))
	b.WriteString("\n")
	if len(m.candidates) == 0 {
		b.WriteString(Subtitle.Render("no candidates"))
		b.WriteString("\n")
	}
	for i, c := range m.candidates {
		line := fmt.Sprintf("%d. %s (%s) %s", i+1, c.VN.Title, c.VN.ID, ConfidenceStyle(c.Confidence).Render(fmt.Sprintf("%.0f%%", c.Confidence*100)))
		if i == m.cursor {
			line = Selected.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.showDetails && m.cursor < len(m.candidates) {
		b.WriteString(Detail.Render(candidateDetails(m.candidates[m.cursor])))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpLine(PickerKeys.Up, PickerKeys.Down, PickerKeys.Select, PickerKeys.Details, PickerKeys.Skip, PickerKeys.Quit))
	return b.String()
}

func candidateDetails(c matching.Candidate) string {
	vn := c.VN
	lines := []string{
		"Original title: " + naming.OriginalTitle(vn),
		"Released: " + valueOr(vn.Released, "unknown"),
	}
	if dev, ok := vn.FirstDeveloper(); ok {
		lines = append(lines, "Developer: "+dev)
	}
	if vn.Length != nil {
		lines = append(lines, fmt.Sprintf("Length: %d", *vn.Length))
	}
	if vn.Rating != nil {
		lines = append(lines, fmt.Sprintf("Rating: %.1f", *vn.Rating))
	}
	if vn.Image.IsAdult() {
		lines = append(lines, "Cover: adult")
	}
	lines = append(lines, fmt.Sprintf("Scores: title %.2f, date %.2f, producer %.2f", c.TitleScore, c.DateScore, c.ProducerScore))
	for _, rel := range vn.OfficialRelations() {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", rel.Kind.Label(), rel.Title, rel.ID))
	}
	lines = append(lines, vn.URL())
	return strings.Join(lines, "\n")
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, HelpKey.Render(help.Key)+" "+HelpDesc.Render(help.Desc))
	}
	return strings.Join(parts, "  ")
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// Picker runs the picker program on the given terminal streams.
type Picker struct {
	In  io.Reader
	Out io.Writer
}

// Pick shows candidates for folder and returns the chosen index, -1 for a
// skipped folder, or workflow.ErrQuit when the user quits.
func (p Picker) Pick(ctx context.Context, folder string, candidates []matching.Candidate) (int, error) {
	final, err := run(ctx, p.In, p.Out, "candidate picker", NewPickerModel(folder, candidates))
	if err != nil {
		return -1, err
	}
	result, ok := final.(*PickerModel)
	if !ok {
		return -1, fmt.Errorf("candidate picker: unexpected model %T", final)
	}
	if result.Quit() {
		return -1, workflow.ErrQuit
	}
	return result.Chosen(), nil
}

// run executes model as a program on the given streams. Cancellation of ctx
// is reported as ctx.Err().
func run(ctx context.Context, in io.Reader, out io.Writer, name string, model tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return final, nil
}
