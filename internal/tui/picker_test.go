package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"vnrename/internal/matching"
	"vnrename/internal/vndb"
)

func sampleCandidates() []matching.Candidate {
	rating := 81.5
	return []matching.Candidate{
		{VN: vndb.VN{ID: "v1", Title: "Clannad", Rating: &rating,
			Relations: []vndb.Relation{{ID: "v2", Title: "Tomoyo After", Kind: vndb.RelationFandisc, Official: true}}},
			Confidence: 0.9},
		{VN: vndb.VN{ID: "v3", Title: "Kanon"}, Confidence: 0.4},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPickerSelectsWithCursor(t *testing.T) {
	m := NewPickerModel("Clannad", sampleCandidates())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command after selection")
	}
	if m.Chosen() != 1 || m.Quit() {
		t.Fatalf("chosen = %d quit = %v", m.Chosen(), m.Quit())
	}
}

func TestPickerSkipAndQuit(t *testing.T) {
	skip := NewPickerModel("x", sampleCandidates())
	skip.Update(keyRunes("s"))
	if skip.Chosen() != -1 || skip.Quit() {
		t.Fatalf("skip: chosen = %d quit = %v", skip.Chosen(), skip.Quit())
	}

	quit := NewPickerModel("x", sampleCandidates())
	quit.Update(keyRunes("q"))
	if !quit.Quit() {
		t.Fatal("expected quit")
	}
}

func TestPickerViewShowsDetails(t *testing.T) {
	m := NewPickerModel("Clannad", sampleCandidates())
	view := m.View()
	if !strings.Contains(view, "Clannad (v1)") || !strings.Contains(view, "90%") {
		t.Fatalf("view missing candidate line:\n%s", view)
	}
	if strings.Contains(view, "Tomoyo After") {
		t.Fatal("details should be hidden by default")
	}
	m.Update(keyRunes("d"))
	view = m.View()
	for _, want := range []string{"Fandisc: Tomoyo After (v2)", "Rating: 81.5", "https://vndb.org/v1"} {
		if !strings.Contains(view, want) {
			t.Fatalf("details missing %q:\n%s", want, view)
		}
	}
}

func TestPickerEnterWithoutCandidatesIsIgnored(t *testing.T) {
	m := NewPickerModel("x", nil)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatal("enter without candidates should not quit")
	}
}
