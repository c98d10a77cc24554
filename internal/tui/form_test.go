package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"vnrename/internal/contentflags"
	"vnrename/internal/workflow"
)

func typeText(m tea.Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestQueryFormSubmitsTypedTerm(t *testing.T) {
	form := NewQueryForm("Fate Stay Night", "Fate Stay Night")
	if !strings.Contains(form.View(), "No results for") {
		t.Fatalf("expected no-results note, got %q", form.View())
	}
	typeText(form, "fate")
	_, cmd := form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !form.Submitted() {
		t.Fatal("expected enter to submit a single-field form")
	}
	if form.Value(0) != "fate" {
		t.Fatalf("value = %q", form.Value(0))
	}
}

func TestDetailsFormMovesFocusThenSubmits(t *testing.T) {
	form := NewDetailsForm("Clannad", contentflags.Flags{FandiscExpected: true, OSTIncluded: true})
	if !strings.Contains(form.View(), "☆ ♫") {
		t.Fatalf("expected detected markers in view, got %q", form.View())
	}
	typeText(form, "R18")
	form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if form.Submitted() {
		t.Fatal("enter on the first field should move focus, not submit")
	}
	typeText(form, " nakige ")
	form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !form.Submitted() {
		t.Fatal("expected submit from the last field")
	}
	if form.Value(0) != "R18" || form.Value(1) != "nakige" {
		t.Fatalf("values = %q %q", form.Value(0), form.Value(1))
	}
}

func TestDetailsFormTabWraps(t *testing.T) {
	form := NewDetailsForm("Clannad", contentflags.Flags{})
	form.Update(tea.KeyMsg{Type: tea.KeyTab})
	form.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(form, "x")
	if form.Value(0) != "x" || form.Value(1) != "" {
		t.Fatalf("expected focus back on first field, values %q %q", form.Value(0), form.Value(1))
	}
}

func TestFormCancelAndQuit(t *testing.T) {
	form := NewQueryForm("a", "a")
	form.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !form.Cancelled() || form.Submitted() || form.Quit() {
		t.Fatalf("esc: cancelled=%v submitted=%v quit=%v", form.Cancelled(), form.Submitted(), form.Quit())
	}

	form = NewQueryForm("a", "a")
	typeText(form, "q")
	if form.Quit() {
		t.Fatal("typing q must not quit a text form")
	}
	form.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !form.Quit() {
		t.Fatal("expected ctrl+c to quit")
	}
}

func TestConfirmModelKeys(t *testing.T) {
	proposal := workflow.Proposal{Folder: "Clannad", NewName: "[Key][040428] Clannad"}

	m := NewRenameConfirm(proposal)
	if !strings.Contains(m.View(), "New: [Key][040428] Clannad") {
		t.Fatalf("expected proposal in view, got %q", m.View())
	}
	if _, cmd := m.Update(keyRunes("x")); cmd != nil {
		t.Fatal("unrelated keys should be ignored")
	}
	m.Update(keyRunes("y"))
	if !m.Confirmed() || m.Quit() {
		t.Fatal("expected y to confirm")
	}

	m = NewRenameConfirm(proposal)
	m.Update(keyRunes("n"))
	if m.Confirmed() || m.Quit() {
		t.Fatal("expected n to decline")
	}

	m = NewRenameConfirm(proposal)
	m.Update(keyRunes("q"))
	if !m.Quit() {
		t.Fatal("expected q to quit")
	}
}

func TestPrompterConfirmRunsProgram(t *testing.T) {
	var out bytes.Buffer
	prompter := Prompter{Picker{In: strings.NewReader("y"), Out: &out}}
	ok, err := prompter.ConfirmRename(context.Background(), workflow.Proposal{Folder: "a", NewName: "b"})
	if err != nil || !ok {
		t.Fatalf("ConfirmRename = %v, %v", ok, err)
	}

	prompter = Prompter{Picker{In: strings.NewReader("q"), Out: &out}}
	if _, err := prompter.ConfirmRename(context.Background(), workflow.Proposal{Folder: "a", NewName: "b"}); !errors.Is(err, workflow.ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
}
