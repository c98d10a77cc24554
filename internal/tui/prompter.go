package tui

import (
	"context"
	"fmt"
	"strings"

	"vnrename/internal/contentflags"
	"vnrename/internal/matching"
	"vnrename/internal/workflow"
)

// Prompter drives every rename question through full-screen views.
type Prompter struct {
	Picker
}

var _ workflow.Prompter = Prompter{}

// NewQueryForm builds the search-term form shown after an empty search.
func NewQueryForm(previous, extracted string) *FormModel {
	notes := []string{fmt.Sprintf("No results for %q (extracted title %q).", previous, extracted)}
	return NewFormModel("Search again", notes,
		NewFormField("Search term", extracted, ""))
}

// NewDetailsForm builds the flags and tags form for folder.
func NewDetailsForm(folder string, detected contentflags.Flags) *FormModel {
	var notes []string
	if markers := detected.Markers(); len(markers) > 0 {
		notes = append(notes, "Detected markers: "+strings.Join(markers, " "))
	}
	return NewFormModel(folder, notes,
		NewFormField("Extra flags", "comma separated, empty for none", ""),
		NewFormField("Tags", "comma separated, empty for none", ""))
}

// NewRenameConfirm builds the confirmation view for proposal.
func NewRenameConfirm(proposal workflow.Proposal) *ConfirmModel {
	return NewConfirmModel("Rename?",
		"Old: "+proposal.Folder,
		"New: "+proposal.NewName)
}

// PromptQuery asks for a new search term. Esc or an empty term skips the
// folder.
func (p Prompter) PromptQuery(ctx context.Context, previous, extracted string) (string, error) {
	form, err := p.runForm(ctx, "search form", NewQueryForm(previous, extracted))
	if err != nil || !form.Submitted() {
		return "", err
	}
	return form.Value(0), nil
}

// ChooseCandidate shows the candidate picker.
func (p Prompter) ChooseCandidate(ctx context.Context, folder string, candidates []matching.Candidate) (int, error) {
	return p.Pick(ctx, folder, candidates)
}

// PromptDetails asks for extra flags and tags. Esc leaves both empty.
func (p Prompter) PromptDetails(ctx context.Context, folder string, detected contentflags.Flags) (workflow.Details, error) {
	form, err := p.runForm(ctx, "details form", NewDetailsForm(folder, detected))
	if err != nil || !form.Submitted() {
		return workflow.Details{}, err
	}
	return workflow.Details{Flags: form.Value(0), Tags: form.Value(1)}, nil
}

// ConfirmRename asks whether to apply proposal.
func (p Prompter) ConfirmRename(ctx context.Context, proposal workflow.Proposal) (bool, error) {
	final, err := run(ctx, p.In, p.Out, "rename confirmation", NewRenameConfirm(proposal))
	if err != nil {
		return false, err
	}
	result, ok := final.(*ConfirmModel)
	if !ok {
		return false, fmt.Errorf("rename confirmation: unexpected model %T", final)
	}
	if result.Quit() {
		return false, workflow.ErrQuit
	}
	return result.Confirmed(), nil
}

func (p Prompter) runForm(ctx context.Context, name string, model *FormModel) (*FormModel, error) {
	final, err := run(ctx, p.In, p.Out, name, model)
	if err != nil {
		return nil, err
	}
	form, ok := final.(*FormModel)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected model %T", name, final)
	}
	if form.Quit() {
		return nil, workflow.ErrQuit
	}
	return form, nil
}
