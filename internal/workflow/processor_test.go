package workflow_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"vnrename/internal/config"
	"vnrename/internal/contentflags"
	"vnrename/internal/fsops"
	"vnrename/internal/history"
	"vnrename/internal/logging"
	"vnrename/internal/matching"
	"vnrename/internal/naming"
	"vnrename/internal/services"
	"vnrename/internal/testsupport"
	"vnrename/internal/vndb"
	"vnrename/internal/workflow"
)

type scriptedPrompter struct {
	queries   []string
	choice    int
	details   workflow.Details
	confirm   bool
	chooseErr error

	prompted  []string
	proposals []workflow.Proposal
	detected  []contentflags.Flags
}

func (p *scriptedPrompter) PromptQuery(_ context.Context, previous, _ string) (string, error) {
	p.prompted = append(p.prompted, previous)
	if len(p.queries) == 0 {
		return "", nil
	}
	next := p.queries[0]
	p.queries = p.queries[1:]
	return next, nil
}

func (p *scriptedPrompter) ChooseCandidate(context.Context, string, []matching.Candidate) (int, error) {
	return p.choice, p.chooseErr
}

func (p *scriptedPrompter) PromptDetails(_ context.Context, _ string, detected contentflags.Flags) (workflow.Details, error) {
	p.detected = append(p.detected, detected)
	return p.details, nil
}

func (p *scriptedPrompter) ConfirmRename(_ context.Context, proposal workflow.Proposal) (bool, error) {
	p.proposals = append(p.proposals, proposal)
	return p.confirm, nil
}

func fateCatalog() *testsupport.Catalog {
	return &testsupport.Catalog{
		VNs: map[string]string{
			"Fate Stay Night": `[{"id":"v11","title":"Fate/stay night","released":"2004-01-30",
				"developers":[{"name":"TYPE-MOON"}],"length":5}]`,
			"Unknown": `[{"id":"v2","title":"Unknown","released":"2010-01-01","developers":[{"name":"Dev"}]}]`,
		},
		Releases: map[string]string{
			"v11": `[{"title":"Fate/stay night Realta Nua","released":"2007-04-26","producers":[{"name":"Kadokawa"}],"official":false},
				{"title":"Fate/stay night","released":"2004-01-30","producers":[{"name":"TYPE-MOON","developer":true}],"official":true}]`,
		},
		Tags: map[string]string{
			"nakige": `[{"id":"g1","name":"Nakige"}]`,
		},
	}
}

func newProcessor(t *testing.T, catalog *testsupport.Catalog, prompter workflow.Prompter, opts ...testsupport.ConfigOption) (*workflow.Processor, *config.Config, *history.Store) {
	t.Helper()
	url := testsupport.NewCatalogServer(t, catalog)
	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithCatalogURL(url)}, opts...)...)
	client, err := vndb.New(cfg.VNDB.BaseURL)
	if err != nil {
		t.Fatalf("vndb.New: %v", err)
	}
	store := testsupport.MustOpenHistory(t, cfg)
	proc := workflow.NewProcessor(cfg, client, prompter, nil,
		workflow.WithJournal(store),
		workflow.WithSessionID("session-1"))
	return proc, cfg, store
}

func TestProcessFolderRenames(t *testing.T) {
	prompter := &scriptedPrompter{choice: 0, confirm: true, details: workflow.Details{Tags: "nakige"}}
	proc, _, store := newProcessor(t, fateCatalog(), prompter, testsupport.WithShortcuts(true))
	base := testsupport.MakeFolders(t, "[TYPE-MOON][040130] Fate Stay Night")

	outcome := proc.ProcessFolder(context.Background(), base, "[TYPE-MOON][040130] Fate Stay Night")
	if outcome.Err != nil {
		t.Fatalf("unexpected error: %v", outcome.Err)
	}
	want := "[TYPE-MOON][040130][L5] Fate-stay night (Nakige)"
	if outcome.Status != history.StatusRenamed || outcome.NewName != want {
		t.Fatalf("outcome = %+v, want renamed to %q", outcome, want)
	}
	if got := testsupport.FolderNames(t, base); !slices.Equal(got, []string{want}) {
		t.Fatalf("folders = %v", got)
	}
	shortcut, err := os.ReadFile(filepath.Join(base, want, fsops.ShortcutFileName))
	if err != nil {
		t.Fatalf("read shortcut: %v", err)
	}
	if string(shortcut) != "[InternetShortcut]\nURL=https://vndb.org/v11\n" {
		t.Fatalf("shortcut = %q", shortcut)
	}
	if len(prompter.proposals) != 1 || prompter.proposals[0].Release == nil || !prompter.proposals[0].Release.Official {
		t.Fatalf("expected official release in proposal, got %+v", prompter.proposals)
	}

	entries, err := store.BySession(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("BySession: %v", err)
	}
	if len(entries) != 1 || entries[0].NewName != want || entries[0].VNID != "v11" || entries[0].BaseDir != base {
		t.Fatalf("history = %+v", entries)
	}
}

func TestProcessFolderNarrowsThenUsesVNFallbacks(t *testing.T) {
	catalog := fateCatalog()
	prompter := &scriptedPrompter{choice: 0, confirm: true}
	proc, _, _ := newProcessor(t, catalog, prompter)
	base := testsupport.MakeFolders(t, "Unknown Words Here")

	outcome := proc.ProcessFolder(context.Background(), base, "Unknown Words Here")
	if outcome.Status != history.StatusRenamed || outcome.NewName != "[Dev][100101] Unknown" {
		t.Fatalf("outcome = %+v", outcome)
	}
	if len(prompter.prompted) != 0 {
		t.Fatalf("narrowing should avoid prompting, got %v", prompter.prompted)
	}

	var vnKeys, releaseKeys []string
	for _, req := range catalog.Requests() {
		switch req.Path {
		case "/vn":
			vnKeys = append(vnKeys, req.Key)
		case "/release":
			releaseKeys = append(releaseKeys, req.Key)
		}
	}
	if !slices.Equal(vnKeys, []string{"Unknown Words Here", "Unknown"}) {
		t.Fatalf("vn searches = %v", vnKeys)
	}
	if !slices.Equal(releaseKeys, []string{"v2", "2"}) {
		t.Fatalf("release lookups = %v", releaseKeys)
	}
}

func TestProcessFolderAbortsOnEmptyQuery(t *testing.T) {
	prompter := &scriptedPrompter{queries: []string{"Still Nothing"}}
	proc, _, store := newProcessor(t, fateCatalog(), prompter)
	base := testsupport.MakeFolders(t, "Nothing")

	outcome := proc.ProcessFolder(context.Background(), base, "Nothing")
	if outcome.Status != history.StatusAborted || outcome.Err != nil {
		t.Fatalf("outcome = %+v", outcome)
	}
	if !slices.Equal(prompter.prompted, []string{"Nothing", "Still Nothing"}) {
		t.Fatalf("prompts = %v", prompter.prompted)
	}
	if got := testsupport.FolderNames(t, base); !slices.Equal(got, []string{"Nothing"}) {
		t.Fatalf("folder changed: %v", got)
	}
	entries, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Status != history.StatusAborted {
		t.Fatalf("history = %+v", entries)
	}
}

func TestProcessFolderSkipsWhenDeclinedOrNoChoice(t *testing.T) {
	tests := []struct {
		name     string
		prompter *scriptedPrompter
	}{
		{"no candidate chosen", &scriptedPrompter{choice: -1, confirm: true}},
		{"rename declined", &scriptedPrompter{choice: 0, confirm: false}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			proc, _, _ := newProcessor(t, fateCatalog(), tc.prompter)
			base := testsupport.MakeFolders(t, "Fate Stay Night")
			outcome := proc.ProcessFolder(context.Background(), base, "Fate Stay Night")
			if outcome.Status != history.StatusSkipped {
				t.Fatalf("outcome = %+v", outcome)
			}
			if got := testsupport.FolderNames(t, base); !slices.Equal(got, []string{"Fate Stay Night"}) {
				t.Fatalf("folder changed: %v", got)
			}
		})
	}
}

func TestProcessFolderReportsCollision(t *testing.T) {
	prompter := &scriptedPrompter{choice: 0, confirm: true}
	proc, _, _ := newProcessor(t, fateCatalog(), prompter)
	base := testsupport.MakeFolders(t, "Fate Stay Night", "[TYPE-MOON][040130][L5] Fate-stay night")

	outcome := proc.ProcessFolder(context.Background(), base, "Fate Stay Night")
	if outcome.Status != history.StatusFailed {
		t.Fatalf("outcome = %+v", outcome)
	}
	if !errors.Is(outcome.Err, fsops.ErrTargetExists) {
		t.Fatalf("expected ErrTargetExists, got %v", outcome.Err)
	}
}

func TestProcessFolderMarksFandiscAndOST(t *testing.T) {
	catalog := &testsupport.Catalog{
		VNs: map[string]string{
			"Hoshizora Fandisc": `[{"id":"v7","title":"Hoshizora After","released":"2012-06-29","developers":[{"name":"Sprite"}]}]`,
		},
		Releases: map[string]string{
			"v7": `[{"title":"Hoshizora Fan Disc","released":"2012-06-29","producers":[{"name":"Sprite","developer":true}],"official":true}]`,
		},
	}
	prompter := &scriptedPrompter{choice: 0, confirm: true, details: workflow.Details{Flags: "R18"}}
	proc, _, _ := newProcessor(t, catalog, prompter)
	base := testsupport.MakeFolders(t, "Hoshizora Fandisc")
	testsupport.WriteFile(t, filepath.Join(base, "Hoshizora Fandisc", "OST", "01.flac"), "x")

	outcome := proc.ProcessFolder(context.Background(), base, "Hoshizora Fandisc")
	if outcome.Err != nil {
		t.Fatalf("unexpected error: %v", outcome.Err)
	}
	if want := "[Sprite][120629] Hoshizora After {R18, ☆, ♫}"; outcome.NewName != want {
		t.Fatalf("name = %q, want %q", outcome.NewName, want)
	}
	if len(prompter.detected) != 1 || !prompter.detected[0].FandiscExpected || !prompter.detected[0].OSTIncluded {
		t.Fatalf("detected = %+v", prompter.detected)
	}
}

func TestProcessFolderBadTemplateFails(t *testing.T) {
	prompter := &scriptedPrompter{choice: 0, confirm: true}
	proc, _, _ := newProcessor(t, fateCatalog(), prompter, testsupport.WithTemplate("title", "bogus"))
	base := testsupport.MakeFolders(t, "Fate Stay Night")

	outcome := proc.ProcessFolder(context.Background(), base, "Fate Stay Night")
	if outcome.Status != history.StatusFailed || !errors.Is(outcome.Err, naming.ErrMissingPlaceholder) {
		t.Fatalf("outcome = %+v", outcome)
	}
	if len(prompter.proposals) != 0 {
		t.Fatal("no proposal should be shown for a failed synthesis")
	}
	if got := testsupport.FolderNames(t, base); !slices.Equal(got, []string{"Fate Stay Night"}) {
		t.Fatalf("folder changed: %v", got)
	}
}

func TestProcessFolderCustomTemplate(t *testing.T) {
	prompter := &scriptedPrompter{choice: 0, confirm: true}
	proc, _, _ := newProcessor(t, fateCatalog(), prompter, testsupport.WithTemplate("title", "producer", "tags"))
	base := testsupport.MakeFolders(t, "Fate Stay Night")

	outcome := proc.ProcessFolder(context.Background(), base, "Fate Stay Night")
	if want := "Fate-stay night [TYPE-MOON]"; outcome.NewName != want {
		t.Fatalf("name = %q, want %q (err %v)", outcome.NewName, want, outcome.Err)
	}
}

func TestProcessDirectoryContinuesAfterFailure(t *testing.T) {
	prompter := &scriptedPrompter{choice: 0, confirm: true}
	proc, _, _ := newProcessor(t, fateCatalog(), prompter)
	base := testsupport.MakeFolders(t, "Fate Stay Night", "Nothing", "Unknown Words")

	summary, err := proc.ProcessDirectory(context.Background(), base)
	if err != nil {
		t.Fatalf("ProcessDirectory: %v", err)
	}
	if len(summary.Outcomes) != 3 {
		t.Fatalf("outcomes = %+v", summary.Outcomes)
	}
	if summary.Count(history.StatusRenamed) != 2 || summary.Count(history.StatusAborted) != 1 {
		t.Fatalf("summary = %+v", summary.Outcomes)
	}
}

func TestProcessDirectoryStopsOnQuit(t *testing.T) {
	prompter := &scriptedPrompter{chooseErr: workflow.ErrQuit}
	proc, _, _ := newProcessor(t, fateCatalog(), prompter)
	base := testsupport.MakeFolders(t, "Fate Stay Night", "Unknown Words")

	summary, err := proc.ProcessDirectory(context.Background(), base)
	if err != nil {
		t.Fatalf("ProcessDirectory: %v", err)
	}
	if len(summary.Outcomes) != 1 || summary.Outcomes[0].Status != history.StatusAborted {
		t.Fatalf("outcomes = %+v", summary.Outcomes)
	}
}

func TestProcessDirectoryMissingBase(t *testing.T) {
	url := testsupport.NewCatalogServer(t, fateCatalog())
	cfg := testsupport.NewConfig(t, testsupport.WithCatalogURL(url))
	client, err := vndb.New(cfg.VNDB.BaseURL)
	if err != nil {
		t.Fatalf("vndb.New: %v", err)
	}
	var logs bytes.Buffer
	logger, _, err := logging.New(logging.Options{Format: "json", Level: "info", Console: &logs})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	proc := workflow.NewProcessor(cfg, client, &scriptedPrompter{}, logger)

	_, err = proc.ProcessDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, services.ErrFilesystem) {
		t.Fatalf("expected filesystem error, got %v", err)
	}
	var found map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(logs.Bytes()), []byte("\n")) {
		var record map[string]any
		if err := json.Unmarshal(line, &record); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		if record[logging.FieldEventType] == "directory_enumeration_failed" {
			found = record
		}
	}
	if found == nil {
		t.Fatalf("expected directory_enumeration_failed record, got %s", logs.String())
	}
	if found["level"] != "error" || found[logging.FieldErrorHint] == nil || found["failure_kind"] != "filesystem" {
		t.Fatalf("unexpected log record: %v", found)
	}
}

func TestProcessFolderAlreadyNamedIsSkipped(t *testing.T) {
	catalog := fateCatalog()
	catalog.VNs["Fate-stay night"] = catalog.VNs["Fate Stay Night"]
	prompter := &scriptedPrompter{choice: 0, confirm: true}
	proc, _, store := newProcessor(t, catalog, prompter)
	name := "[TYPE-MOON][040130][L5] Fate-stay night"
	base := testsupport.MakeFolders(t, name)

	outcome := proc.ProcessFolder(context.Background(), base, name)
	if outcome.Err != nil || outcome.Status != history.StatusSkipped || outcome.NewName != name {
		t.Fatalf("outcome = %+v", outcome)
	}
	if len(prompter.proposals) != 0 {
		t.Fatalf("expected no confirmation prompt, got %+v", prompter.proposals)
	}
	if got := testsupport.FolderNames(t, base); !slices.Equal(got, []string{name}) {
		t.Fatalf("folders = %v", got)
	}
	entries, err := store.BySession(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("BySession: %v", err)
	}
	if len(entries) != 1 || entries[0].Status != history.StatusSkipped || entries[0].NewName != name {
		t.Fatalf("history = %+v", entries)
	}
}

func TestSuggest(t *testing.T) {
	proc, _, _ := newProcessor(t, fateCatalog(), nil)
	base := testsupport.MakeFolders(t, "Fate Stay Night")

	got := proc.Suggest(context.Background(), base, "Fate Stay Night", 0)
	if got.Err != nil {
		t.Fatalf("Suggest: %v", got.Err)
	}
	if got.Chosen == nil || got.Chosen.VN.ID != "v11" || got.Name != "[TYPE-MOON][040130][L5] Fate-stay night" {
		t.Fatalf("suggestion = %+v", got)
	}

	miss := proc.Suggest(context.Background(), base, "Nothing", 0)
	if miss.Err == nil || miss.Chosen != nil {
		t.Fatalf("expected miss, got %+v", miss)
	}

	out := proc.Suggest(context.Background(), base, "Fate Stay Night", 4)
	if out.Err == nil {
		t.Fatal("expected out-of-range pick to fail")
	}
}
