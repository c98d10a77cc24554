package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"vnrename/internal/history"
	"vnrename/internal/testsupport"
)

func TestRecordAndRecent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	inputs := []history.Entry{
		{SessionID: "s1", BaseDir: "/vn", OldName: "a", NewName: "[X][240301] A", VNID: "v1", Status: history.StatusRenamed, CreatedAt: base},
		{SessionID: "s1", BaseDir: "/vn", OldName: "b", Status: history.StatusSkipped, CreatedAt: base.Add(time.Minute)},
		{SessionID: "s2", BaseDir: "/vn", OldName: "c", Status: history.StatusFailed, Error: "target exists", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, in := range inputs {
		saved, err := store.Record(ctx, in)
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if saved.ID == 0 {
			t.Fatal("expected id to be assigned")
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].OldName != "c" || recent[1].OldName != "b" {
		t.Fatalf("unexpected order: %q, %q", recent[0].OldName, recent[1].OldName)
	}
	if recent[0].Error != "target exists" || recent[0].Status != history.StatusFailed {
		t.Fatalf("unexpected entry %#v", recent[0])
	}
	if !recent[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("created_at = %v", recent[0].CreatedAt)
	}

	session, err := store.BySession(ctx, "s1")
	if err != nil {
		t.Fatalf("BySession failed: %v", err)
	}
	if len(session) != 2 || session[0].NewName != "[X][240301] A" || session[0].VNID != "v1" {
		t.Fatalf("unexpected session entries %#v", session)
	}
	if got, want := session[0].NewPath(), filepath.Join("/vn", "[X][240301] A"); got != want {
		t.Fatalf("NewPath = %q, want %q", got, want)
	}
	if session[1].NewPath() != "" {
		t.Fatalf("expected empty NewPath for skipped entry, got %q", session[1].NewPath())
	}
}

func TestRecordValidatesEntry(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	if _, err := store.Record(ctx, history.Entry{Status: history.StatusRenamed}); err == nil {
		t.Fatal("expected error for missing old name")
	}
	if _, err := store.Record(ctx, history.Entry{OldName: "a"}); err == nil {
		t.Fatal("expected error for missing status")
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := store.Record(ctx, history.Entry{OldName: "a", Status: history.StatusAborted}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenHistory(t, cfg)
	entries, err := reopened.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Status != history.StatusAborted {
		t.Fatalf("unexpected entries %#v", entries)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	raw, err := history.OpenPath(cfg.HistoryPath())
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	if err := raw.SetSchemaVersionForTest(context.Background(), 99); err != nil {
		t.Fatalf("set version: %v", err)
	}
	_ = raw.Close()

	_, err = history.OpenPath(cfg.HistoryPath())
	if !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
