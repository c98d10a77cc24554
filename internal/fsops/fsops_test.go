package fsops

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"vnrename/internal/services"
)

func mkdirs(t *testing.T, base string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.MkdirAll(filepath.Join(base, name), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
	}
}

func TestListSubdirectoriesSkipsFiles(t *testing.T) {
	base := t.TempDir()
	mkdirs(t, base, "[Key] Clannad", "Air")
	if err := os.WriteFile(filepath.Join(base, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(base, "Air"), filepath.Join(base, "Air link")); err != nil {
		t.Fatal(err)
	}

	got, err := Local().ListSubdirectories(base)
	if err != nil {
		t.Fatalf("ListSubdirectories returned error: %v", err)
	}
	want := []string{"Air", "Air link", "[Key] Clannad"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	entries, err := Local().ListEntries(base)
	if err != nil || len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %v %v", entries, err)
	}
}

func TestListSubdirectoriesMissingDir(t *testing.T) {
	_, err := Local().ListSubdirectories(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, services.ErrFilesystem) {
		t.Fatalf("expected filesystem marker, got %v", err)
	}
}

func TestRename(t *testing.T) {
	base := t.TempDir()
	mkdirs(t, base, "old", "taken")
	fs := Local()

	if err := fs.Rename(filepath.Join(base, "old"), filepath.Join(base, "new")); err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "new")); err != nil {
		t.Fatalf("expected renamed folder: %v", err)
	}

	err := fs.Rename(filepath.Join(base, "new"), filepath.Join(base, "taken"))
	var renameErr *RenameError
	if !errors.As(err, &renameErr) {
		t.Fatalf("expected RenameError, got %v", err)
	}
	if !errors.Is(err, ErrTargetExists) || !errors.Is(err, services.ErrFilesystem) {
		t.Fatalf("expected collision markers, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "new")); err != nil {
		t.Fatal("source must survive a failed rename")
	}

	err = fs.Rename(filepath.Join(base, "absent"), filepath.Join(base, "x"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist cause, got %v", err)
	}
}

func TestWriteShortcut(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteShortcut(Local(), dir, "https://vndb.org/v4")
	if err != nil {
		t.Fatalf("WriteShortcut returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[InternetShortcut]\nURL=https://vndb.org/v4\n" {
		t.Fatalf("unexpected shortcut content %q", data)
	}
	if filepath.Base(path) != ShortcutFileName {
		t.Fatalf("unexpected shortcut name %q", path)
	}
}

func TestLockDirectoryIsExclusive(t *testing.T) {
	lockDir := t.TempDir()
	base := t.TempDir()

	first, err := LockDirectory(lockDir, base)
	if err != nil {
		t.Fatalf("LockDirectory returned error: %v", err)
	}
	if _, err := LockDirectory(lockDir, base); !errors.Is(err, ErrDirectoryBusy) {
		t.Fatalf("expected busy error, got %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
	second, err := LockDirectory(lockDir, base)
	if err != nil {
		t.Fatalf("expected lock after release, got %v", err)
	}
	_ = second.Release()
}
