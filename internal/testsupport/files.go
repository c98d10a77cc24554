package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// MakeFolders creates a base directory holding one subdirectory per name and
// returns the base path. Each folder gets a placeholder game file so it is
// not empty.
func MakeFolders(t testing.TB, names ...string) string {
	t.Helper()

	base := t.TempDir()
	for _, name := range names {
		WriteFile(t, filepath.Join(base, name, "game.exe"), "stub")
	}
	return base
}

// FolderNames lists the subdirectory names under base.
func FolderNames(t testing.TB, base string) []string {
	t.Helper()

	entries, err := os.ReadDir(base)
	if err != nil {
		t.Fatalf("read %s: %v", base, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}
