package fsops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"vnrename/internal/services"
)

// ErrTargetExists reports a rename whose destination is already taken.
var ErrTargetExists = errors.New("target already exists")

// RenameError describes a failed folder rename.
type RenameError struct {
	OldPath string
	NewPath string
	Err     error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("rename %q to %q: %v", e.OldPath, e.NewPath, e.Err)
}

// Unwrap exposes both the filesystem marker and the underlying cause.
func (e *RenameError) Unwrap() []error {
	return []error{services.ErrFilesystem, e.Err}
}

// FS implements the filesystem collaborator on the local disk.
type FS struct{}

// Local returns the local filesystem implementation.
func Local() FS { return FS{} }

// ListEntries returns the names of all entries directly inside dir, sorted.
func (FS) ListEntries(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "fsops", "list entries", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ListSubdirectories returns the names of the directories directly inside
// dir, sorted. Symlinks to directories are included.
func (FS) ListSubdirectories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "fsops", "list subdirectories", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, entry.Name())); err == nil && info.IsDir() {
				names = append(names, entry.Name())
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// Rename moves oldPath to newPath. An existing destination is never
// replaced, except when it is the same file (a case-only rename on a
// case-insensitive filesystem).
func (FS) Rename(oldPath, newPath string) error {
	oldInfo, err := os.Lstat(oldPath)
	if err != nil {
		return &RenameError{OldPath: oldPath, NewPath: newPath, Err: err}
	}
	if newInfo, err := os.Lstat(newPath); err == nil {
		if !os.SameFile(oldInfo, newInfo) {
			return &RenameError{OldPath: oldPath, NewPath: newPath, Err: ErrTargetExists}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return &RenameError{OldPath: oldPath, NewPath: newPath, Err: err}
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		if errors.Is(err, os.ErrExist) {
			err = fmt.Errorf("%w: %w", ErrTargetExists, err)
		}
		return &RenameError{OldPath: oldPath, NewPath: newPath, Err: err}
	}
	return nil
}

// WriteTextFile writes content to path, replacing any existing file.
func (FS) WriteTextFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return services.Wrap(services.ErrFilesystem, "fsops", "write file", path, err)
	}
	return nil
}
