package fsops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"vnrename/internal/services"
)

// ErrDirectoryBusy reports that another vnrename process holds the lock for a base directory.
var ErrDirectoryBusy = errors.New("directory is being processed by another vnrename process")

// DirectoryLock is an exclusive lock on a base directory.
type DirectoryLock struct {
	lock *flock.Flock
	path string
}

// LockDirectory takes a non-blocking exclusive lock for base. The lock file
// lives under lockDir and is named after a stable UUID of the absolute path,
// so the base directory itself is never written to.
func LockDirectory(lockDir, base string) (*DirectoryLock, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "fsops", "lock directory", base, err)
	}
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "fsops", "lock directory", "create lock dir", err)
	}
	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs)).String() + ".lock"
	path := filepath.Join(lockDir, name)

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "fsops", "lock directory", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryBusy, abs)
	}
	return &DirectoryLock{lock: lock, path: path}, nil
}

// Path returns the lock file location.
func (l *DirectoryLock) Path() string { return l.path }

// Release unlocks the directory.
func (l *DirectoryLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
