package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"
)

// State is the small amount of data remembered between CLI runs.
type State struct {
	LastDirectory string    `toml:"last_directory"`
	UpdatedAt     time.Time `toml:"updated_at"`
}

// LoadState reads persisted state. A missing file yields the zero State.
func LoadState(path string) (State, error) {
	var state State
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return state, nil
		}
		return state, fmt.Errorf("read state: %w", err)
	}
	if err := toml.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("parse state %s: %w", path, err)
	}
	state.LastDirectory = strings.TrimSpace(state.LastDirectory)
	return state, nil
}

// SaveState writes state under an exclusive file lock so concurrent CLI
// invocations do not interleave writes.
func SaveState(path string, state State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire state lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now().UTC()
	}
	data, err := toml.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}
