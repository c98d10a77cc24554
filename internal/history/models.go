package history

import (
	"path/filepath"
	"time"
)

// Status is the outcome of processing one folder.
type Status string

const (
	StatusRenamed Status = "renamed"
	StatusSkipped Status = "skipped"
	StatusAborted Status = "aborted"
	StatusFailed  Status = "failed"
)

// Entry is one journaled folder outcome.
type Entry struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	BaseDir   string    `json:"base_dir"`
	OldName   string    `json:"old_name"`
	NewName   string    `json:"new_name,omitempty"`
	VNID      string    `json:"vn_id,omitempty"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OldPath returns the folder path before the rename.
func (e Entry) OldPath() string {
	return filepath.Join(e.BaseDir, e.OldName)
}

// NewPath returns the folder path after the rename, or "" when the folder was
// not renamed.
func (e Entry) NewPath() string {
	if e.NewName == "" {
		return ""
	}
	return filepath.Join(e.BaseDir, e.NewName)
}
