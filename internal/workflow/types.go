package workflow

import (
	"context"

	"vnrename/internal/contentflags"
	"vnrename/internal/foldername"
	"vnrename/internal/history"
	"vnrename/internal/matching"
	"vnrename/internal/vndb"
)

// Prompter collects user decisions for one folder at a time.
type Prompter interface {
	matching.QueryPrompter
	// ChooseCandidate returns the index of the chosen candidate or -1 to
	// skip the folder.
	ChooseCandidate(ctx context.Context, folder string, candidates []matching.Candidate) (int, error)
	// PromptDetails asks for extra flags and tags. detected holds the markers
	// that will be appended automatically.
	PromptDetails(ctx context.Context, folder string, detected contentflags.Flags) (Details, error)
	// ConfirmRename reports whether the proposed rename should go ahead.
	ConfirmRename(ctx context.Context, proposal Proposal) (bool, error)
}

// Details is the free-form input gathered after a candidate is chosen.
type Details struct {
	Flags string
	Tags  string
}

// FileSystem is the filesystem surface the processor needs.
type FileSystem interface {
	ListEntries(dir string) ([]string, error)
	ListSubdirectories(dir string) ([]string, error)
	Rename(oldPath, newPath string) error
	WriteTextFile(path, content string) error
}

// Journal records folder outcomes.
type Journal interface {
	Record(ctx context.Context, entry history.Entry) (history.Entry, error)
}

// Proposal is a synthesized rename awaiting confirmation.
type Proposal struct {
	Folder    string
	OldPath   string
	NewPath   string
	NewName   string
	Candidate matching.Candidate
	Release   *vndb.Release
	Flags     contentflags.Flags
}

// FolderOutcome is the result of processing one folder.
type FolderOutcome struct {
	Folder  string
	Status  history.Status
	NewName string
	VNID    string
	Err     error
}

// Suggestion is a non-interactive match and name for one folder.
type Suggestion struct {
	Folder     string
	Parsed     foldername.Parsed
	Candidates []matching.Candidate
	// Chosen is nil when the search found nothing.
	Chosen  *matching.Candidate
	Release *vndb.Release
	Flags   contentflags.Flags
	Name    string
	Err     error
}

// Summary collects the outcomes of one directory run.
type Summary struct {
	Base     string
	Outcomes []FolderOutcome
}

// Count returns how many outcomes have status.
func (s Summary) Count(status history.Status) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
