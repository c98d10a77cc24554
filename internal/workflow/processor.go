package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"vnrename/internal/config"
	"vnrename/internal/contentflags"
	"vnrename/internal/foldername"
	"vnrename/internal/fsops"
	"vnrename/internal/history"
	"vnrename/internal/logging"
	"vnrename/internal/matching"
	"vnrename/internal/naming"
	"vnrename/internal/services"
	"vnrename/internal/textutil"
	"vnrename/internal/vndb"
)

// Processor runs the rename pipeline for folders under a base directory.
type Processor struct {
	cfg      *config.Config
	matcher  *matching.Matcher
	detector *contentflags.Detector
	fs       FileSystem
	prompter Prompter
	journal  Journal
	logger   *slog.Logger

	sessionID string
	template  naming.Template
}

// Option configures optional Processor behavior.
type Option func(*Processor)

// WithJournal records every outcome in j.
func WithJournal(j Journal) Option {
	return func(p *Processor) { p.journal = j }
}

// WithSessionID tags journal entries with id.
func WithSessionID(id string) Option {
	return func(p *Processor) { p.sessionID = id }
}

// WithTemplate overrides the configured name template.
func WithTemplate(t naming.Template) Option {
	return func(p *Processor) { p.template = t }
}

// WithFileSystem replaces the local filesystem.
func WithFileSystem(fs FileSystem) Option {
	return func(p *Processor) { p.fs = fs }
}

// NewProcessor constructs a Processor. prompter may be nil for callers that
// only use Suggest.
func NewProcessor(cfg *config.Config, catalog vndb.Catalog, prompter Prompter, logger *slog.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Processor{
		cfg:      cfg,
		matcher:  matching.New(catalog, logger),
		fs:       fsops.Local(),
		prompter: prompter,
		logger:   logging.NewComponentLogger(logger, "workflow"),
		template: naming.FromConfig(cfg.Naming.Template),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.detector = contentflags.NewDetector(p.fs, logger)
	return p
}

// Matcher exposes the catalog matcher for commands that query it directly.
func (p *Processor) Matcher() *matching.Matcher {
	return p.matcher
}

// ProcessDirectory processes every subdirectory of base in name order while
// holding the directory lock. Listing failures are returned; folder failures
// are reported in the summary.
func (p *Processor) ProcessDirectory(ctx context.Context, base string) (Summary, error) {
	summary := Summary{Base: base}
	lock, err := fsops.LockDirectory(filepath.Join(p.cfg.Paths.StateDir, "locks"), base)
	if err != nil {
		logging.ErrorWithContext(p.logger, "directory lock unavailable", "directory_lock_failed",
			logging.String("base_dir", base),
			logging.String("failure_kind", services.FailureKind(err)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "another rename run may be using this directory"))
		return summary, err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			p.logger.Debug("directory lock release failed", logging.Error(releaseErr))
		}
	}()

	folders, err := p.fs.ListSubdirectories(base)
	if err != nil {
		logging.ErrorWithContext(p.logger, "directory listing failed", "directory_enumeration_failed",
			logging.String("base_dir", base),
			logging.String("failure_kind", services.FailureKind(err)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the directory exists and is readable"))
		return summary, err
	}
	p.logger.Info("processing directory",
		logging.String("base_dir", base),
		logging.Int("folder_count", len(folders)))

	for _, folder := range folders {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		outcome := p.ProcessFolder(ctx, base, folder)
		summary.Outcomes = append(summary.Outcomes, outcome)
		if IsAbort(outcome.Err) {
			p.logger.Info("run stopped by user", logging.String("folder", folder))
			break
		}
	}

	p.logger.Info("directory complete",
		logging.String("base_dir", base),
		logging.Int("renamed", summary.Count(history.StatusRenamed)),
		logging.Int("skipped", summary.Count(history.StatusSkipped)),
		logging.Int("aborted", summary.Count(history.StatusAborted)),
		logging.Int("failed", summary.Count(history.StatusFailed)))
	return summary, nil
}

// ProcessFolder runs the interactive pipeline for one folder.
func (p *Processor) ProcessFolder(ctx context.Context, base, folder string) FolderOutcome {
	ctx = services.WithFolder(ctx, folder)
	logger := logging.WithContext(ctx, p.logger)
	outcome := p.processFolder(ctx, logger, base, folder)
	p.record(ctx, logger, base, outcome)
	return outcome
}

func (p *Processor) processFolder(ctx context.Context, logger *slog.Logger, base, folder string) FolderOutcome {
	outcome := FolderOutcome{Folder: folder}
	if p.prompter == nil {
		outcome.Status = history.StatusFailed
		outcome.Err = services.Wrap(services.ErrConfiguration, "workflow", "process folder", "no prompter configured", nil)
		return outcome
	}

	session := matching.NewSession(foldername.Parse(folder), p.cfg.Search.CandidateLimit, p.cfg.Search.NarrowOnEmpty)
	state, err := session.Run(ctx, p.matcher, p.prompter)
	if err != nil {
		outcome.Status = history.StatusAborted
		outcome.Err = err
		return outcome
	}
	if state != matching.StateFound {
		logger.Info("folder search aborted", logging.Args(logging.DecisionAttrs("search", "aborted", "empty replacement query")...)...)
		outcome.Status = history.StatusAborted
		return outcome
	}

	index, err := p.prompter.ChooseCandidate(ctx, folder, session.Candidates)
	if err != nil {
		outcome.Status = history.StatusAborted
		outcome.Err = err
		return outcome
	}
	if index < 0 || index >= len(session.Candidates) {
		logger.Info("folder skipped", logging.Args(logging.DecisionAttrs("candidate", "skipped", "no candidate chosen")...)...)
		outcome.Status = history.StatusSkipped
		return outcome
	}
	candidate := session.Candidates[index]
	outcome.VNID = candidate.VN.ID

	oldPath := filepath.Join(base, folder)
	release := p.resolveRelease(ctx, candidate.VN.ID)
	logger.Debug("release resolution",
		logging.String(logging.FieldVNID, candidate.VN.ID),
		logging.String(logging.FieldDecisionResult, textutil.Ternary(release != nil, "release", "vn_fallback")),
		logging.String("release_title", releaseTitle(release)))
	flags := p.detector.Detect(oldPath, folder, releaseTitle(release))

	details, err := p.prompter.PromptDetails(ctx, folder, flags)
	if err != nil {
		outcome.Status = history.StatusAborted
		outcome.Err = err
		return outcome
	}

	name, err := p.synthesize(ctx, candidate.VN, release, contentflags.MergeFlags(details.Flags, flags.Markers()...), details.Tags)
	if err != nil {
		outcome.Status = history.StatusFailed
		outcome.Err = err
		return outcome
	}
	if name == folder {
		logger.Info("folder already named", logging.Args(logging.DecisionAttrs("rename", "skipped", "name unchanged")...)...)
		outcome.Status = history.StatusSkipped
		outcome.NewName = name
		return outcome
	}

	proposal := Proposal{
		Folder:    folder,
		OldPath:   oldPath,
		NewPath:   filepath.Join(base, name),
		NewName:   name,
		Candidate: candidate,
		Release:   release,
		Flags:     flags,
	}
	ok, err := p.prompter.ConfirmRename(ctx, proposal)
	if err != nil {
		outcome.Status = history.StatusAborted
		outcome.Err = err
		return outcome
	}
	if !ok {
		logger.Info("rename declined", logging.Args(logging.DecisionAttrs("rename", "skipped", "user declined")...)...)
		outcome.Status = history.StatusSkipped
		return outcome
	}

	if err := p.fs.Rename(proposal.OldPath, proposal.NewPath); err != nil {
		logging.WarnWithContext(logger, "rename failed", "rename_failed",
			logging.String("new_name", name),
			logging.String("failure_kind", services.FailureKind(err)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions or remove the conflicting folder"),
			logging.String(logging.FieldImpact, "folder left unchanged; remaining folders continue"),
		)
		outcome.Status = history.StatusFailed
		outcome.Err = err
		return outcome
	}
	outcome.Status = history.StatusRenamed
	outcome.NewName = name
	logger.Info("folder renamed",
		logging.String(logging.FieldVNID, candidate.VN.ID),
		logging.String("new_name", name),
		logging.Float64("confidence", candidate.Confidence))

	if p.cfg.Naming.CreateShortcut {
		p.writeShortcut(logger, proposal.NewPath, candidate.VN)
	}
	return outcome
}

// Suggest matches folder without prompting: the first search (with the
// usual narrowing retry) decides, and pick selects a candidate by index.
// Content flags come from the folder alone.
func (p *Processor) Suggest(ctx context.Context, base, folder string, pick int) Suggestion {
	ctx = services.WithFolder(ctx, folder)
	parsed := foldername.Parse(folder)
	suggestion := Suggestion{Folder: folder, Parsed: parsed}

	session := matching.NewSession(parsed, p.cfg.Search.CandidateLimit, p.cfg.Search.NarrowOnEmpty)
	if state := session.Search(ctx, p.matcher); state != matching.StateFound {
		suggestion.Err = services.Wrap(services.ErrNotFound, "workflow", "suggest", "no catalog candidates for "+quoteOrEmpty(session.Query), nil)
		return suggestion
	}
	suggestion.Candidates = session.Candidates
	if pick < 0 || pick >= len(session.Candidates) {
		suggestion.Err = services.Wrap(services.ErrValidation, "workflow", "suggest",
			fmt.Sprintf("candidate %d out of range (have %d)", pick+1, len(session.Candidates)), nil)
		return suggestion
	}
	chosen := session.Candidates[pick]
	suggestion.Chosen = &chosen
	suggestion.Release = p.resolveRelease(ctx, chosen.VN.ID)
	suggestion.Flags = p.detector.Detect(filepath.Join(base, folder), folder, releaseTitle(suggestion.Release))

	name, err := p.synthesize(ctx, chosen.VN, suggestion.Release, contentflags.MergeFlags("", suggestion.Flags.Markers()...), "")
	if err != nil {
		suggestion.Err = err
		return suggestion
	}
	suggestion.Name = name
	return suggestion
}

func (p *Processor) resolveRelease(ctx context.Context, id string) *vndb.Release {
	release, ok := p.matcher.ResolveRelease(ctx, id)
	if !ok {
		return nil
	}
	return &release
}

func (p *Processor) synthesize(ctx context.Context, vn vndb.VN, release *vndb.Release, flags, tags string) (string, error) {
	input := naming.Input{
		VN:       vn,
		Release:  release,
		Flags:    flags,
		Tags:     p.matcher.CanonicalTags(ctx, tags),
		Template: p.template,
	}
	if p.cfg.Naming.UseOriginalTitle {
		input.TitleOverride = naming.OriginalTitle(vn)
	}
	name, err := naming.Synthesize(input)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "workflow", "synthesize name", "invalid name template", err)
	}
	if p.cfg.Naming.Sanitize {
		name = textutil.SanitizeFileName(name)
	}
	if strings.TrimSpace(name) == "" {
		return "", services.Wrap(services.ErrValidation, "workflow", "synthesize name", "synthesized name is empty", nil)
	}
	return name, nil
}

func (p *Processor) writeShortcut(logger *slog.Logger, folder string, vn vndb.VN) {
	path, err := fsops.WriteShortcut(p.fs, folder, vn.URL())
	if err != nil {
		logging.WarnWithContext(logger, "shortcut not written", "shortcut_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "rename kept; folder has no catalog shortcut"),
		)
		return
	}
	logger.Debug("shortcut written", logging.String("path", path))
}

func (p *Processor) record(ctx context.Context, logger *slog.Logger, base string, outcome FolderOutcome) {
	if p.journal == nil {
		return
	}
	entry := history.Entry{
		SessionID: p.sessionID,
		BaseDir:   base,
		OldName:   outcome.Folder,
		NewName:   outcome.NewName,
		VNID:      outcome.VNID,
		Status:    outcome.Status,
	}
	if outcome.Err != nil {
		entry.Error = outcome.Err.Error()
	}
	// Journaling ignores cancellation of ctx.
	recordCtx := context.WithoutCancel(ctx)
	if _, err := p.journal.Record(recordCtx, entry); err != nil {
		logging.WarnWithContext(logger, "history entry not recorded", "history_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "rename journal is missing this folder"),
		)
	}
}

func releaseTitle(release *vndb.Release) string {
	if release == nil {
		return ""
	}
	return release.Title
}

func quoteOrEmpty(query string) string {
	if query == "" {
		return "an empty title"
	}
	return fmt.Sprintf("%q", query)
}

// IsAbort reports whether err came from the user ending the run.
func IsAbort(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, ErrQuit)
}

// ErrQuit is returned by prompters when the user asks to stop the whole run.
var ErrQuit = errors.New("quit requested")
