package matching

import (
	"context"
	"strings"

	"vnrename/internal/foldername"
)

// State is a search session state.
type State int

const (
	StateSearching State = iota
	StateAwaitingQuery
	StateFound
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StateAwaitingQuery:
		return "awaiting_query"
	case StateFound:
		return "found"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// CandidateSearcher is the search operation a Session drives.
type CandidateSearcher interface {
	SearchCandidates(ctx context.Context, query string, hints foldername.Hints, limit int) []Candidate
}

var _ CandidateSearcher = (*Matcher)(nil)

// Session tracks the search for one folder. Searching moves to Found when a
// search returns candidates, otherwise to AwaitingQuery after at most one
// automatic narrowing retry. A non-empty query from the user moves
// AwaitingQuery back to Searching; an empty one aborts.
type Session struct {
	Parsed     foldername.Parsed
	Query      string
	State      State
	Candidates []Candidate
	// Narrowed records that the first-word retry was used.
	Narrowed bool
	Searches int

	limit         int
	narrowOnEmpty bool
}

// NewSession starts a session searching for the parsed title.
func NewSession(parsed foldername.Parsed, limit int, narrowOnEmpty bool) *Session {
	return &Session{
		Parsed:        parsed,
		Query:         strings.TrimSpace(parsed.Title),
		State:         StateSearching,
		limit:         limit,
		narrowOnEmpty: narrowOnEmpty,
	}
}

// Search runs the pending search. It is a no-op outside StateSearching.
func (s *Session) Search(ctx context.Context, searcher CandidateSearcher) State {
	if s.State != StateSearching {
		return s.State
	}
	if s.Query == "" {
		s.State = StateAwaitingQuery
		return s.State
	}

	s.Candidates = s.run(ctx, searcher)
	if len(s.Candidates) == 0 && s.narrowOnEmpty && !s.Narrowed && s.Searches == 1 {
		if first, _, found := strings.Cut(s.Query, " "); found && strings.TrimSpace(first) != "" {
			s.Narrowed = true
			s.Query = strings.TrimSpace(first)
			s.Candidates = s.run(ctx, searcher)
		}
	}

	if len(s.Candidates) > 0 {
		s.State = StateFound
	} else {
		s.State = StateAwaitingQuery
	}
	return s.State
}

// Submit supplies a replacement query while awaiting one. An empty query
// aborts the session.
func (s *Session) Submit(query string) State {
	if s.State != StateAwaitingQuery {
		return s.State
	}
	query = strings.TrimSpace(query)
	if query == "" {
		s.State = StateAborted
		return s.State
	}
	s.Query = query
	s.State = StateSearching
	return s.State
}

// Abort stops the session.
func (s *Session) Abort() {
	s.State = StateAborted
}

// QueryPrompter asks the user for a replacement query. Returning an empty
// string aborts the session.
type QueryPrompter interface {
	PromptQuery(ctx context.Context, previous, extracted string) (string, error)
}

// Run drives the session until it is Found or Aborted.
func (s *Session) Run(ctx context.Context, searcher CandidateSearcher, prompter QueryPrompter) (State, error) {
	for {
		switch s.State {
		case StateSearching:
			s.Search(ctx, searcher)
		case StateAwaitingQuery:
			if err := ctx.Err(); err != nil {
				s.Abort()
				return s.State, err
			}
			query, err := prompter.PromptQuery(ctx, s.Query, s.Parsed.Title)
			if err != nil {
				s.Abort()
				return s.State, err
			}
			s.Submit(query)
		default:
			return s.State, nil
		}
	}
}

func (s *Session) run(ctx context.Context, searcher CandidateSearcher) []Candidate {
	s.Searches++
	return searcher.SearchCandidates(ctx, s.Query, s.Parsed.Hints, s.limit)
}
