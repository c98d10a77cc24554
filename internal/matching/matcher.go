package matching

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"vnrename/internal/foldername"
	"vnrename/internal/logging"
	"vnrename/internal/services"
	"vnrename/internal/vndb"
)

// minFetchSize is how many catalog results are scored before truncating to
// the caller's limit, so a strong match ranked low by the catalog can still
// surface.
const minFetchSize = 10

// Matcher runs catalog searches and release lookups.
type Matcher struct {
	catalog vndb.Catalog
	logger  *slog.Logger
}

// New constructs a Matcher backed by catalog.
func New(catalog vndb.Catalog, logger *slog.Logger) *Matcher {
	return &Matcher{
		catalog: catalog,
		logger:  logging.NewComponentLogger(logger, "matching"),
	}
}

// SearchCandidates queries the catalog and returns at most limit candidates
// sorted by confidence, highest first. Ties keep catalog order. Catalog
// failures are logged and yield an empty result.
func (m *Matcher) SearchCandidates(ctx context.Context, query string, hints foldername.Hints, limit int) []Candidate {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}
	logger := logging.WithContext(ctx, m.logger)

	results, err := m.catalog.SearchVN(ctx, query, max(limit, minFetchSize))
	if err != nil {
		logging.WarnWithContext(logger, "catalog search failed; treating as no results", "catalog_request_failed",
			logging.String("query", query),
			logging.String("failure_kind", services.FailureKind(err)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check network connectivity or vndb.base_url"),
			logging.String(logging.FieldImpact, "folder falls back to query narrowing or manual search"),
		)
		return nil
	}

	candidates := make([]Candidate, 0, len(results))
	for _, vn := range results {
		candidate := Score(query, hints, vn)
		logger.Debug("candidate scored",
			logging.String(logging.FieldVNID, vn.ID),
			logging.String("title", vn.Title),
			logging.Float64("title_score", candidate.TitleScore),
			logging.Float64("date_score", candidate.DateScore),
			logging.Float64("producer_score", candidate.ProducerScore),
			logging.Float64("confidence", candidate.Confidence))
		candidates = append(candidates, candidate)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	logger.Info("catalog search complete",
		logging.String("query", query),
		logging.Int("returned", len(results)),
		logging.Int("kept", len(candidates)))
	return candidates
}

// ResolveRelease fetches the authoritative release for a VN: the first one
// flagged official, else the first returned. Both the prefixed and bare id
// forms are tried. The bool is false when no release is found.
func (m *Matcher) ResolveRelease(ctx context.Context, id string) (vndb.Release, bool) {
	logger := logging.WithContext(ctx, m.logger)
	for _, form := range idForms(id) {
		releases, err := m.catalog.ReleasesForVN(ctx, form)
		if err != nil {
			logging.WarnWithContext(logger, "release lookup failed", "catalog_request_failed",
				logging.String(logging.FieldVNID, form),
				logging.String("failure_kind", services.FailureKind(err)),
				logging.Error(err),
				logging.String(logging.FieldImpact, "name falls back to VN-level producer and date"),
			)
			continue
		}
		if len(releases) == 0 {
			continue
		}
		release, official := selectRelease(releases)
		logger.Debug("release resolved",
			logging.String(logging.FieldVNID, form),
			logging.String("release_title", release.Title),
			logging.Bool("official", official),
			logging.Int("release_count", len(releases)))
		return release, true
	}
	logger.Info("no release found", logging.String(logging.FieldVNID, id))
	return vndb.Release{}, false
}

func selectRelease(releases []vndb.Release) (vndb.Release, bool) {
	for _, rel := range releases {
		if rel.Official {
			return rel, true
		}
	}
	return releases[0], false
}

func idForms(id string) []string {
	prefixed := vndb.PrefixedID(id)
	bare := vndb.BareID(id)
	if prefixed == "" {
		return nil
	}
	if bare == "" || bare == prefixed {
		return []string{prefixed}
	}
	return []string{prefixed, bare}
}
