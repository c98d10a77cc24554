// Package matching turns a parsed folder name into ranked catalog candidates.
//
// It owns the composite confidence score (title, release date, and producer
// similarity averaged together), the release resolver that picks the
// authoritative edition of a chosen VN, tag canonicalization, and the search
// session state machine that narrows or re-prompts when a query finds
// nothing. Catalog failures never escape this package: they are logged and
// treated as "no data" so one folder cannot abort a run.
package matching
