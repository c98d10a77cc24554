// Package services defines shared utilities consumed by the matching,
// naming, and workflow packages.
//
// Key responsibilities:
//   - Context helpers that stamp the CLI session ID and the folder being
//     processed so log lines can be correlated.
//   - Structured error markers plus the Wrap helper that tag failures with a
//     category (transient lookup, validation, filesystem) so callers can keep
//     failures scoped to one folder or one call.
//
// Use these helpers when wiring new components so error handling and
// observability stay uniform across the pipeline.
package services
