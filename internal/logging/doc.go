// Package logging assembles structured slog loggers and formatting helpers used
// across vnrename.
//
// It owns the console (tint) and JSON handlers, centralizes level and output
// plumbing, stamps every record with the CLI session ID, and exposes
// context-aware helpers so workflow code can tag log lines with the folder
// being processed. The package also provides a no-op logger for tests and
// wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the tool.
package logging
