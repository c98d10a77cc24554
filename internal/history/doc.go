// Package history journals every folder the renamer touches in a SQLite
// database under the state directory.
//
// Each processed folder appends one row recording the session, the base
// directory, the old and new names, the chosen VN, and the outcome. The
// journal is append-only; the CLI reads it back through Recent and
// BySession.
package history
