// Package fsops wraps the filesystem operations vnrename performs: listing
// the folders of a base directory and the files inside a folder, renaming a
// folder, and writing small text files such as catalog shortcuts.
//
// Errors carry the services.ErrFilesystem marker so callers can report them
// per folder without aborting a run.
package fsops
