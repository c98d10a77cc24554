// Package workflow drives the per-folder rename pipeline.
//
// A Processor parses the folder name, runs a matching.Session until the user
// has candidates or gives up, resolves the release, detects content flags,
// synthesizes the new name, and renames the folder after confirmation. Every
// user decision goes through the Prompter interface so the CLI prompts and
// the TUI picker share one pipeline. Each outcome is journaled to the
// history store when one is configured.
//
// Folders are processed serially. A failure in one folder is reported in its
// FolderOutcome and never stops the directory loop.
package workflow
