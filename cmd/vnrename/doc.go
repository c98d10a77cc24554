// Package main hosts the vnrename CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration, builds the catalog client
// and logger once per invocation, and hands folders to the workflow package.
// `rename` is the interactive loop; `scan` and `suggest` are read-only
// reports; `tag`, `history` and `config` are utilities.
//
// Keep this package lean: behavior belongs in internal packages and is only
// surfaced here through commands and flags.
package main
