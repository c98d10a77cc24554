// Package config loads, normalizes, and validates vnrename configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// VNDB_TOKEN. The Config type centralizes every knob the CLI needs, and the
// State type persists the last directory the user worked in between runs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
