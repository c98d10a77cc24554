// Package naming builds the proposed folder name for a matched visual novel.
//
// The default layout is "[producer][YYMMDD][Ln] title {flags} (tags)". A
// Template (an ordered list of enabled tokens) replaces it when the user
// customizes the layout. Synthesis is pure: it never touches the filesystem
// and never sanitizes characters such as "/" in titles.
package naming
