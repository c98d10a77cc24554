// Package textutil provides the string helpers shared by the matching and
// naming packages.
//
// The primary use cases are:
//   - Sequence similarity ratios between a search query and catalog titles
//   - Width and case folding so full-width and half-width input compare equal
//   - Script detection for Japanese titles
//   - Sanitizing folder names for safe filesystem use
//
// Similarity follows the longest-matching-block ratio: the longest common
// contiguous block is found, the procedure recurses on both sides, and the
// ratio is 2*M/T where M is the matched rune count and T the combined length.
package textutil
