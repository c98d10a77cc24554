// Package contentflags detects fandisc and soundtrack indicators for a
// visual novel folder and renders them as name markers.
//
// Catalog evidence (the release title or folder name) decides whether a
// fandisc marker appears at all; file names inside the folder only upgrade
// an expected fandisc to a confirmed one. Filesystem errors count as "no
// evidence".
package contentflags
