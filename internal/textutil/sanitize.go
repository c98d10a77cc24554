package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
	"\x00", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a folder or file
// name. Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. Trailing dots and spaces are trimmed because Windows
// refuses them.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	cleaned := fileNameReplacer.Replace(name)
	return strings.TrimRight(strings.TrimSpace(cleaned), ". ")
}
