package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lowerCaser = cases.Lower(language.Und)

// FoldCase applies compatibility normalization (full-width Latin letters and
// digits become their ASCII forms) and lower-cases the result.
func FoldCase(value string) string {
	if value == "" {
		return ""
	}
	return lowerCaser.String(norm.NFKC.String(value))
}

// AlphanumericKey keeps only letters and digits of the folded value.
func AlphanumericKey(value string) string {
	folded := FoldCase(strings.TrimSpace(value))
	if folded == "" {
		return ""
	}
	var builder strings.Builder
	builder.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// FoldedSimilarity is Similarity over FoldCase'd inputs.
func FoldedSimilarity(a, b string) float64 {
	return Similarity(FoldCase(a), FoldCase(b))
}

// ContainsAnyFold reports whether value contains any keyword, ignoring case.
// Keywords are expected in lower case.
func ContainsAnyFold(value string, keywords []string) bool {
	if value == "" {
		return false
	}
	folded := FoldCase(value)
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(folded, keyword) {
			return true
		}
	}
	return false
}
