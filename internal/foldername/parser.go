package foldername

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	bracketPattern   = regexp.MustCompile(`\[(.*?)\]`)
	parenPattern     = regexp.MustCompile(`\(.*?\)`)
	bracePattern     = regexp.MustCompile(`\{.*?\}`)
	allDigitsPattern = regexp.MustCompile(`^[0-9]+$`)
)

const (
	minProducerLength  = 3
	dateHintDigitCount = 6
)

// Hints holds the values opportunistically found in bracketed segments.
// Empty strings mean the hint is absent.
type Hints struct {
	// ExpectedDate is a YYMMDD string.
	ExpectedDate     string
	ExpectedProducer string
}

// HasDate reports whether a date hint was found.
func (h Hints) HasDate() bool { return h.ExpectedDate != "" }

// HasProducer reports whether a producer hint was found.
func (h Hints) HasProducer() bool { return h.ExpectedProducer != "" }

// Parsed is the full result of parsing one folder name.
type Parsed struct {
	Raw   string
	Title string
	Hints Hints
}

// Parse runs ParseTitle and ParseBracketHints on raw.
func Parse(raw string) Parsed {
	return Parsed{
		Raw:   raw,
		Title: ParseTitle(raw),
		Hints: ParseBracketHints(raw),
	}
}

// ParseTitle strips every [...], (...) and {...} span and returns the trimmed
// remainder. When a "+" separates bundled works only the text before the
// first "+" is kept.
func ParseTitle(raw string) string {
	cleaned := bracketPattern.ReplaceAllString(raw, "")
	cleaned = parenPattern.ReplaceAllString(cleaned, "")
	cleaned = bracePattern.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	if before, _, found := strings.Cut(cleaned, "+"); found {
		return strings.TrimSpace(before)
	}
	return cleaned
}

// ParseBracketHints scans bracketed segments for a YYMMDD date and a producer
// name. The first valid value of each kind wins; later segments never
// overwrite it.
func ParseBracketHints(raw string) Hints {
	var hints Hints
	for _, match := range bracketPattern.FindAllStringSubmatch(raw, -1) {
		segment := strings.TrimSpace(match[1])
		digits := allDigitsPattern.MatchString(segment)
		switch {
		case digits && len(segment) == dateHintDigitCount:
			if hints.ExpectedDate == "" && validDateHint(segment) {
				hints.ExpectedDate = segment
			}
		case digits && len(segment) > dateHintDigitCount:
			// Long numeric codes (catalog numbers, hashes) carry no hint.
		case utf8.RuneCountInString(segment) >= minProducerLength:
			if hints.ExpectedProducer == "" {
				hints.ExpectedProducer = segment
			}
		}
	}
	return hints
}

// validDateHint accepts YYMMDD when the month is 1-12 and the day exists in
// that month of year 20YY.
func validDateHint(segment string) bool {
	yy, _ := strconv.Atoi(segment[0:2])
	mm, _ := strconv.Atoi(segment[2:4])
	dd, _ := strconv.Atoi(segment[4:6])
	if mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return false
	}
	return dd <= daysIn(time.Month(mm), 2000+yy)
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
