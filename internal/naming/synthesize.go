package naming

import (
	"fmt"
	"regexp"
	"strings"

	"vnrename/internal/vndb"
)

const (
	unknownProducer = "Unknown Producer"
	unknownDate     = "Unknown"
	unknownTitle    = "Unknown Title"
)

var (
	emptyParens = regexp.MustCompile(`\(\s*\)`)
	spaceRuns   = regexp.MustCompile(`\s{2,}`)
)

// Input is everything a name is built from. Release is nil when no release
// was resolved; an empty TitleOverride uses the VN title.
type Input struct {
	VN            vndb.VN
	Release       *vndb.Release
	Flags         string
	Tags          string
	Template      Template
	TitleOverride string
}

// Synthesize renders the folder name for in.
func Synthesize(in Input) (string, error) {
	values := map[Token]string{
		TokenProducer:    resolveProducer(in.VN, in.Release),
		TokenReleaseDate: resolveDate(in.VN, in.Release),
		TokenLength:      lengthToken(in.VN.Length),
		TokenTitle:       resolveTitle(in.VN, in.TitleOverride),
		TokenFlags:       strings.TrimSpace(in.Flags),
		TokenTags:        strings.TrimSpace(in.Tags),
	}
	if in.Template.IsDefault() {
		return defaultName(values), nil
	}
	return customName(in.Template.Enabled(), values)
}

func defaultName(v map[Token]string) string {
	name := fmt.Sprintf("[%s][%s]%s %s", v[TokenProducer], v[TokenReleaseDate], v[TokenLength], v[TokenTitle])
	if flags := v[TokenFlags]; flags != "" {
		name += " {" + flags + "}"
	}
	if tags := v[TokenTags]; tags != "" {
		name += " (" + tags + ")"
	}
	return name
}

func customName(tokens []Token, v map[Token]string) (string, error) {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		part, err := renderToken(tok, v)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	name := strings.Join(parts, " ")
	name = emptyParens.ReplaceAllString(name, "")
	name = spaceRuns.ReplaceAllString(name, " ")
	return strings.TrimSpace(name), nil
}

func renderToken(tok Token, v map[Token]string) (string, error) {
	switch tok {
	case TokenProducer, TokenReleaseDate:
		return "[" + v[tok] + "]", nil
	case TokenLength, TokenTitle, TokenFlags:
		return v[tok], nil
	case TokenTags:
		return "(" + v[tok] + ")", nil
	default:
		return "", &MissingPlaceholderError{Token: string(tok)}
	}
}

// resolveProducer prefers the release's original developer, then its first
// producer, then the VN's first developer.
func resolveProducer(vn vndb.VN, release *vndb.Release) string {
	if release != nil && len(release.Producers) > 0 {
		for _, p := range release.Producers {
			if p.IsDeveloper {
				return p.Name
			}
		}
		return release.Producers[0].Name
	}
	if dev, ok := vn.FirstDeveloper(); ok {
		return dev
	}
	return unknownProducer
}

func resolveDate(vn vndb.VN, release *vndb.Release) string {
	raw := vn.Released
	if release != nil && release.Released != "" {
		raw = release.Released
	}
	if short, ok := vndb.ShortDate(raw); ok {
		return short
	}
	return unknownDate
}

func lengthToken(length *int) string {
	if length == nil {
		return ""
	}
	return fmt.Sprintf("[L%d]", *length)
}

func resolveTitle(vn vndb.VN, override string) string {
	if override = strings.TrimSpace(override); override != "" {
		return override
	}
	if vn.Title == "" {
		return unknownTitle
	}
	return vn.Title
}

// OriginalTitle returns the title flagged main, else the first localized
// title, else the default title.
func OriginalTitle(vn vndb.VN) string {
	for _, t := range vn.Titles {
		if t.Main && t.Title != "" {
			return t.Title
		}
	}
	if len(vn.Titles) > 0 && vn.Titles[0].Title != "" {
		return vn.Titles[0].Title
	}
	return vn.Title
}
