package naming

import (
	"errors"
	"fmt"
	"strings"

	"vnrename/internal/config"
)

// Token names one placeholder of a name template.
type Token string

const (
	TokenProducer    Token = "producer"
	TokenReleaseDate Token = "releaseDate"
	TokenLength      Token = "length"
	TokenTitle       Token = "title"
	TokenFlags       Token = "flags"
	TokenTags        Token = "tags"
)

// AllTokens lists every known token in default order.
var AllTokens = []Token{TokenProducer, TokenReleaseDate, TokenLength, TokenTitle, TokenFlags, TokenTags}

// ErrMissingPlaceholder matches every MissingPlaceholderError via errors.Is.
var ErrMissingPlaceholder = errors.New("missing placeholder")

// MissingPlaceholderError reports a template token with no known rendering.
type MissingPlaceholderError struct {
	Token string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("missing placeholder %q: known tokens are %s", e.Token, knownTokenList())
}

// Is lets errors.Is match ErrMissingPlaceholder.
func (e *MissingPlaceholderError) Is(target error) bool {
	return target == ErrMissingPlaceholder
}

// Entry is one template slot.
type Entry struct {
	Token   Token
	Enabled bool
}

// Template is an ordered sequence of entries. A template with no enabled
// entries selects the default layout.
type Template []Entry

// IsDefault reports whether the default layout applies.
func (t Template) IsDefault() bool {
	for _, e := range t {
		if e.Enabled {
			return false
		}
	}
	return true
}

// Enabled returns the enabled tokens in order.
func (t Template) Enabled() []Token {
	var out []Token
	for _, e := range t {
		if e.Enabled {
			out = append(out, e.Token)
		}
	}
	return out
}

// String renders the template in the form accepted by ParseTemplate.
func (t Template) String() string {
	parts := make([]string, 0, len(t))
	for _, e := range t {
		if e.Enabled {
			parts = append(parts, string(e.Token))
		} else {
			parts = append(parts, "!"+string(e.Token))
		}
	}
	return strings.Join(parts, ",")
}

// ParseTemplate reads a comma separated token list such as
// "producer,releaseDate,!length,title". A leading "!" disables a token.
// Unknown tokens are kept so synthesis can report them.
func ParseTemplate(list string) Template {
	var out Template
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		enabled := true
		if strings.HasPrefix(part, "!") {
			enabled = false
			part = strings.TrimSpace(part[1:])
		}
		out = append(out, Entry{Token: Token(part), Enabled: enabled})
	}
	return out
}

func knownTokenList() string {
	names := make([]string, len(AllTokens))
	for i, tok := range AllTokens {
		names[i] = string(tok)
	}
	return strings.Join(names, ", ")
}

// FromConfig converts configured template tokens.
func FromConfig(tokens []config.TemplateToken) Template {
	out := make(Template, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, Entry{Token: Token(tok.Token), Enabled: tok.Enabled})
	}
	return out
}
