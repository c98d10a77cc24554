package matching

import (
	"context"
	"strings"

	"vnrename/internal/logging"
	"vnrename/internal/services"
	"vnrename/internal/vndb"
)

// LookupTag returns the first catalog tag matching name.
func (m *Matcher) LookupTag(ctx context.Context, name string) (vndb.Tag, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return vndb.Tag{}, false
	}
	tags, err := m.catalog.SearchTags(ctx, name)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, m.logger), "tag lookup failed", "catalog_request_failed",
			logging.String("tag", name),
			logging.String("failure_kind", services.FailureKind(err)),
			logging.Error(err),
			logging.String(logging.FieldImpact, "tag kept as typed"),
		)
		return vndb.Tag{}, false
	}
	if len(tags) == 0 {
		return vndb.Tag{}, false
	}
	return tags[0], true
}

// CanonicalTags rewrites a comma separated tag list using catalog tag names.
// Unknown tags are kept verbatim and duplicates are dropped.
func (m *Matcher) CanonicalTags(ctx context.Context, raw string) string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name := part
		if tag, ok := m.LookupTag(ctx, part); ok {
			name = tag.Name
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return strings.Join(out, ", ")
}
