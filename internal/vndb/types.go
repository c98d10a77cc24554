package vndb

import (
	"strings"
	"time"
)

// Title is one localized title of a visual novel.
type Title struct {
	Title string
	Main  bool
}

// Producer is a developer or publisher credited on a VN or release.
type Producer struct {
	Name        string
	IsDeveloper bool
}

// Image is cover metadata. Sexual and Violence use the catalog's 0-2 scale.
type Image struct {
	URL      string
	Sexual   float64
	Violence float64
}

// IsAdult reports whether the cover is flagged as suggestive or violent.
func (i *Image) IsAdult() bool {
	if i == nil {
		return false
	}
	return i.Sexual >= 1 || i.Violence >= 1
}

// RelationKind classifies how a related work connects to a VN.
type RelationKind string

const (
	RelationCharacter   RelationKind = "char"
	RelationFandisc     RelationKind = "fan"
	RelationPrequel     RelationKind = "preq"
	RelationSequel      RelationKind = "seq"
	RelationSameSeries  RelationKind = "ser"
	RelationSameSetting RelationKind = "set"
	RelationSideStory   RelationKind = "side"
)

var relationLabels = map[RelationKind]string{
	RelationCharacter:   "Character",
	RelationFandisc:     "Fandisc",
	RelationPrequel:     "Prequel",
	RelationSequel:      "Sequel",
	RelationSameSeries:  "Same Series",
	RelationSameSetting: "Same Setting",
	RelationSideStory:   "Side Story",
}

// Label returns a human readable relation name. Unknown codes are returned as-is.
func (k RelationKind) Label() string {
	if label, ok := relationLabels[k]; ok {
		return label
	}
	return string(k)
}

// Relation is a work related to a VN.
type Relation struct {
	ID         string
	Title      string
	Kind       RelationKind
	Official   bool
	Image      *Image
	Developers []Producer
}

// VN is a catalog search result. Titles keeps catalog order. Released is the
// raw catalog date: YYYY-MM-DD, a partial date, "TBA", or empty.
type VN struct {
	ID           string
	Title        string
	Titles       []Title
	Released     string
	Developers   []Producer
	OriginalLang string
	Length       *int
	Image        *Image
	Rating       *float64
	Relations    []Relation
}

// FirstDeveloper returns the name of the first credited developer.
func (v VN) FirstDeveloper() (string, bool) {
	if len(v.Developers) == 0 {
		return "", false
	}
	name := strings.TrimSpace(v.Developers[0].Name)
	return name, name != ""
}

// OfficialRelations returns relations the catalog marks as official.
func (v VN) OfficialRelations() []Relation {
	var out []Relation
	for _, rel := range v.Relations {
		if rel.Official {
			out = append(out, rel)
		}
	}
	return out
}

// URL returns the catalog page for the VN.
func (v VN) URL() string {
	return "https://vndb.org/" + PrefixedID(v.ID)
}

// Release is one published edition of a VN.
type Release struct {
	Title     string
	Released  string
	Producers []Producer
	Official  bool
	MinAge    *int
}

// Tag is a catalog tag.
type Tag struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	VNCount     int      `json:"vn_count"`
}

// PrefixedID returns id with the "v" prefix used by the catalog.
func PrefixedID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, "v") {
		return id
	}
	return "v" + id
}

// BareID returns id without the "v" prefix.
func BareID(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), "v")
}

// ShortDate converts a full YYYY-MM-DD catalog date to YYMMDD.
func ShortDate(iso string) (string, bool) {
	parsed, err := time.Parse(time.DateOnly, strings.TrimSpace(iso))
	if err != nil {
		return "", false
	}
	return parsed.Format("060102"), true
}
