package vndb

import "strings"

const (
	vnFields = "id,title,titles.title,titles.main,released,developers.name,olang,length," +
		"image.url,image.sexual,image.violence,rating," +
		"relations.id,relations.relation,relations.title,relations.relation_official," +
		"relations.image.url,relations.image.sexual,relations.image.violence,relations.developers.name"
	releaseFields = "title,released,producers.name,producers.developer,official,minage"
	tagFields     = "id,name,aliases,description,category,vn_count"
)

type queryRequest struct {
	Filters []any  `json:"filters"`
	Fields  string `json:"fields"`
	Results int    `json:"results,omitempty"`
}

type wireVNResponse struct {
	Results []wireVN `json:"results"`
	More    bool     `json:"more"`
}

type wireReleaseResponse struct {
	Results []wireRelease `json:"results"`
	More    bool          `json:"more"`
}

type wireTagResponse struct {
	Results []wireTag `json:"results"`
	More    bool      `json:"more"`
}

type wireTitle struct {
	Title *string `json:"title"`
	Main  *bool   `json:"main"`
}

type wireProducer struct {
	Name      *string `json:"name"`
	Developer *bool   `json:"developer"`
}

type wireImage struct {
	URL      *string  `json:"url"`
	Sexual   *float64 `json:"sexual"`
	Violence *float64 `json:"violence"`
}

type wireRelation struct {
	ID               *string        `json:"id"`
	Relation         *string        `json:"relation"`
	Title            *string        `json:"title"`
	RelationOfficial *bool          `json:"relation_official"`
	Image            *wireImage     `json:"image"`
	Developers       []wireProducer `json:"developers"`
}

type wireVN struct {
	ID         *string        `json:"id"`
	Title      *string        `json:"title"`
	Titles     []wireTitle    `json:"titles"`
	Released   *string        `json:"released"`
	Developers []wireProducer `json:"developers"`
	OLang      *string        `json:"olang"`
	Length     *int           `json:"length"`
	Image      *wireImage     `json:"image"`
	Rating     *float64       `json:"rating"`
	Relations  []wireRelation `json:"relations"`
}

type wireRelease struct {
	Title     *string        `json:"title"`
	Released  *string        `json:"released"`
	Producers []wireProducer `json:"producers"`
	Official  *bool          `json:"official"`
	MinAge    *int           `json:"minage"`
}

type wireTag struct {
	ID          *string  `json:"id"`
	Name        *string  `json:"name"`
	Aliases     []string `json:"aliases"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	VNCount     *int     `json:"vn_count"`
}

func str(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func flag(value *bool) bool {
	return value != nil && *value
}

func (w wireVN) toDomain() (VN, bool) {
	id := str(w.ID)
	if id == "" {
		return VN{}, false
	}
	vn := VN{
		ID:           PrefixedID(id),
		Title:        str(w.Title),
		Released:     str(w.Released),
		OriginalLang: str(w.OLang),
		Image:        w.Image.toDomain(),
		Developers:   developersToDomain(w.Developers),
	}
	if w.Length != nil {
		length := *w.Length
		vn.Length = &length
	}
	if w.Rating != nil {
		rating := *w.Rating
		vn.Rating = &rating
	}
	for _, t := range w.Titles {
		title := str(t.Title)
		if title == "" {
			continue
		}
		vn.Titles = append(vn.Titles, Title{Title: title, Main: flag(t.Main)})
	}
	for _, rel := range w.Relations {
		relID := str(rel.ID)
		if relID == "" {
			continue
		}
		vn.Relations = append(vn.Relations, Relation{
			ID:         PrefixedID(relID),
			Title:      str(rel.Title),
			Kind:       RelationKind(str(rel.Relation)),
			Official:   flag(rel.RelationOfficial),
			Image:      rel.Image.toDomain(),
			Developers: developersToDomain(rel.Developers),
		})
	}
	return vn, true
}

// developersToDomain marks every VN-level credit as a developer; the catalog
// only lists developers there. Positions are kept, so a blank first credit
// still reads as no first developer.
func developersToDomain(wire []wireProducer) []Producer {
	if len(wire) == 0 {
		return nil
	}
	out := make([]Producer, 0, len(wire))
	for _, p := range wire {
		out = append(out, Producer{Name: str(p.Name), IsDeveloper: true})
	}
	return out
}

func (w *wireImage) toDomain() *Image {
	if w == nil {
		return nil
	}
	img := &Image{URL: str(w.URL)}
	if w.Sexual != nil {
		img.Sexual = *w.Sexual
	}
	if w.Violence != nil {
		img.Violence = *w.Violence
	}
	return img
}

func (w wireRelease) toDomain() Release {
	rel := Release{
		Title:    str(w.Title),
		Released: str(w.Released),
		Official: flag(w.Official),
	}
	if w.MinAge != nil {
		age := *w.MinAge
		rel.MinAge = &age
	}
	for _, p := range w.Producers {
		name := str(p.Name)
		if name == "" {
			continue
		}
		rel.Producers = append(rel.Producers, Producer{Name: name, IsDeveloper: flag(p.Developer)})
	}
	return rel
}

func (w wireTag) toDomain() (Tag, bool) {
	name := str(w.Name)
	if name == "" {
		return Tag{}, false
	}
	tag := Tag{
		ID:          str(w.ID),
		Name:        name,
		Description: str(w.Description),
		Category:    str(w.Category),
	}
	if w.VNCount != nil {
		tag.VNCount = *w.VNCount
	}
	for _, alias := range w.Aliases {
		if alias = strings.TrimSpace(alias); alias != "" {
			tag.Aliases = append(tag.Aliases, alias)
		}
	}
	return tag, true
}
