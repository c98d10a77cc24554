package matching

import (
	"vnrename/internal/foldername"
	"vnrename/internal/textutil"
	"vnrename/internal/vndb"
)

// neutralScore stands in for a dimension that cannot be compared.
const neutralScore = 0.5

// Candidate is a catalog entry with its match confidence.
type Candidate struct {
	VN            vndb.VN
	Confidence    float64
	TitleScore    float64
	DateScore     float64
	ProducerScore float64
}

// Score computes the confidence of vn as a match for query under hints. The
// result is the unweighted mean of the title, date, and producer scores, each
// in [0,1].
func Score(query string, hints foldername.Hints, vn vndb.VN) Candidate {
	title := titleScore(query, vn)
	date := dateScore(hints.ExpectedDate, vn.Released)
	producer := neutralScore
	if dev, ok := vn.FirstDeveloper(); ok && hints.HasProducer() {
		producer = textutil.Similarity(textutil.AlphanumericKey(hints.ExpectedProducer), textutil.AlphanumericKey(dev))
	}
	return Candidate{
		VN:            vn,
		Confidence:    (title + date + producer) / 3,
		TitleScore:    title,
		DateScore:     date,
		ProducerScore: producer,
	}
}

// titleScore is the best case-insensitive similarity between query and the
// default title or any localized title.
func titleScore(query string, vn vndb.VN) float64 {
	best := textutil.FoldedSimilarity(query, vn.Title)
	for _, t := range vn.Titles {
		if sim := textutil.FoldedSimilarity(query, t.Title); sim > best {
			best = sim
		}
	}
	return best
}

// dateScore compares YYMMDD strings. Catalog dates that are partial or "TBA"
// cannot be converted and count as absent.
func dateScore(expected, released string) float64 {
	if expected == "" || released == "" {
		return neutralScore
	}
	short, ok := vndb.ShortDate(released)
	if !ok {
		return neutralScore
	}
	return textutil.Similarity(expected, short)
}
