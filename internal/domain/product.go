package domain

// Product is a single catalog entry. Records are loaded once at startup and
// never mutated afterwards; every layer treats them as read-only.
type Product struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Handle      string    `json:"handle,omitempty"`
	Embedding   []float32 `json:"embedding,omitempty"`
}

// Key returns the identity used to collapse duplicates: the handle when
// present, otherwise the title.
func (p Product) Key() string {
	if p.Handle != "" {
		return p.Handle
	}
	return p.Title
}

// MatchType classifies how a product matched a query.
type MatchType string

// Match types, roughly ordered by confidence.
const (
	MatchExact         MatchType = "exact"
	MatchWord          MatchType = "word"
	MatchDescription   MatchType = "description"
	MatchPrefix        MatchType = "prefix"
	MatchBrandPrefix   MatchType = "brand_prefix"
	MatchContains      MatchType = "contains"
	MatchBrandContains MatchType = "brand_contains"
	MatchWordPrefix    MatchType = "word_prefix"
	MatchSemantic      MatchType = "semantic"
)

// ScoredProduct pairs a product with a relevance score for one search
// invocation. Never persisted.
type ScoredProduct struct {
	Product Product
	Score   float64
	Match   MatchType
}

// MergeProducts concatenates result lists keeping only the first occurrence
// of each dedup key. Keys compare exactly, so products whose keys differ
// only by case stay distinct. Relative order within and across sources is
// preserved. Merging a list with itself returns the same list.
func MergeProducts(sources ...[]Product) []Product {
	seen := make(map[string]struct{})
	var merged []Product
	for _, src := range sources {
		for _, p := range src {
			key := p.Key()
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, p)
		}
	}
	return merged
}
