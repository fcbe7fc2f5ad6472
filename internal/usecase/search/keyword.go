package search

import (
	"sort"
	"strings"

	"github.com/mamatega/assistant/internal/domain"
)

const (
	exactPhraseScore = 1.0
	titleWordScore   = 0.5
	descTagScore     = 0.3
	minTokenLen      = 3
)

// KeywordSearch runs a scored substring match across title, description, and
// tags. Scoring is additive across passes: a product matching two query
// tokens outranks one matching a single token, without a formal TF-IDF
// model. Results are deduplicated by title, first occurrence wins.
func KeywordSearch(query string, catalog []domain.Product, maxResults int) []domain.Product {
	queryClean := strings.ToLower(query)

	var tokens []string
	for _, w := range strings.Fields(queryClean) {
		if len(w) >= minTokenLen {
			tokens = append(tokens, w)
		}
	}

	var scored []domain.ScoredProduct
	index := make(map[string]int) // title -> position in scored

	add := func(p domain.Product, score float64, match domain.MatchType) {
		if i, ok := index[p.Title]; ok {
			scored[i].Score += score
			return
		}
		index[p.Title] = len(scored)
		scored = append(scored, domain.ScoredProduct{Product: p, Score: score, Match: match})
	}

	// Pass 1: whole query as a title substring.
	for _, p := range catalog {
		if strings.Contains(strings.ToLower(p.Title), queryClean) {
			add(p, exactPhraseScore, domain.MatchExact)
		}
	}

	// Pass 2: individual tokens against titles.
	for _, token := range tokens {
		for _, p := range catalog {
			if strings.Contains(strings.ToLower(p.Title), token) {
				add(p, titleWordScore, domain.MatchWord)
			}
		}
	}

	// Pass 3: tokens against description text and tags.
	for _, p := range catalog {
		description := strings.ToLower(p.Description)
		for _, token := range tokens {
			if strings.Contains(description, token) || tagsContain(p.Tags, token) {
				add(p, descTagScore, domain.MatchDescription)
			}
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	results := make([]domain.Product, len(scored))
	for i, s := range scored {
		results[i] = s.Product
	}
	return results
}

func tagsContain(tags []string, token string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), token) {
			return true
		}
	}
	return false
}
