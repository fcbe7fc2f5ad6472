package search

import (
	"sort"
	"strings"

	"github.com/mamatega/assistant/internal/domain"
)

// fuzzyPrefixLen is how many leading characters form the match prefix.
const fuzzyPrefixLen = 3

// FuzzySearch matches a query against product titles and brands by prefix
// and substring. Scoring is a coarse rule ladder, not a continuous metric:
// the first rule that fires decides the score. Ties keep catalog order, so
// output is deterministic for a fixed catalog.
func FuzzySearch(query string, catalog []domain.Product, maxResults int) []domain.Product {
	queryClean := strings.ToLower(strings.TrimSpace(query))
	runes := []rune(queryClean)
	if len(runes) < 2 {
		return nil
	}

	// Slice runes so a multibyte query never produces a broken prefix.
	prefix := queryClean
	if len(runes) > fuzzyPrefixLen {
		prefix = string(runes[:fuzzyPrefixLen])
	}

	var scored []domain.ScoredProduct
	for _, p := range catalog {
		title := strings.ToLower(p.Title)
		brand := strings.ToLower(p.Brand)

		switch {
		case strings.HasPrefix(title, prefix):
			scored = append(scored, domain.ScoredProduct{Product: p, Score: 1.0, Match: domain.MatchPrefix})
		case brand != "" && strings.HasPrefix(brand, prefix):
			scored = append(scored, domain.ScoredProduct{Product: p, Score: 0.9, Match: domain.MatchBrandPrefix})
		case strings.Contains(title, queryClean):
			scored = append(scored, domain.ScoredProduct{Product: p, Score: 0.8, Match: domain.MatchContains})
		case brand != "" && strings.Contains(brand, queryClean):
			scored = append(scored, domain.ScoredProduct{Product: p, Score: 0.7, Match: domain.MatchBrandContains})
		case titleWordHasPrefix(title, prefix):
			scored = append(scored, domain.ScoredProduct{Product: p, Score: 0.6, Match: domain.MatchWordPrefix})
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

func titleWordHasPrefix(title, prefix string) bool {
	for _, word := range strings.Fields(title) {
		if strings.HasPrefix(word, prefix) {
			return true
		}
	}
	return false
}
