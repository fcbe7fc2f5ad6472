package search

import "strings"

const maxFallbackTerms = 3

// ExtractTerms pulls candidate product, brand, and concern keywords out of
// free text. Vocabulary entries are collected in vocabulary scan order, not
// input order. When no vocabulary entry matches, up to three non-stopword
// tokens of length >= 3 are taken instead.
func ExtractTerms(query string) []string {
	textClean := strings.ToLower(query)
	var terms []string

	for _, vocab := range [][]string{productKeywords, brandNames, skinConcerns} {
		for _, entry := range vocab {
			if strings.Contains(textClean, entry) {
				terms = append(terms, entry)
			}
		}
	}
	if len(terms) > 0 {
		return terms
	}

	for _, word := range strings.Fields(textClean) {
		if len(word) < 3 {
			continue
		}
		if _, stop := termStopwords[word]; stop {
			continue
		}
		terms = append(terms, word)
		if len(terms) == maxFallbackTerms {
			break
		}
	}
	return terms
}
