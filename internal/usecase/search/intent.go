package search

import (
	"regexp"
	"strings"
	"unicode"
)

// productIntentPattern is the broad product/brand/concern alternation used as
// the final intent test. Kept as data alongside the vocabulary tables.
var productIntentPattern = regexp.MustCompile(`(?i)\b(soap|soaps|cream|creams|lotion|lotions|serum|serums|cleanser|cleansers|wash|washes|mask|masks|moisturizer|moisturiser|moisturizers|moisturisers|shampoo|shampoos|conditioner|conditioners|toner|toners|oil|oils|scrub|scrubs|foundation|foundations|concealer|concealers|mascara|mascaras|lipstick|lipsticks|blush|blushes|eyeshadow|eyeshadows|perfume|perfumes|cologne|colgnes|makeup|make-up|skincare|skin care|hair|haircare|hair care|product|products|buy|order|price|niacinamide|sensitive skin|wrinkle|wrinkles|acne|brighten|brightening|dark spot|spots|hyperpigmentation|fragrance|fragrances|brand|brands|olay|maybelline|clinique|loreal|neutrogena|dove|nivea|vaseline|johnson|palmolive|colgate|gillette|revlon|covergirl|rimmel|max factor|essence|catrice|nyx|elf|milani|physicians formula|hard candy|pop beauty|jordana|la colors|black radiance|imani|black opal|fashion fair|sacha|tiam)\b`)

// IsProductIntent decides whether a chat message should trigger product
// search at all. It is a cheap heuristic gate, applied rule by rule with the
// first match deciding; it deliberately favors false positives on ambiguous
// short tokens (a stray search is cheaper than a missed one).
func IsProductIntent(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	textClean := strings.ToLower(trimmed)

	// Follow-ups continue an existing product conversation.
	for _, word := range followUpWords {
		if strings.Contains(textClean, word) {
			return true
		}
	}

	// "yes i need ..." is an affirmative continuation of a product ask.
	if strings.Contains(textClean, "yes") && strings.Contains(textClean, "need") {
		return true
	}

	words := strings.Fields(textClean)

	if len(words) <= 2 {
		if _, ok := simpleResponses[textClean]; ok {
			return false
		}
	}

	// A lone capitalized token that we don't recognize may be a brand code
	// the shopper typed from the label ("TIAM", "SVR").
	if len(words) == 1 && startsUpper(trimmed) {
		if _, known := singleWordAllowList[textClean]; !known {
			n := len([]rune(textClean))
			return n >= 2 && n <= 4
		}
	}

	for _, phrase := range vaguePhrases {
		if strings.Contains(textClean, phrase) {
			return false
		}
	}

	return productIntentPattern.MatchString(textClean)
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
