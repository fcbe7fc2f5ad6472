package chat

import "strings"

type suggestionRule struct {
	trigger     []string
	suggestions []string
}

// suggestionRules map query substrings to follow-up chips shown under the
// answer. First matching rule wins.
var suggestionRules = []suggestionRule{
	{[]string{"soap"}, []string{"bar soap", "liquid soap", "moisturizing soap", "fragrance-free soap", "What ingredients does this soap have?"}},
	{[]string{"brighten", "brightening"}, []string{"skin brightening creams", "skin brightening serums", "best products for skin brightening", "What ingredients help with skin brightening?"}},
	{[]string{"order", "buy"}, []string{"What payment methods do you accept?", "How long does delivery take?", "Can I track my order?", "Do you deliver nationwide?"}},
	{[]string{"delivery"}, []string{"What are your delivery options?", "How long does delivery take?", "Do you deliver nationwide?", "Can I track my delivery?"}},
	{[]string{"brand"}, []string{"Do you sell this brand?", "Show me all brands", "Popular brands", "Best-selling brands"}},
	{[]string{"skincare"}, []string{"best skincare for oily skin", "skincare for dry skin", "skincare routine", "What ingredients does this skincare have?"}},
	{[]string{"makeup", "best makeup brands"}, []string{"foundation", "concealer", "mascara", "lipstick", "blush", "eyeshadow"}},
	{[]string{"foundation"}, []string{"liquid foundation", "powder foundation", "best foundation for oily skin", "best foundation for dry skin"}},
	{[]string{"concealer"}, []string{"best concealer for dark circles", "liquid concealer", "stick concealer", "How do I apply concealer?"}},
}

var defaultSuggestions = []string{
	"What are the best products for skin brightening?",
	"What are your store hours?",
	"How can I order?",
	"Do you sell this brand?",
	"What ingredients does this product have?",
	"What are your delivery options?",
}

// Suggestions returns follow-up prompts tailored to the query.
func Suggestions(query string) []string {
	q := strings.ToLower(query)
	for _, rule := range suggestionRules {
		for _, trigger := range rule.trigger {
			if strings.Contains(q, trigger) {
				return rule.suggestions
			}
		}
	}
	return defaultSuggestions
}
