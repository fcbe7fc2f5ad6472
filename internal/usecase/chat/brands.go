package chat

import (
	"regexp"
	"strings"
)

// brandListPatterns detect "what brands do you carry" style questions.
var brandListPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)list\s*\d*\s*brands`),
	regexp.MustCompile(`(?i)show me all brands`),
	regexp.MustCompile(`(?i)what brands do you (carry|have|sell|stock|offer)`),
	regexp.MustCompile(`(?i)brands (available|in stock|you have|you carry|you sell)`),
	regexp.MustCompile(`(?i)brands for [a-z ]+`),
	regexp.MustCompile(`(?i)brands\?`),
	regexp.MustCompile(`(?i)brand list`),
	regexp.MustCompile(`(?i)brands are there`),
	regexp.MustCompile(`(?i)brands you stock`),
	regexp.MustCompile(`(?i)brands you offer`),
	regexp.MustCompile(`(?i)brands you recommend`),
	regexp.MustCompile(`(?i)what brands`),
}

// brandCarryPattern extracts the brand from "do you carry X" questions.
var brandCarryPattern = regexp.MustCompile(`(?i)(?:do you (?:carry|sell|stock|have)\s+)([a-z0-9&+.'\- ]+)`)

// bareBrandToken matches a prompt that is a single lower-cased word, the
// typical shape of a bare brand-name query.
var bareBrandToken = regexp.MustCompile(`^[a-z]{2,}$`)

func isBrandListQuery(text string) bool {
	for _, p := range brandListPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// brandCarryQuery returns the asked-about brand, lower-cased, or "".
func brandCarryQuery(text string) string {
	m := brandCarryPattern.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(m[1]))
}

// brandKnown reports whether the asked brand matches any catalog brand by
// equality or substring in either direction.
func brandKnown(brand string, catalogBrands []string) bool {
	for _, b := range catalogBrands {
		lb := strings.ToLower(b)
		if lb == brand || strings.Contains(lb, brand) || strings.Contains(brand, lb) {
			return true
		}
	}
	return false
}

// titleCase capitalizes the first letter for display.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
