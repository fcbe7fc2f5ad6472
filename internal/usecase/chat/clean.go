package chat

import (
	"regexp"
	"strings"
)

var (
	bareNumberLine = regexp.MustCompile(`^\s*\d+\.?\s*$`)
	listMarker     = regexp.MustCompile(`^\s*(\d+[.)]|[-•])\s*`)
	greetingPrefix = regexp.MustCompile(`(?i)^(hi|hello|hey|greetings)[!,.\s-]*`)
	therePrefix    = regexp.MustCompile(`(?i)^(there!|there,|there\.|there\s+)`)
)

// cleanReply strips list formatting the model was told not to produce, and
// drops repeated greetings on every turn after the first.
func cleanReply(reply string, isFirstMessage bool) string {
	lines := strings.Split(reply, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if bareNumberLine.MatchString(line) {
			continue
		}
		kept = append(kept, listMarker.ReplaceAllString(line, ""))
	}
	cleaned := strings.Join(kept, "\n")
	if !isFirstMessage {
		cleaned = greetingPrefix.ReplaceAllString(cleaned, "")
		cleaned = therePrefix.ReplaceAllString(cleaned, "")
	}
	return strings.TrimSpace(cleaned)
}
