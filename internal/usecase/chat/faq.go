package chat

import "regexp"

// faqEntry pairs a question pattern with a canned answer, so common store
// questions are answered without an LLM turn.
type faqEntry struct {
	pattern *regexp.Regexp
	answer  string
}

var faqEntries = []faqEntry{
	{
		regexp.MustCompile(`(?i)store hours|open|close|when.*open|when.*close`),
		"🕒 Our store hours are: Monday–Saturday: 8:00 AM–8:00 PM, Sunday: 1:00 PM–7:00 PM.",
	},
	{
		regexp.MustCompile(`(?i)where.*(located|address|find you)`),
		"📍 We are located at Tejuosho Ultra Modern Shopping Centre, Mosque Plaza, Yaba, Lagos.",
	},
	{
		regexp.MustCompile(`(?i)deliver|shipping|nationwide|outside lagos`),
		"🚚 Yes, we deliver nationwide! Delivery times and costs depend on your location and will be calculated at checkout.",
	},
	{
		regexp.MustCompile(`(?i)return|refund|exchange`),
		"🔄 We do not offer returns unless there's a product issue. Please contact us if you have a problem with your order.",
	},
}

// faqAnswer returns a canned answer for the text, or "".
func faqAnswer(text string) string {
	if text == "" {
		return ""
	}
	for _, e := range faqEntries {
		if e.pattern.MatchString(text) {
			return e.answer
		}
	}
	return ""
}
