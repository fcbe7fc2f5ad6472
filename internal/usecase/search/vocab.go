package search

// Vocabulary tables for term extraction and intent classification. These are
// data, not logic: the matchers scan them in declaration order, so new
// entries can be appended without touching the algorithms.

// productKeywords are category nouns a shopper may use.
var productKeywords = []string{
	"soap", "soaps", "cream", "creams", "lotion", "lotions", "serum", "serums",
	"cleanser", "cleansers", "wash", "washes", "mask", "masks", "moisturizer",
	"moisturisers", "shampoo", "shampoos", "conditioner", "conditioners",
	"toner", "toners", "oil", "oils", "scrub", "scrubs", "foundation",
	"foundations", "concealer", "concealers", "mascara", "mascaras",
	"lipstick", "lipsticks", "blush", "blushes", "eyeshadow", "eyeshadows",
	"perfume", "perfumes", "cologne", "colgnes", "makeup", "make-up",
	"skincare", "skin care", "hair", "haircare", "hair care",
}

// brandNames are brand tokens carried by the store.
var brandNames = []string{
	"olay", "maybelline", "clinique", "loreal", "neutrogena", "dove",
	"nivea", "vaseline", "johnson", "palmolive", "colgate", "gillette",
	"revlon", "covergirl", "rimmel", "max factor", "essence", "catrice",
	"nyx", "elf", "milani", "physicians formula", "hard candy", "pop beauty",
	"jordana", "la colors", "black radiance", "imani", "black opal",
	"fashion fair", "sacha", "tiam",
}

// skinConcerns are skin and hair concern phrases.
var skinConcerns = []string{
	"dark", "darkness", "dark spots", "dark circles", "dark knuckles", "dark elbows", "dark knees",
	"acne", "pimples", "blackheads", "whiteheads", "breakouts",
	"wrinkles", "fine lines", "aging", "anti-aging", "anti aging",
	"dry", "dryness", "dehydrated", "moisture", "hydrating",
	"oily", "oiliness", "greasy", "shiny",
	"sensitive", "irritation", "redness", "inflammation",
	"hyperpigmentation", "pigmentation", "spots", "blemishes",
	"scars", "scarring", "stretch marks",
	"large pores", "pores", "pore minimizing",
	"dull", "dullness", "brightening", "brighten", "glow",
	"uneven", "uneven skin tone", "skin tone", "complexion",
	"rough", "roughness", "smooth", "smoothing",
	"firm", "firming", "tight", "tightening",
	"clear", "clearing", "clarifying",
}

// termStopwords are filler words excluded from the term-extraction fallback.
var termStopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "need": {},
	"want": {}, "looking": {}, "product": {}, "products": {},
}

// followUpWords mark a message as a continuation of a product conversation.
var followUpWords = []string{
	"other", "others", "more", "different", "types", "kinds", "varieties",
	"options", "alternatives", "similar", "like this", "same",
}

// simpleResponses are short acknowledgements that carry no product intent.
var simpleResponses = map[string]struct{}{
	"yes": {}, "no": {}, "okay": {}, "ok": {}, "thanks": {},
	"thank you": {}, "sure": {}, "maybe": {},
}

// vaguePhrases are requests too unspecific to search on.
var vaguePhrases = []string{
	"i need something", "help me", "i need help", "what do you have", "show me",
}

// singleWordAllowList are lone tokens that are already covered by the intent
// pattern and must not be treated as unknown brand codes.
var singleWordAllowList = map[string]struct{}{
	"soap": {}, "soaps": {}, "cream": {}, "creams": {}, "lotion": {},
	"lotions": {}, "buy": {}, "order": {}, "price": {}, "skincare": {},
	"niacinamide": {}, "tiam": {}, "olay": {}, "clinique": {},
	"maybelline": {}, "loreal": {}, "neutrogena": {}, "dove": {},
	"nivea": {}, "vaseline": {}, "johnson": {}, "palmolive": {},
	"colgate": {}, "gillette": {}, "revlon": {}, "covergirl": {},
	"rimmel": {}, "essence": {}, "catrice": {}, "nyx": {}, "elf": {},
	"milani": {}, "jordana": {}, "imani": {},
}
