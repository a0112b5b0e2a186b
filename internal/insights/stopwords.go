package insights

// stopWords is the fixed English stop-word list used by keyword extraction.
// Two-letter words never reach the check (tokens of length <= 2 are dropped
// first), so only longer common words are listed.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"day": true, "get": true, "has": true, "him": true, "his": true,
	"how": true, "man": true, "new": true, "now": true, "old": true,
	"see": true, "two": true, "way": true, "who": true, "did": true,
	"its": true, "let": true, "put": true, "say": true, "she": true,
	"too": true, "use": true, "that": true, "with": true, "have": true,
	"this": true, "will": true, "your": true, "from": true, "they": true,
	"know": true, "want": true, "been": true, "good": true, "much": true,
	"some": true, "time": true, "very": true, "when": true, "come": true,
	"here": true, "just": true, "like": true, "long": true, "make": true,
	"many": true, "over": true, "such": true, "take": true, "than": true,
	"them": true, "well": true, "were": true, "what": true, "about": true,
	"after": true, "also": true, "back": true, "because": true, "could": true,
	"first": true, "into": true, "more": true, "most": true, "other": true,
	"then": true, "these": true, "thing": true, "think": true, "there": true,
	"their": true, "where": true, "which": true, "while": true, "would": true,
}
