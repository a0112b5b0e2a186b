package insights

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sjha2048/worthkeeping.app/internal/models"
)

var reNonWord = regexp.MustCompile(`[^a-z0-9_]+`)

// Keywords extracts the most frequent meaningful tokens from the week's
// entry texts: lowercased, punctuation split, tokens longer than two
// characters, stop words removed, minimum frequency two, stable-sorted by
// descending frequency (first-encountered wins ties), truncated to limit.
func Keywords(weekEntries []models.JournalEntry, limit int) []string {
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}

	counts := make(map[string]int)
	var order []string
	for _, e := range weekEntries {
		text := reNonWord.ReplaceAllString(strings.ToLower(e.Text), " ")
		for _, tok := range strings.Fields(text) {
			if len(tok) <= 2 || stopWords[tok] {
				continue
			}
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	var kept []string
	for _, tok := range order {
		if counts[tok] >= 2 {
			kept = append(kept, tok)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return counts[kept[i]] > counts[kept[j]]
	})
	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
