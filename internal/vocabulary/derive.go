package vocabulary

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultTopTokens is how many salient description tokens join the canonical vocabulary.
const DefaultTopTokens = 20

// minTokenLength is the shortest token kept; shorter ones carry too little signal.
const minTokenLength = 4

// Tokens lowercases text, strips punctuation and splits on whitespace.
// Punctuation is removed rather than replaced, so "node.js" becomes "nodejs".
func Tokens(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Fields(b.String())
}

// SalientTokens returns the topN most frequent tokens of text, skipping stopwords and tokens
// of three characters or fewer. Ties keep first-occurrence order.
func SalientTokens(text string, topN int, stop map[string]bool) []string {
	if topN <= 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, tok := range Tokens(text) {
		if utf8.RuneCountInString(tok) < minTokenLength || stop[tok] {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topN {
		order = order[:topN]
	}
	return order
}

// Derive returns canonical extended with the salient tokens of description.
// A blank description yields canonical unchanged.
func Derive(canonical Vocabulary, description string, topN int, stop map[string]bool) Vocabulary {
	if strings.TrimSpace(description) == "" {
		return New(canonical...)
	}
	return canonical.Union(SalientTokens(description, topN, stop)...)
}
