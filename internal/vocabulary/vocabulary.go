package vocabulary

import (
	"strings"
)

// Vocabulary is an ordered set of unique lowercase terms.
type Vocabulary []string

// New builds a Vocabulary from terms. Terms are trimmed and lowercased; blanks and
// duplicates are dropped and the first occurrence keeps its position.
func New(terms ...string) Vocabulary {
	v := make(Vocabulary, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		t = normalizeTerm(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		v = append(v, t)
	}
	return v
}

// Union returns a new Vocabulary holding v followed by the terms of other not already in v.
func (v Vocabulary) Union(other ...string) Vocabulary {
	all := make([]string, 0, len(v)+len(other))
	all = append(all, v...)
	all = append(all, other...)
	return New(all...)
}

// Terms returns a copy of the terms.
func (v Vocabulary) Terms() []string {
	out := make([]string, len(v))
	copy(out, v)
	return out
}

// Present returns the terms contained in text, in vocabulary order.
// Matching is a case-insensitive substring test.
func (v Vocabulary) Present(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, len(v))
	for _, t := range v {
		if strings.Contains(lower, t) {
			found = append(found, t)
		}
	}
	return found
}

func normalizeTerm(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
