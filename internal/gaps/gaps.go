// Package gaps computes which vocabulary terms a document does not contain.
package gaps

// DefaultLimit caps the missing-keyword list of a resume.
const DefaultLimit = 10

// Missing returns the vocabulary terms absent from matched, in vocabulary order,
// truncated to the first limit entries. A limit of zero or less means no cap.
// The result is never nil.
func Missing(vocab []string, matched []string, limit int) []string {
	have := make(map[string]bool, len(matched))
	for _, m := range matched {
		have[m] = true
	}

	missing := make([]string, 0)
	for _, term := range vocab {
		if have[term] {
			continue
		}
		missing = append(missing, term)
		if limit > 0 && len(missing) == limit {
			break
		}
	}
	return missing
}

// Intersect returns the terms of vocab that also appear in other, in vocab order.
func Intersect(vocab []string, other []string) []string {
	in := make(map[string]bool, len(other))
	for _, o := range other {
		in[o] = true
	}

	out := make([]string, 0)
	for _, term := range vocab {
		if in[term] {
			out = append(out, term)
		}
	}
	return out
}

// Ratio returns |matched| / |vocab|, or 0 for an empty vocabulary.
func Ratio(vocab []string, matched []string) float64 {
	if len(vocab) == 0 {
		return 0
	}
	return float64(len(matched)) / float64(len(vocab))
}
