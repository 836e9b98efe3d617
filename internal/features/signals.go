package features

import (
	"math"
	"strings"
	"unicode"

	"github.com/jonathan/fitscore/internal/scoring"
)

// Formatting penalties
const (
	disallowedCharPenalty = 20
	noParagraphPenalty    = 10
)

// allowedPunctuation is the punctuation an ATS parser handles reliably.
const allowedPunctuation = ".,;:!?'\"()[]{}-/&%$#@+*•|"

// KeywordScore returns round(100 * matched / vocabulary).
func (a *Analysis) KeywordScore() int {
	if len(a.Vocabulary) == 0 {
		return 0
	}
	return scoring.ClampInt(int(math.Round(100 * float64(len(a.Matched)) / float64(len(a.Vocabulary)))))
}

// StructureScore awards the section increment for every label present, capped at 100.
func (a *Analysis) StructureScore() int {
	return StructureScore(a.Lower, a.labels, a.increment)
}

// MissingSections returns the section labels absent from the text, in label order.
func (a *Analysis) MissingSections() []string {
	missing := make([]string, 0)
	for _, label := range a.labels {
		if !strings.Contains(a.Lower, strings.ToLower(label)) {
			missing = append(missing, label)
		}
	}
	return missing
}

// IsAllowedRune reports whether r is safe for ATS parsing: letters, digits, underscore,
// whitespace and a fixed punctuation set.
func IsAllowedRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
		return true
	}
	return strings.ContainsRune(allowedPunctuation, r)
}

// FormattingScore starts at 100, subtracts 20 when any character is outside the allow-list
// and 10 when the text has no blank-line paragraph break. The floor is 0.
func FormattingScore(text string) int {
	score := scoring.MaxScore
	if strings.IndexFunc(text, func(r rune) bool { return !IsAllowedRune(r) }) >= 0 {
		score -= disallowedCharPenalty
	}
	if !strings.Contains(normalizeNewlines(text), "\n\n") {
		score -= noParagraphPenalty
	}
	return scoring.ClampInt(score)
}

// StructureScore adds increment for each label found case-insensitively in text, capped at 100.
func StructureScore(text string, labels []string, increment int) int {
	lower := strings.ToLower(text)
	score := 0
	for _, label := range labels {
		if strings.Contains(lower, strings.ToLower(label)) {
			score += increment
		}
	}
	return scoring.ClampInt(score)
}

// ReadabilityScore bands the average number of words per sentence.
// Only words inside terminated sentences count; a trailing fragment is ignored.
// Text without a terminated sentence scores 0.
func ReadabilityScore(text string) int {
	sentences := CountSentences(text)
	if sentences == 0 {
		return 0
	}

	end := strings.LastIndexAny(text, ".!?")
	avg := float64(len(strings.Fields(text[:end+1]))) / float64(sentences)
	switch {
	case avg >= 15 && avg <= 20:
		return 100
	case avg >= 10 && avg <= 25:
		return 80
	case avg >= 5 && avg <= 30:
		return 60
	default:
		return 40
	}
}

// CountSentences counts non-blank runs of text closed by '.', '!' or '?'.
func CountSentences(text string) int {
	count := 0
	hasContent := false
	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?':
			if hasContent {
				count++
			}
			hasContent = false
		case !unicode.IsSpace(r):
			hasContent = true
		}
	}
	return count
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
