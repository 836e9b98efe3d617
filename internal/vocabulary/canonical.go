// Package vocabulary provides the term lists the scoring engine tests documents against.
package vocabulary

// canonicalTerms is the fixed domain vocabulary for resumes scored without a job description.
// Order matters: it decides gap ordering and truncation.
var canonicalTerms = []string{
	"procurement",
	"supply chain",
	"logistics",
	"inventory",
	"sap",
	"erp",
	"vendor management",
	"sourcing",
	"negotiation",
	"purchasing",
	"warehouse",
	"forecasting",
	"contract management",
	"tendering",
	"compliance",
	"budgeting",
	"excel",
	"stakeholder management",
	"distribution",
	"quality assurance",
}

// skillTerms is the skill vocabulary the catalog ranker extracts from profiles and job postings.
var skillTerms = []string{
	"procurement",
	"logistics",
	"inventory",
	"sap",
	"erp",
	"excel",
	"negotiation",
	"forecasting",
	"budgeting",
	"accounting",
	"quickbooks",
	"sql",
	"python",
	"data analysis",
	"project management",
	"customer service",
	"sales",
	"marketing",
	"communication",
	"leadership",
}

// sectionLabels are the canonical resume section headings, in report order.
var sectionLabels = []string{
	"experience",
	"education",
	"skills",
	"summary",
	"objective",
}

// stopwords are dropped when mining salient tokens from a job description.
var stopwords = []string{
	"about", "also", "been", "being", "both", "each", "from", "have", "into",
	"more", "most", "must", "only", "other", "over", "such", "than", "that",
	"their", "them", "then", "there", "these", "they", "this", "those", "very",
	"well", "were", "what", "when", "where", "which", "while", "will", "with",
	"within", "would", "your", "should", "could", "able", "join",
}

// Canonical returns the canonical domain vocabulary.
func Canonical() Vocabulary {
	return New(canonicalTerms...)
}

// Skills returns the default skill vocabulary used by the ranker.
func Skills() Vocabulary {
	return New(skillTerms...)
}

// SectionLabels returns the canonical section labels in order.
func SectionLabels() []string {
	out := make([]string, len(sectionLabels))
	copy(out, sectionLabels)
	return out
}

// Stopwords returns the default stopword set.
func Stopwords() map[string]bool {
	return StopSet(stopwords...)
}

// StopSet builds a lowercase lookup set from words.
func StopSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		w = normalizeTerm(w)
		if w != "" {
			set[w] = true
		}
	}
	return set
}
