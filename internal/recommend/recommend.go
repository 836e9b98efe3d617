// Package recommend turns score bands and gaps into advisory text.
package recommend

import "strings"

// Band thresholds
const (
	LowOverallThreshold   = 60
	LowKeywordRatioCutoff = 0.5
)

// Fixed advisory text
const (
	MsgLowOverall       = "Your resume needs optimization to pass ATS screening. Address the items below first."
	MsgKeywordsMirror   = "Add more keywords from the job description to your experience and skills sections."
	MsgKeywordsContext  = "Use exact terms from the posting, such as tool names and certifications, in context rather than in a list."
	missingSectionsHead = "Add missing sections: "
	MsgStandardHeadings = "Use standard section headings such as Experience, Education and Skills."
	MsgDualFormat       = "Save your resume in both PDF and Word formats for different ATS systems."
	MsgQuantify         = "Quantify achievements with numbers, percentages or amounts where possible."
)

// Input is what the generator needs from a scored document.
type Input struct {
	Overall         int
	KeywordRatio    float64
	MissingSections []string
}

// Generate assembles the recommendations for in. Output depends only on in.
func Generate(in Input) []string {
	recs := make([]string, 0, 7)

	if in.Overall < LowOverallThreshold {
		recs = append(recs, MsgLowOverall)
	}

	if in.KeywordRatio < LowKeywordRatioCutoff {
		recs = append(recs, MsgKeywordsMirror, MsgKeywordsContext)
	}

	if len(in.MissingSections) > 0 {
		recs = append(recs, MissingSections(in.MissingSections))
	}

	return append(recs, Tail()...)
}

// MissingSections renders the bullet naming absent sections.
func MissingSections(sections []string) string {
	return missingSectionsHead + strings.Join(sections, ", ")
}

// Tail returns the best-practice bullets appended to every result.
func Tail() []string {
	return []string{MsgStandardHeadings, MsgDualFormat, MsgQuantify}
}
