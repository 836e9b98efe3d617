package types

// Section identifiers for the resume feature vector
const (
	SectionKeywords    = "keywords"
	SectionFormatting  = "formatting"
	SectionStructure   = "structure"
	SectionReadability = "readability"
)

// FeatureVector holds the named sub-scores extracted from a document.
// Every score is in [0,100]. Matched and Missing belong to the keyword sub-score.
type FeatureVector struct {
	Keywords    int      `json:"keywords"`
	Formatting  int      `json:"formatting"`
	Structure   int      `json:"structure"`
	Readability int      `json:"readability"`
	Matched     []string `json:"matched"`
	Missing     []string `json:"missing"`
}

// Sections returns the sub-scores keyed by section identifier.
func (fv FeatureVector) Sections() map[string]float64 {
	return map[string]float64{
		SectionKeywords:    float64(fv.Keywords),
		SectionFormatting:  float64(fv.Formatting),
		SectionStructure:   float64(fv.Structure),
		SectionReadability: float64(fv.Readability),
	}
}

// CompositeScore is the result of scoring a resume.
type CompositeScore struct {
	Overall         int           `json:"overall"`
	Sections        FeatureVector `json:"sections"`
	Recommendations []string      `json:"recommendations"`
}
