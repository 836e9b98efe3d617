package scoring

import "github.com/jonathan/fitscore/internal/types"

// Default resume section weights
const (
	keywordsWeight    = 0.40
	formattingWeight  = 0.20
	structureWeight   = 0.25
	readabilityWeight = 0.15
)

// DefaultResumeWeights returns the default weights for resume scoring.
func DefaultResumeWeights() []Weight {
	return []Weight{
		{Name: types.SectionKeywords, Value: keywordsWeight},
		{Name: types.SectionFormatting, Value: formattingWeight},
		{Name: types.SectionStructure, Value: structureWeight},
		{Name: types.SectionReadability, Value: readabilityWeight},
	}
}
