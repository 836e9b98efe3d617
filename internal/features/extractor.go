// Package features extracts keyword, formatting, structure and readability signals from free text.
package features

import (
	"strings"

	"github.com/jonathan/fitscore/internal/gaps"
	"github.com/jonathan/fitscore/internal/scoring"
	"github.com/jonathan/fitscore/internal/types"
	"github.com/jonathan/fitscore/internal/vocabulary"
)

// DefaultSectionIncrement is the structure points awarded per section label found.
const DefaultSectionIncrement = 20

// Config controls vocabulary and section handling. The zero value is not usable; start from DefaultConfig.
type Config struct {
	Canonical        vocabulary.Vocabulary
	Stopwords        map[string]bool
	TopTokens        int
	SectionLabels    []string
	SectionIncrement int
	MissingLimit     int
}

// DefaultConfig returns the canonical vocabulary and the stock thresholds.
func DefaultConfig() Config {
	return Config{
		Canonical:        vocabulary.Canonical(),
		Stopwords:        vocabulary.Stopwords(),
		TopTokens:        vocabulary.DefaultTopTokens,
		SectionLabels:    vocabulary.SectionLabels(),
		SectionIncrement: DefaultSectionIncrement,
		MissingLimit:     gaps.DefaultLimit,
	}
}

// Extractor turns resume text into a FeatureVector. It is stateless and safe for concurrent use.
type Extractor struct {
	cfg Config
}

// NewExtractor creates an Extractor. Empty config fields fall back to their defaults.
func NewExtractor(cfg Config) *Extractor {
	def := DefaultConfig()
	if len(cfg.Canonical) == 0 {
		cfg.Canonical = def.Canonical
	}
	if cfg.Stopwords == nil {
		cfg.Stopwords = def.Stopwords
	}
	if cfg.TopTokens <= 0 {
		cfg.TopTokens = def.TopTokens
	}
	if len(cfg.SectionLabels) == 0 {
		cfg.SectionLabels = def.SectionLabels
	}
	if cfg.SectionIncrement <= 0 {
		cfg.SectionIncrement = def.SectionIncrement
	}
	if cfg.MissingLimit <= 0 {
		cfg.MissingLimit = def.MissingLimit
	}
	return &Extractor{cfg: cfg}
}

// Analysis is the preprocessed view of one document shared by the sub-score extractors.
type Analysis struct {
	Text       string
	Lower      string
	Vocabulary vocabulary.Vocabulary
	Matched    []string

	labels    []string
	increment int
}

// Analyze validates text and resolves its vocabulary and matched terms.
// A blank companion falls back to the canonical vocabulary.
func (x *Extractor) Analyze(text, companion string) (*Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "document text is empty"}
	}

	vocab := vocabulary.Derive(x.cfg.Canonical, companion, x.cfg.TopTokens, x.cfg.Stopwords)
	lower := strings.ToLower(text)

	return &Analysis{
		Text:       text,
		Lower:      lower,
		Vocabulary: vocab,
		Matched:    vocab.Present(lower),
		labels:     x.cfg.SectionLabels,
		increment:  x.cfg.SectionIncrement,
	}, nil
}

// Extract computes the full FeatureVector for text.
func (x *Extractor) Extract(text, companion string) (types.FeatureVector, error) {
	a, err := x.Analyze(text, companion)
	if err != nil {
		return types.FeatureVector{}, err
	}
	return x.Vector(a), nil
}

// Vector assembles the FeatureVector of an analysis.
func (x *Extractor) Vector(a *Analysis) types.FeatureVector {
	return types.FeatureVector{
		Keywords:    a.KeywordScore(),
		Formatting:  FormattingScore(a.Text),
		Structure:   a.StructureScore(),
		Readability: ReadabilityScore(a.Text),
		Matched:     append([]string{}, a.Matched...),
		Missing:     gaps.Missing(a.Vocabulary, a.Matched, x.cfg.MissingLimit),
	}
}

// Extractors returns the resume sub-scores as named extractors for a scoring engine.
func (x *Extractor) Extractors() []scoring.Extractor[*Analysis] {
	return []scoring.Extractor[*Analysis]{
		{
			Name:  types.SectionKeywords,
			Label: "Keyword coverage",
			Score: func(a *Analysis) float64 { return float64(a.KeywordScore()) },
		},
		{
			Name:  types.SectionFormatting,
			Label: "ATS-safe formatting",
			Score: func(a *Analysis) float64 { return float64(FormattingScore(a.Text)) },
		},
		{
			Name:  types.SectionStructure,
			Label: "Standard sections",
			Score: func(a *Analysis) float64 { return float64(a.StructureScore()) },
		},
		{
			Name:  types.SectionReadability,
			Label: "Readable sentences",
			Score: func(a *Analysis) float64 { return float64(ReadabilityScore(a.Text)) },
		},
	}
}

// KeywordRatio returns the fraction of vocabulary terms matched.
func (a *Analysis) KeywordRatio() float64 {
	return gaps.Ratio(a.Vocabulary, a.Matched)
}

var defaultExtractor = NewExtractor(DefaultConfig())

// Extract computes the FeatureVector of text with the default configuration.
func Extract(text, companion string) (types.FeatureVector, error) {
	return defaultExtractor.Extract(text, companion)
}

// ResumeExtractors returns the default resume sub-score extractors.
func ResumeExtractors() []scoring.Extractor[*Analysis] {
	return defaultExtractor.Extractors()
}
