// Package ats scores a resume against a job description, or against the canonical vocabulary
// when no description is given.
package ats

import (
	"errors"
	"fmt"

	"github.com/jonathan/fitscore/internal/features"
	"github.com/jonathan/fitscore/internal/recommend"
	"github.com/jonathan/fitscore/internal/scoring"
	"github.com/jonathan/fitscore/internal/types"
)

// ErrEmptyResume is returned when the resume text is empty or whitespace-only.
var ErrEmptyResume = errors.New("resume text is empty")

// Options configures a Checker. Zero fields use defaults.
type Options struct {
	Weights  []scoring.Weight
	Features features.Config
}

// Checker scores resumes. It is immutable after construction and safe for concurrent use.
type Checker struct {
	extractor *features.Extractor
	engine    *scoring.Engine[*features.Analysis]
}

// NewChecker validates the weight table and builds a Checker.
// An invalid table is reported as a *scoring.ConfigurationError.
func NewChecker(opts Options) (*Checker, error) {
	weights := opts.Weights
	if len(weights) == 0 {
		weights = scoring.DefaultResumeWeights()
	}

	table, err := scoring.NewWeightTable(weights...)
	if err != nil {
		return nil, fmt.Errorf("invalid resume weights: %w", err)
	}

	extractor := features.NewExtractor(opts.Features)
	engine, err := scoring.NewEngine(table, extractor.Extractors()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build resume engine: %w", err)
	}

	return &Checker{extractor: extractor, engine: engine}, nil
}

// Score computes the composite score of resume. jobDescription may be blank.
func (c *Checker) Score(resume, jobDescription string) (*types.CompositeScore, error) {
	a, err := c.extractor.Analyze(resume, jobDescription)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmptyResume, err)
	}

	eval := c.engine.Evaluate(a)
	vector := c.extractor.Vector(a)

	return &types.CompositeScore{
		Overall:  eval.Overall,
		Sections: vector,
		Recommendations: recommend.Generate(recommend.Input{
			Overall:         eval.Overall,
			KeywordRatio:    a.KeywordRatio(),
			MissingSections: a.MissingSections(),
		}),
	}, nil
}

// Weights returns the checker's weight table.
func (c *Checker) Weights() []scoring.Weight {
	return c.engine.Table().Weights()
}

var defaultChecker = mustDefaultChecker()

func mustDefaultChecker() *Checker {
	c, err := NewChecker(Options{})
	if err != nil {
		panic(fmt.Sprintf("default resume weights are invalid: %v", err))
	}
	return c
}

// Score scores resume with the default weights and vocabulary.
func Score(resume, jobDescription string) (*types.CompositeScore, error) {
	return defaultChecker.Score(resume, jobDescription)
}
