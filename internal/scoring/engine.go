package scoring

import (
	"fmt"
)

// Extractor computes one named sub-score in [0,100] from an input.
// Label is the human-readable factor reported when the sub-score contributes to the total.
type Extractor[T any] struct {
	Name  string
	Label string
	Score func(T) float64
}

// Engine scores inputs with a fixed set of extractors and a weight table.
// It holds no mutable state and is safe for concurrent use.
type Engine[T any] struct {
	table      WeightTable
	extractors []Extractor[T]
}

// NewEngine builds an engine. Every extractor needs a weight and every weight an extractor.
func NewEngine[T any](table WeightTable, extractors ...Extractor[T]) (*Engine[T], error) {
	if len(table.weights) == 0 {
		return nil, &ConfigurationError{Field: "weights", Message: "weight table is empty"}
	}

	names := make(map[string]bool, len(extractors))
	for _, ex := range extractors {
		if ex.Score == nil {
			return nil, &ConfigurationError{Field: "extractors." + ex.Name, Message: "extractor has no score function"}
		}
		if names[ex.Name] {
			return nil, &ConfigurationError{Field: "extractors." + ex.Name, Message: "duplicate extractor name"}
		}
		if _, ok := table.Get(ex.Name); !ok {
			return nil, &ConfigurationError{Field: "weights." + ex.Name, Message: "no weight for extractor"}
		}
		names[ex.Name] = true
	}
	for _, name := range table.Names() {
		if !names[name] {
			return nil, &ConfigurationError{Field: "weights." + name, Message: fmt.Sprintf("weight %q has no extractor", name)}
		}
	}

	return &Engine[T]{
		table:      table,
		extractors: append([]Extractor[T](nil), extractors...),
	}, nil
}

// Table returns the engine's weight table.
func (e *Engine[T]) Table() WeightTable {
	return e.table
}

// Section is one evaluated sub-score.
type Section struct {
	Name         string  `json:"name"`
	Label        string  `json:"label,omitempty"`
	Value        float64 `json:"value"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Evaluation is the result of running an engine over one input.
type Evaluation struct {
	Overall  int       `json:"overall"`
	Sections []Section `json:"sections"`
}

// Evaluate runs every extractor over in and combines the results.
func (e *Engine[T]) Evaluate(in T) Evaluation {
	sections := make([]Section, 0, len(e.extractors))
	values := make(map[string]float64, len(e.extractors))
	for _, ex := range e.extractors {
		v := Clamp(ex.Score(in))
		w, _ := e.table.Get(ex.Name)
		values[ex.Name] = v
		sections = append(sections, Section{
			Name:         ex.Name,
			Label:        ex.Label,
			Value:        v,
			Weight:       w,
			Contribution: v * w,
		})
	}

	return Evaluation{
		Overall:  Combine(values, e.table),
		Sections: sections,
	}
}

// Value returns the evaluated value of the named section, or 0 if absent.
func (ev Evaluation) Value(name string) float64 {
	for _, s := range ev.Sections {
		if s.Name == name {
			return s.Value
		}
	}
	return 0
}

// Factors returns the labels of sections that contributed to the overall score, in extractor order.
func (ev Evaluation) Factors() []string {
	factors := make([]string, 0, len(ev.Sections))
	for _, s := range ev.Sections {
		if s.Contribution > 0 && s.Label != "" {
			factors = append(factors, s.Label)
		}
	}
	return factors
}
