// Package scoring combines named sub-scores into a bounded overall score.
package scoring

import (
	"fmt"
	"math"
	"strings"
)

// weightTolerance is how far a weight table's sum may drift from 1.0.
const weightTolerance = 1e-6

// Score bounds shared by every section and overall score
const (
	MinScore = 0
	MaxScore = 100
)

// Weight names one sub-score and its share of the overall score.
type Weight struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// WeightTable is a validated, ordered set of named weights summing to 1.0.
type WeightTable struct {
	weights []Weight
}

// NewWeightTable validates weights and returns them as a table.
// Names must be unique and non-empty, each value in [0,1], and the values must sum to 1.0.
func NewWeightTable(weights ...Weight) (WeightTable, error) {
	if len(weights) == 0 {
		return WeightTable{}, &ConfigurationError{Field: "weights", Message: "weight table is empty"}
	}

	seen := make(map[string]bool, len(weights))
	sum := 0.0
	for _, w := range weights {
		name := strings.TrimSpace(w.Name)
		if name == "" {
			return WeightTable{}, &ConfigurationError{Field: "weights", Message: "weight name is empty"}
		}
		if seen[name] {
			return WeightTable{}, &ConfigurationError{Field: "weights." + name, Message: "duplicate weight name"}
		}
		if math.IsNaN(w.Value) || w.Value < 0 || w.Value > 1 {
			return WeightTable{}, &ConfigurationError{Field: "weights." + name, Message: fmt.Sprintf("weight %v is outside [0,1]", w.Value)}
		}
		seen[name] = true
		sum += w.Value
	}

	if math.Abs(sum-1.0) > weightTolerance {
		return WeightTable{}, &ConfigurationError{Field: "weights", Message: fmt.Sprintf("weights sum to %.6f, want 1.0", sum)}
	}

	table := WeightTable{weights: make([]Weight, len(weights))}
	for i, w := range weights {
		table.weights[i] = Weight{Name: strings.TrimSpace(w.Name), Value: w.Value}
	}
	return table, nil
}

// Weights returns a copy of the table's weights in order.
func (t WeightTable) Weights() []Weight {
	out := make([]Weight, len(t.weights))
	copy(out, t.weights)
	return out
}

// Names returns the weight names in order.
func (t WeightTable) Names() []string {
	names := make([]string, len(t.weights))
	for i, w := range t.weights {
		names[i] = w.Name
	}
	return names
}

// Get returns the weight for name.
func (t WeightTable) Get(name string) (float64, bool) {
	for _, w := range t.weights {
		if w.Name == name {
			return w.Value, true
		}
	}
	return 0, false
}

// Combine returns the rounded weighted sum of sections, clamped to [0,100].
// Section values are clamped to [0,100] first; sections without a weight are ignored and
// weights without a section count as zero.
func Combine(sections map[string]float64, table WeightTable) int {
	total := 0.0
	for _, w := range table.weights {
		total += w.Value * Clamp(sections[w.Name])
	}
	return ClampInt(int(math.Round(total)))
}

// Clamp bounds v to [0,100].
func Clamp(v float64) float64 {
	if math.IsNaN(v) || v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// ClampInt bounds v to [0,100].
func ClampInt(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
