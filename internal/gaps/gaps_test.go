package gaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var vocab = []string{"procurement", "supply chain", "logistics", "inventory", "sap", "erp"}

func TestMissing_PreservesVocabularyOrder(t *testing.T) {
	got := Missing(vocab, []string{"sap", "inventory"}, 10)
	assert.Equal(t, []string{"procurement", "supply chain", "logistics", "erp"}, got)
}

func TestMissing_Truncates(t *testing.T) {
	got := Missing(vocab, nil, 2)
	assert.Equal(t, []string{"procurement", "supply chain"}, got)
}

func TestMissing_NoLimit(t *testing.T) {
	got := Missing(vocab, []string{"erp"}, 0)
	assert.Len(t, got, 5)
}

func TestMissing_AllMatchedIsEmpty(t *testing.T) {
	got := Missing(vocab, vocab, 10)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMissing_Invariants(t *testing.T) {
	cases := [][]string{
		nil,
		{"sap"},
		{"logistics", "erp", "not-in-vocab"},
		vocab,
	}

	for _, matched := range cases {
		missing := Missing(vocab, matched, DefaultLimit)

		for _, m := range missing {
			assert.Contains(t, vocab, m, "missing must be a subset of vocabulary")
			assert.NotContains(t, matched, m, "missing and matched must be disjoint")
		}
		assert.LessOrEqual(t, len(missing), DefaultLimit)
	}
}

func TestIntersect(t *testing.T) {
	got := Intersect(vocab, []string{"erp", "python", "procurement"})
	assert.Equal(t, []string{"procurement", "erp"}, got)
	assert.Empty(t, Intersect(vocab, nil))
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 0.5, Ratio(vocab, []string{"sap", "erp", "inventory"}), 1e-9)
	assert.Equal(t, 0.0, Ratio(nil, []string{"sap"}))
}
