package ats

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fitscore/internal/features"
	"github.com/jonathan/fitscore/internal/recommend"
	"github.com/jonathan/fitscore/internal/scoring"
)

const sampleResume = `Summary
Operations lead with eight years in procurement and logistics.

Experience
Managed inventory and vendor management for three warehouse sites using SAP ERP.
Negotiated supplier contracts and cut purchasing costs by twelve percent in one year.

Education
BSc Supply Chain Management.

Skills
Excel, forecasting, budgeting, compliance.`

func TestScore_EmptyResume(t *testing.T) {
	for _, text := range []string{"", "  \n\t "} {
		res, err := Score(text, "")
		require.Error(t, err)
		assert.Nil(t, res)
		assert.True(t, errors.Is(err, ErrEmptyResume))

		var verr *features.ValidationError
		assert.ErrorAs(t, err, &verr)
	}
}

func TestScore_CanonicalVocabulary(t *testing.T) {
	res, err := Score("manages inventory using SAP ERP", "")
	require.NoError(t, err)

	assert.Equal(t, 15, res.Sections.Keywords)
	assert.Equal(t, 90, res.Sections.Formatting)
	assert.Equal(t, 0, res.Sections.Structure)
	assert.Equal(t, 0, res.Sections.Readability)
	// 0.40*15 + 0.20*90 = 24
	assert.Equal(t, 24, res.Overall)
	assert.Contains(t, res.Sections.Missing, "procurement")
	assert.Contains(t, res.Sections.Missing, "logistics")

	require.NotEmpty(t, res.Recommendations)
	assert.Equal(t, recommend.MsgLowOverall, res.Recommendations[0])
	assert.Contains(t, res.Recommendations, recommend.MsgKeywordsMirror)
	assert.Contains(t, res.Recommendations,
		"Add missing sections: experience, education, skills, summary, objective")
	assert.Equal(t, recommend.Tail(), res.Recommendations[len(res.Recommendations)-3:])
}

func TestScore_OverallMatchesWeightedSections(t *testing.T) {
	res, err := Score(sampleResume, "")
	require.NoError(t, err)

	table, err := scoring.NewWeightTable(scoring.DefaultResumeWeights()...)
	require.NoError(t, err)
	assert.Equal(t, scoring.Combine(res.Sections.Sections(), table), res.Overall)
	assert.Equal(t, 80, res.Sections.Structure)
	assert.Equal(t, 100, res.Sections.Formatting)
}

func TestScore_WithJobDescription(t *testing.T) {
	jd := "Procurement analyst. Strong procurement, tendering and customs knowledge. Customs brokerage a plus."

	withJD, err := Score(sampleResume, jd)
	require.NoError(t, err)
	without, err := Score(sampleResume, "")
	require.NoError(t, err)

	assert.Contains(t, withJD.Sections.Missing, "tendering")
	assert.NotEqual(t, without.Sections.Keywords, withJD.Sections.Keywords)
}

func TestScore_Bounds(t *testing.T) {
	inputs := []string{
		"a",
		"★★★★★",
		sampleResume,
		"Experience. Education. Skills. Summary. Objective.",
	}
	for _, in := range inputs {
		res, err := Score(in, "")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Overall, 0)
		assert.LessOrEqual(t, res.Overall, 100)
		for name, v := range res.Sections.Sections() {
			assert.GreaterOrEqual(t, v, 0.0, name)
			assert.LessOrEqual(t, v, 100.0, name)
		}
	}
}

func TestScore_DeterministicJSON(t *testing.T) {
	jd := "Logistics coordinator for freight forwarding and customs clearance."

	first, err := Score(sampleResume, jd)
	require.NoError(t, err)
	second, err := Score(sampleResume, jd)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestNewChecker_InvalidWeights(t *testing.T) {
	_, err := NewChecker(Options{Weights: []scoring.Weight{
		{Name: "keywords", Value: 0.3},
		{Name: "formatting", Value: 0.2},
		{Name: "structure", Value: 0.25},
		{Name: "readability", Value: 0.15},
	}})
	require.Error(t, err)

	var cfgErr *scoring.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, "0.900000")
}

func TestNewChecker_UnknownSection(t *testing.T) {
	_, err := NewChecker(Options{Weights: []scoring.Weight{
		{Name: "keywords", Value: 0.5},
		{Name: "layout", Value: 0.5},
	}})
	require.Error(t, err)

	var cfgErr *scoring.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNewChecker_CustomWeights(t *testing.T) {
	c, err := NewChecker(Options{Weights: []scoring.Weight{
		{Name: "keywords", Value: 1},
		{Name: "formatting", Value: 0},
		{Name: "structure", Value: 0},
		{Name: "readability", Value: 0},
	}})
	require.NoError(t, err)

	res, err := c.Score("manages inventory using SAP ERP", "")
	require.NoError(t, err)
	assert.Equal(t, res.Sections.Keywords, res.Overall)
	assert.Len(t, c.Weights(), 4)
}
