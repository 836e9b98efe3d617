package features

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fitscore/internal/vocabulary"
)

func TestExtract_EmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t\n"} {
		_, err := Extract(text, "")
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "text", verr.Field)
	}
}

func TestExtract_CanonicalKeywords(t *testing.T) {
	fv, err := Extract("manages inventory using SAP ERP", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"inventory", "sap", "erp"}, fv.Matched)
	assert.Equal(t, 15, fv.Keywords)
	assert.Contains(t, fv.Missing, "procurement")
	assert.Contains(t, fv.Missing, "logistics")
	assert.Len(t, fv.Missing, 10)
	assert.Equal(t, []string{
		"procurement", "supply chain", "logistics", "vendor management", "sourcing",
		"negotiation", "purchasing", "warehouse", "forecasting", "contract management",
	}, fv.Missing)
}

func TestExtract_SingleWordHasNoSentences(t *testing.T) {
	fv, err := Extract("procurement", "")
	require.NoError(t, err)
	assert.Equal(t, 0, fv.Readability)
}

func TestExtract_AllSectionLabels(t *testing.T) {
	text := "Summary\nObjective\nExperience\nEducation\nSkills"
	fv, err := Extract(text, "")
	require.NoError(t, err)
	assert.Equal(t, 100, fv.Structure)
}

func TestExtract_CompanionExtendsVocabulary(t *testing.T) {
	jd := "Customs broker needed. Customs clearance and customs documentation experience."
	x := NewExtractor(DefaultConfig())

	a, err := x.Analyze("Handled customs filings and procurement.", jd)
	require.NoError(t, err)

	assert.Greater(t, len(a.Vocabulary), len(vocabulary.Canonical()))
	assert.Contains(t, a.Vocabulary, "customs")
	assert.Contains(t, a.Matched, "customs")
	assert.Contains(t, a.Matched, "procurement")
}

func TestExtract_FullMatchHasNoMissing(t *testing.T) {
	text := strings.Join(vocabulary.Canonical().Terms(), ", ")
	fv, err := Extract(text, "")
	require.NoError(t, err)

	assert.Equal(t, 100, fv.Keywords)
	assert.NotNil(t, fv.Missing)
	assert.Empty(t, fv.Missing)
}

func TestExtract_SectionsInRange(t *testing.T) {
	inputs := []string{
		"x",
		"Experience!!!???...",
		"© ✓ ★ résumé with odd glyphs",
		strings.Repeat("word ", 500) + ".",
		"Summary.\n\nSkills: excel, sap.\n\nExperience at a warehouse.",
	}
	for _, in := range inputs {
		fv, err := Extract(in, "")
		require.NoError(t, err)
		for name, v := range fv.Sections() {
			assert.GreaterOrEqual(t, v, 0.0, name)
			assert.LessOrEqual(t, v, 100.0, name)
		}
	}
}

func TestIsAllowedRune(t *testing.T) {
	allowed := "abcXYZ019_ \t\n.,;:!?'\"()[]{}-/&%$#@+*•|éñ"
	for _, r := range allowed {
		assert.True(t, IsAllowedRune(r), "expected %q to be allowed", r)
	}

	denied := "©✓★<>=~`^\\€"
	for _, r := range denied {
		assert.False(t, IsAllowedRune(r), "expected %q to be denied", r)
	}
}

func TestFormattingScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"clean with paragraphs", "Line one.\n\nLine two.", 100},
		{"clean without paragraphs", "Line one.\nLine two.", 90},
		{"symbol with paragraphs", "Line one ©.\n\nLine two.", 80},
		{"symbol without paragraphs", "Line ★ one.", 70},
		{"windows line endings", "Line one.\r\n\r\nLine two.", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormattingScore(tt.text))
		})
	}
}

func TestStructureScore(t *testing.T) {
	labels := vocabulary.SectionLabels()

	assert.Equal(t, 0, StructureScore("nothing relevant", labels, 20))
	assert.Equal(t, 40, StructureScore("EXPERIENCE and Education", labels, 20))
	assert.Equal(t, 100, StructureScore("summary objective experience education skills", labels, 30))
}

func TestCountSentences(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"no terminator", 0},
		{"One. Two! Three?", 3},
		{"Ellipsis... then more.", 2},
		{"  .  ! ?", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CountSentences(tt.text), tt.text)
	}
}

func TestReadabilityScore(t *testing.T) {
	sentence := func(words int) string {
		return strings.TrimSpace(strings.Repeat("word ", words)) + ". "
	}

	tests := []struct {
		name string
		text string
		want int
	}{
		{"no sentences", "just words here", 0},
		{"ideal", sentence(18) + sentence(16), 100},
		{"good", sentence(12), 80},
		{"long good", sentence(24), 80},
		{"fair short", sentence(6), 60},
		{"fair long", sentence(28), 60},
		{"terse", sentence(2), 40},
		{"rambling", sentence(40), 40},
		{"trailing fragment ignored", "Hello world. This is a fragment without end", 40},
		{"fragment does not dilute", sentence(18) + "and then some more trailing words with no stop", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadabilityScore(tt.text))
		})
	}
}

func TestAnalysis_MissingSections(t *testing.T) {
	x := NewExtractor(DefaultConfig())
	a, err := x.Analyze("Experience and Skills listed below", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"education", "summary", "objective"}, a.MissingSections())
}

func TestExtractors_NamesMatchDefaultWeights(t *testing.T) {
	names := make([]string, 0, 4)
	for _, e := range ResumeExtractors() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"keywords", "formatting", "structure", "readability"}, names)
}

func TestExtract_Deterministic(t *testing.T) {
	text := "Summary.\n\nManaged procurement and logistics for a regional warehouse."
	jd := "Logistics coordinator with freight and customs knowledge."

	first, err := Extract(text, jd)
	require.NoError(t, err)
	second, err := Extract(text, jd)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
