package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_NormalizesAndDeduplicates(t *testing.T) {
	v := New(" SAP ", "erp", "sap", "", "Supply Chain", "ERP")
	assert.Equal(t, Vocabulary{"sap", "erp", "supply chain"}, v)
}

func TestUnion_PreservesOrder(t *testing.T) {
	v := New("procurement", "logistics")
	u := v.Union("kenya", "logistics", "tender")

	assert.Equal(t, Vocabulary{"procurement", "logistics", "kenya", "tender"}, u)
	// Receiver is not mutated
	assert.Equal(t, Vocabulary{"procurement", "logistics"}, v)
}

func TestPresent_SubstringCaseInsensitive(t *testing.T) {
	v := New("procurement", "sap", "erp", "logistics")
	found := v.Present("Manages inventory using SAP ERP")
	assert.Equal(t, []string{"sap", "erp"}, found)
}

func TestPresent_EmptyText(t *testing.T) {
	v := Canonical()
	assert.Empty(t, v.Present(""))
	assert.NotNil(t, v.Present(""))
}

func TestCanonical_ReturnsCopy(t *testing.T) {
	a := Canonical()
	a[0] = "changed"
	b := Canonical()
	assert.Equal(t, "procurement", b[0])
	assert.Len(t, b, 20)
}

func TestSectionLabels(t *testing.T) {
	assert.Equal(t, []string{"experience", "education", "skills", "summary", "objective"}, SectionLabels())
}

func TestTokens_StripsPunctuation(t *testing.T) {
	got := Tokens("Node.js, e-mail & SQL!  Logistics")
	assert.Equal(t, []string{"nodejs", "email", "sql", "logistics"}, got)
}

func TestSalientTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		topN int
		want []string
	}{
		{
			name: "frequency order",
			text: "freight freight customs customs customs broker",
			topN: 5,
			want: []string{"customs", "freight", "broker"},
		},
		{
			name: "ties keep first occurrence",
			text: "zeta alpha beta",
			topN: 5,
			want: []string{"zeta", "alpha", "beta"},
		},
		{
			name: "short tokens and stopwords dropped",
			text: "the sap erp with fleet that",
			topN: 5,
			want: []string{"fleet"},
		},
		{
			name: "truncated to topN",
			text: "aaaa bbbb cccc dddd",
			topN: 2,
			want: []string{"aaaa", "bbbb"},
		},
		{
			name: "zero topN",
			text: "aaaa bbbb",
			topN: 0,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SalientTokens(tt.text, tt.topN, Stopwords())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDerive_BlankDescriptionFallsBack(t *testing.T) {
	v := Derive(Canonical(), "   ", DefaultTopTokens, Stopwords())
	assert.Equal(t, Canonical(), v)
}

func TestDerive_AddsDescriptionTokens(t *testing.T) {
	v := Derive(Canonical(), "Freight forwarding and customs clearance. Customs experience required.", DefaultTopTokens, Stopwords())

	assert.Equal(t, Canonical(), v[:20])
	assert.Equal(t, "customs", v[20])
	assert.Contains(t, v, "freight")
	assert.Contains(t, v, "clearance")
	assert.NotContains(t, v, "and")
}

func TestDerive_DoesNotDuplicateCanonicalTerms(t *testing.T) {
	v := Derive(Canonical(), "procurement procurement logistics", DefaultTopTokens, Stopwords())
	assert.Len(t, v, 20)
}

func TestStopSet(t *testing.T) {
	set := StopSet("With", " the ", "")
	assert.True(t, set["with"])
	assert.True(t, set["the"])
	assert.Len(t, set, 2)
}
