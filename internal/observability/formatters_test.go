package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-matcher/internal/types"
)

func sampleResults() []types.MatchResult {
	return []types.MatchResult{
		{
			CandidateID:  "cand-1",
			PostingID:    "job-a",
			MatchScore:   0.85,
			MatchFactors: types.MatchFactors{SkillMatch: 1, LocationMatch: 1, ExperienceMatch: 1, SalaryMatch: 1, CompanyMatch: 0.5},
		},
		{
			CandidateID:  "cand-1",
			PostingID:    "job-b",
			MatchScore:   0.4,
			MatchFactors: types.MatchFactors{SkillMatch: 0.5, CompanyMatch: 0.5},
		},
	}
}

func TestPrintRanking_Postings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	err := p.PrintRanking(&Ranking{Direction: "postings", AnchorID: "cand-1", Limit: 10, Results: sampleResults()})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Recommendations")
	assert.Contains(t, out, "Candidate: cand-1")
	assert.Contains(t, out, "Returned: 2")
	assert.Contains(t, out, "job-a")
	assert.Contains(t, out, "0.850")
	assert.Less(t, strings.Index(out, "job-a"), strings.Index(out, "job-b"), "rank order is kept")
}

func TestPrintRanking_FactorColumnsFollowFixedOrder(t *testing.T) {
	var buf bytes.Buffer
	results := []types.MatchResult{{
		CandidateID: "cand-1",
		PostingID:   "job-a",
		MatchScore:  0.5,
		MatchFactors: types.MatchFactors{
			SkillMatch: 0.1, LocationMatch: 0.2, ExperienceMatch: 0.3, SalaryMatch: 0.4, CompanyMatch: 0.6,
		},
	}}
	require.NoError(t, NewPrinter(&buf).PrintRanking(&Ranking{Direction: "postings", AnchorID: "cand-1", Limit: 1, Results: results}))

	out := buf.String()
	var last int
	for _, want := range []string{"0.100", "0.200", "0.300", "0.400", "0.600"} {
		idx := strings.Index(out, want)
		require.GreaterOrEqual(t, idx, 0, want)
		assert.Greater(t, idx, last, "%s out of order", want)
		last = idx
	}
}

func TestPrintRanking_Candidates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	err := p.PrintRanking(&Ranking{Direction: "candidates", AnchorID: "job-a", Limit: 5, Results: sampleResults()[:1]})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Posting: job-a")
	assert.Contains(t, out, "cand-1")
}

func TestPrintRanking_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf).PrintRanking(&Ranking{Direction: "postings", AnchorID: "nobody"}))
	assert.Contains(t, buf.String(), "No matches.")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("Title", strings.Repeat("x", 100))

	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), strings.Repeat("x", boxWidth))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf).PrintJSON(sampleResults()))

	var decoded []types.MatchResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleResults(), decoded)

	buf.Reset()
	require.NoError(t, NewPrinter(&buf).PrintJSON(nil))
	assert.Equal(t, "[]\n", buf.String())
}
