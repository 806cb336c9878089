package ranking

import (
	"math/rand"
	"testing"

	"github.com/jonathan/job-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewScorer(DefaultWeights())
	require.NoError(t, err)
	return s
}

func seniorJavaProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		ID:                 "1",
		Skills:             []string{"Java", "Spring", "Microservices"},
		PreferredLocation:  strPtr("Remote"),
		ExperienceLevel:    strPtr("SENIOR"),
		ExpectedSalary:     floatPtr(100000),
		PreferredCompanies: []string{"TechCorp", "InnovativeSoft"},
	}
}

func seniorJavaPosting() *types.JobPosting {
	return &types.JobPosting{
		ID:              "1",
		Title:           "Senior Java Developer",
		Company:         strPtr("TechCorp"),
		RequiredSkills:  []string{"Java", "Spring", "Microservices"},
		Location:        strPtr("Remote"),
		ExperienceLevel: strPtr("SENIOR"),
		Salary:          floatPtr(120000),
		Active:          true,
	}
}

func TestScore_PerfectMatch(t *testing.T) {
	s := newTestScorer(t)

	result := s.Score(seniorJavaProfile(), seniorJavaPosting())

	assert.Equal(t, "1", result.CandidateID)
	assert.Equal(t, "1", result.PostingID)
	assert.InDelta(t, 1.0, result.MatchScore, 1e-9)
	assert.Equal(t, types.MatchFactors{
		SkillMatch:      1.0,
		LocationMatch:   1.0,
		ExperienceMatch: 1.0,
		SalaryMatch:     1.0,
		CompanyMatch:    1.0,
	}, result.MatchFactors)
}

func TestScore_PartialSkillMatch(t *testing.T) {
	s := newTestScorer(t)
	posting := seniorJavaPosting()
	posting.RequiredSkills = []string{"Java", "Spring", "Microservices", "Python", "React"}

	result := s.Score(seniorJavaProfile(), posting)

	assert.InDelta(t, 0.6, result.MatchFactors.SkillMatch, 1e-9)
	assert.Less(t, result.MatchScore, 1.0)
}

func TestSkillMatch(t *testing.T) {
	tests := []struct {
		name      string
		candidate []string
		required  []string
		want      float64
	}{
		{"nil candidate skills", nil, []string{"Go"}, 0.0},
		{"nil required skills", []string{"Go"}, nil, 0.0},
		{"empty required skills", []string{"Go"}, []string{}, 0.0},
		{"empty candidate skills", []string{}, []string{"Go"}, 0.0},
		{"case insensitive", []string{"golang", "DOCKER"}, []string{"Docker", "GoLang"}, 1.0},
		{"extra candidate skills ignored", []string{"Go", "Rust", "Zig"}, []string{"Go", "Python"}, 0.5},
		{"duplicate required counted once", []string{"Go"}, []string{"Go", "go", "Python"}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, skillMatch(tt.candidate, tt.required), 1e-9)
		})
	}
}

func TestLocationMatch(t *testing.T) {
	assert.Equal(t, 1.0, locationMatch(strPtr("Remote"), strPtr("Remote")))
	assert.Equal(t, 1.0, locationMatch(strPtr("remote"), strPtr("REMOTE")))
	assert.Equal(t, 0.0, locationMatch(strPtr("Remote"), strPtr("On-site")))
	assert.Equal(t, 0.0, locationMatch(nil, strPtr("Remote")))
	assert.Equal(t, 0.0, locationMatch(strPtr("Remote"), nil))
}

func TestExperienceMatch(t *testing.T) {
	tests := []struct {
		candidate string
		required  string
		want      float64
	}{
		{"SENIOR", "MID", 1.0},
		{"ENTRY", "MID", 0.0},
		{"mid", "MID", 1.0},
		{"SENIOR", "ENTRY", 1.0},
		{"PRINCIPAL", "ENTRY", 0.0},
		{"SENIOR", "ROCKSTAR", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.candidate+"_vs_"+tt.required, func(t *testing.T) {
			got := experienceMatch(types.ParseExperienceLevel(tt.candidate), types.ParseExperienceLevel(tt.required))
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("absent labels", func(t *testing.T) {
		s := newTestScorer(t)
		profile := seniorJavaProfile()
		profile.ExperienceLevel = nil
		assert.Equal(t, 0.0, s.Score(profile, seniorJavaPosting()).MatchFactors.ExperienceMatch)

		posting := seniorJavaPosting()
		posting.ExperienceLevel = nil
		assert.Equal(t, 0.0, s.Score(seniorJavaProfile(), posting).MatchFactors.ExperienceMatch)
	})

	t.Run("padded label is unrecognized", func(t *testing.T) {
		s := newTestScorer(t)
		posting := seniorJavaPosting()
		posting.ExperienceLevel = strPtr(" MID ")
		assert.Equal(t, 0.0, s.Score(seniorJavaProfile(), posting).MatchFactors.ExperienceMatch)

		profile := seniorJavaProfile()
		profile.ExperienceLevel = strPtr("SENIOR ")
		assert.Equal(t, 0.0, s.Score(profile, seniorJavaPosting()).MatchFactors.ExperienceMatch)
	})
}

func TestSalaryMatch(t *testing.T) {
	tests := []struct {
		name     string
		expected *float64
		offered  *float64
		want     float64
	}{
		{"offer below expectation", floatPtr(100000), floatPtr(80000), 0.8},
		{"offer above expectation", floatPtr(100000), floatPtr(120000), 1.0},
		{"offer equal to expectation", floatPtr(100000), floatPtr(100000), 1.0},
		{"missing expectation", nil, floatPtr(100000), 0.0},
		{"missing offer", floatPtr(100000), nil, 0.0},
		{"negative offer clamps to zero", floatPtr(100000), floatPtr(-5000), 0.0},
		{"zero expectation", floatPtr(0), floatPtr(0), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, salaryMatch(tt.expected, tt.offered), 1e-9)
		})
	}
}

func TestCompanyMatch(t *testing.T) {
	assert.Equal(t, 1.0, companyMatch([]string{"TechCorp"}, strPtr("techcorp")))
	assert.Equal(t, 0.5, companyMatch([]string{"TechCorp"}, strPtr("UnknownCorp")))
	assert.Equal(t, 0.5, companyMatch(nil, strPtr("TechCorp")))
	assert.Equal(t, 0.5, companyMatch([]string{}, strPtr("TechCorp")))
	assert.Equal(t, 0.5, companyMatch([]string{"TechCorp"}, nil))
}

func TestScore_AllValuesAbsent(t *testing.T) {
	s := newTestScorer(t)
	profile := &types.CandidateProfile{ID: "empty"}

	result := s.Score(profile, seniorJavaPosting())

	assert.Equal(t, 0.0, result.MatchFactors.SkillMatch)
	assert.Equal(t, 0.0, result.MatchFactors.LocationMatch)
	assert.Equal(t, 0.0, result.MatchFactors.ExperienceMatch)
	assert.Equal(t, 0.0, result.MatchFactors.SalaryMatch)
	assert.Equal(t, 0.5, result.MatchFactors.CompanyMatch)
	assert.InDelta(t, 0.05, result.MatchScore, 1e-9)
}

func TestScore_UsesInjectedWeights(t *testing.T) {
	s, err := NewScorer(Weights{Skills: 1.0})
	require.NoError(t, err)

	posting := seniorJavaPosting()
	posting.RequiredSkills = []string{"Java", "Go"}

	result := s.Score(seniorJavaProfile(), posting)
	assert.InDelta(t, 0.5, result.MatchScore, 1e-9)
}

func TestScore_Deterministic(t *testing.T) {
	s := newTestScorer(t)
	profile := seniorJavaProfile()
	posting := seniorJavaPosting()
	posting.RequiredSkills = []string{"java", "Kotlin", "spring"}
	posting.Salary = floatPtr(91234.5)

	first := s.Score(profile, posting)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, s.Score(profile, posting))
	}
}

func TestScore_DoesNotMutateInputs(t *testing.T) {
	s := newTestScorer(t)
	profile := seniorJavaProfile()
	posting := seniorJavaPosting()

	s.Score(profile, posting)

	assert.Equal(t, seniorJavaProfile(), profile)
	assert.Equal(t, seniorJavaPosting(), posting)
}

func TestScore_BoundsHoldForRandomInputs(t *testing.T) {
	s := newTestScorer(t)
	rng := rand.New(rand.NewSource(42))
	skills := []string{"Go", "Java", "Python", "SQL", "Kafka", "React"}
	levels := []string{"ENTRY", "MID", "SENIOR", "intern", ""}
	locations := []string{"Remote", "Berlin", "NYC"}

	pick := func(pool []string) []string {
		var out []string
		for _, item := range pool {
			if rng.Intn(2) == 0 {
				out = append(out, item)
			}
		}
		return out
	}

	for i := 0; i < 500; i++ {
		profile := &types.CandidateProfile{
			ID:                 "c",
			Skills:             pick(skills),
			PreferredLocation:  strPtr(locations[rng.Intn(len(locations))]),
			ExperienceLevel:    strPtr(levels[rng.Intn(len(levels))]),
			ExpectedSalary:     floatPtr(rng.Float64()*300000 - 10000),
			PreferredCompanies: pick([]string{"A", "B", "C"}),
		}
		posting := &types.JobPosting{
			ID:              "p",
			RequiredSkills:  pick(skills),
			Location:        strPtr(locations[rng.Intn(len(locations))]),
			ExperienceLevel: strPtr(levels[rng.Intn(len(levels))]),
			Salary:          floatPtr(rng.Float64()*300000 - 10000),
			Company:         strPtr([]string{"A", "B", "D"}[rng.Intn(3)]),
		}

		result := s.Score(profile, posting)
		assert.GreaterOrEqual(t, result.MatchScore, 0.0)
		assert.LessOrEqual(t, result.MatchScore, 1.0)
		for name, v := range result.MatchFactors.AsMap() {
			assert.GreaterOrEqual(t, v, 0.0, name)
			assert.LessOrEqual(t, v, 1.0, name)
		}
	}
}
