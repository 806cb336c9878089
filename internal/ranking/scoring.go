package ranking

import (
	"math"
	"strings"

	"github.com/jonathan/job-matcher/internal/types"
)

// Scorer computes match results for candidate/posting pairs. It holds only
// immutable weights, so a single Scorer may be shared across goroutines.
type Scorer struct {
	weights Weights
}

// NewScorer returns a Scorer using the given weights, which must be valid.
func NewScorer(weights Weights) (*Scorer, error) {
	w, err := NewWeights(weights)
	if err != nil {
		return nil, err
	}
	return &Scorer{weights: w}, nil
}

// Weights returns the scorer's weight configuration.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score computes the factor set and the weighted overall score for one pair.
// Missing or malformed values degrade the affected factor; Score never fails.
func (s *Scorer) Score(profile *types.CandidateProfile, posting *types.JobPosting) types.MatchResult {
	factors := types.MatchFactors{
		SkillMatch:      skillMatch(profile.Skills, posting.RequiredSkills),
		LocationMatch:   locationMatch(profile.PreferredLocation, posting.Location),
		ExperienceMatch: experienceMatch(profile.Experience(), posting.RequiredExperience()),
		SalaryMatch:     salaryMatch(profile.ExpectedSalary, posting.Salary),
		CompanyMatch:    companyMatch(profile.PreferredCompanies, posting.Company),
	}

	score := (s.weights.Skills * factors.SkillMatch) +
		(s.weights.Location * factors.LocationMatch) +
		(s.weights.Experience * factors.ExperienceMatch) +
		(s.weights.Salary * factors.SalaryMatch) +
		(s.weights.Company * factors.CompanyMatch)

	return types.MatchResult{
		CandidateID:  profile.ID,
		PostingID:    posting.ID,
		MatchScore:   clamp01(score),
		MatchFactors: factors,
	}
}

// skillMatch is the fraction of the distinct required skills the candidate has,
// compared case-insensitively. Extra candidate skills do not change the score.
func skillMatch(candidateSkills, requiredSkills []string) float64 {
	if candidateSkills == nil || len(requiredSkills) == 0 {
		return 0.0
	}

	have := make(map[string]bool, len(candidateSkills))
	for _, skill := range candidateSkills {
		have[strings.ToLower(skill)] = true
	}

	required := make(map[string]bool, len(requiredSkills))
	for _, skill := range requiredSkills {
		required[strings.ToLower(skill)] = true
	}

	matched := 0
	for skill := range required {
		if have[skill] {
			matched++
		}
	}

	return float64(matched) / float64(len(required))
}

func locationMatch(preferred, location *string) float64 {
	if preferred == nil || location == nil {
		return 0.0
	}
	if strings.EqualFold(*preferred, *location) {
		return 1.0
	}
	return 0.0
}

// experienceMatch is a one-sided threshold: meeting or exceeding the requirement passes.
func experienceMatch(candidate, required types.ExperienceLevel) float64 {
	if candidate.Meets(required) {
		return 1.0
	}
	return 0.0
}

func salaryMatch(expected, offered *float64) float64 {
	if expected == nil || offered == nil {
		return 0.0
	}
	if math.IsNaN(*expected) || math.IsNaN(*offered) {
		return 0.0
	}
	if *offered >= *expected {
		return 1.0
	}
	return clamp01(*offered / *expected)
}

// companyMatch never penalizes: an unmatched or absent preference is neutral.
func companyMatch(preferred []string, company *string) float64 {
	if len(preferred) == 0 || company == nil {
		return types.NeutralScore
	}
	for _, c := range preferred {
		if strings.EqualFold(c, *company) {
			return 1.0
		}
	}
	return types.NeutralScore
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
