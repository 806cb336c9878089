package types

// Factor names as they appear in API responses.
const (
	FactorSkillMatch      = "skillMatch"
	FactorLocationMatch   = "locationMatch"
	FactorExperienceMatch = "experienceMatch"
	FactorSalaryMatch     = "salaryMatch"
	FactorCompanyMatch    = "companyMatch"
)

// NeutralScore is the company factor used when no preference applies.
const NeutralScore = 0.5

// MatchFactors holds the per-dimension scores of one pair, each in [0,1].
type MatchFactors struct {
	SkillMatch      float64 `json:"skillMatch"`
	LocationMatch   float64 `json:"locationMatch"`
	ExperienceMatch float64 `json:"experienceMatch"`
	SalaryMatch     float64 `json:"salaryMatch"`
	CompanyMatch    float64 `json:"companyMatch"`
}

// AsMap returns the factors keyed by their response names.
func (f MatchFactors) AsMap() map[string]float64 {
	return map[string]float64{
		FactorSkillMatch:      f.SkillMatch,
		FactorLocationMatch:   f.LocationMatch,
		FactorExperienceMatch: f.ExperienceMatch,
		FactorSalaryMatch:     f.SalaryMatch,
		FactorCompanyMatch:    f.CompanyMatch,
	}
}

// MatchResult is the score of one candidate against one posting.
// The ids are references only; the result does not own either entity.
type MatchResult struct {
	CandidateID  string       `json:"candidateId"`
	PostingID    string       `json:"postingId"`
	MatchScore   float64      `json:"matchScore"`
	MatchFactors MatchFactors `json:"matchFactors"`
}
