// Package types provides the data model shared by the matching engine, its stores and its HTTP surface.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CandidateProfile is a read-only snapshot of a candidate's matching preferences.
// Pointer fields are nil when the candidate has not expressed a value.
type CandidateProfile struct {
	ID                      string   `json:"id" validate:"required"`
	Skills                  []string `json:"skills,omitempty" validate:"omitempty,dive,required"`
	PreferredLocation       *string  `json:"preferredLocation,omitempty"`
	ExperienceLevel         *string  `json:"experienceLevel,omitempty"`
	PreferredCompanies      []string `json:"preferredCompanies,omitempty"`
	ExpectedSalary          *float64 `json:"expectedSalary,omitempty" validate:"omitempty,gte=0"`
	PreferredEmploymentType *string  `json:"preferredEmploymentType,omitempty" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	Summary                 *string  `json:"summary,omitempty" validate:"omitempty,max=1000"`
}

// Experience returns the candidate's parsed experience level.
func (p *CandidateProfile) Experience() ExperienceLevel {
	if p.ExperienceLevel == nil {
		return ExperienceUnknown
	}
	return ParseExperienceLevel(*p.ExperienceLevel)
}

// Validate validates the CandidateProfile using the validator.
func (p *CandidateProfile) Validate() error {
	return validate.Struct(p)
}
