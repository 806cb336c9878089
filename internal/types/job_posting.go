package types

import "time"

// Employment types accepted on job postings.
const (
	EmploymentFullTime   = "FULL_TIME"
	EmploymentPartTime   = "PART_TIME"
	EmploymentContract   = "CONTRACT"
	EmploymentInternship = "INTERNSHIP"
)

// JobPosting is a read-only snapshot of a posting as seen by the matching engine.
type JobPosting struct {
	ID              string     `json:"id" validate:"required"`
	Title           string     `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Company         *string    `json:"company,omitempty" validate:"omitempty,min=2,max=100"`
	Description     string     `json:"description,omitempty" validate:"omitempty,min=20,max=5000"`
	RequiredSkills  []string   `json:"requiredSkills,omitempty" validate:"omitempty,max=20,dive,required"`
	Location        *string    `json:"location,omitempty" validate:"omitempty,min=2,max=100"`
	EmploymentType  *string    `json:"employmentType,omitempty" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	ExperienceLevel *string    `json:"experienceLevel,omitempty"`
	Salary          *float64   `json:"salary,omitempty" validate:"omitempty,gte=0"`
	PostedDate      *time.Time `json:"postedDate,omitempty"`
	ExpiryDate      *time.Time `json:"expiryDate,omitempty"`
	Active          bool       `json:"isActive"`
}

// RequiredExperience returns the posting's parsed experience requirement.
func (p *JobPosting) RequiredExperience() ExperienceLevel {
	if p.ExperienceLevel == nil {
		return ExperienceUnknown
	}
	return ParseExperienceLevel(*p.ExperienceLevel)
}

// IsExpired reports whether the posting's expiry date is at or before now.
func (p *JobPosting) IsExpired(now time.Time) bool {
	return p.ExpiryDate != nil && !now.Before(*p.ExpiryDate)
}

// IsListable reports whether the posting should appear in an active listing.
func (p *JobPosting) IsListable(now time.Time) bool {
	return p.Active && !p.IsExpired(now)
}

// Validate validates the JobPosting using the validator.
func (p *JobPosting) Validate() error {
	return validate.Struct(p)
}
