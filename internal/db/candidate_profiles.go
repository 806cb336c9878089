package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-matcher/internal/types"
)

// -----------------------------------------------------------------------------
// Candidate Profile Methods
// -----------------------------------------------------------------------------

const profileColumns = `id, skills, preferred_location, experience_level, preferred_companies,
		        expected_salary, preferred_employment_type, summary`

func scanProfile(row pgx.Row) (*types.CandidateProfile, error) {
	var p types.CandidateProfile
	err := row.Scan(&p.ID, &p.Skills, &p.PreferredLocation, &p.ExperienceLevel,
		&p.PreferredCompanies, &p.ExpectedSalary, &p.PreferredEmploymentType, &p.Summary)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchProfile retrieves a candidate profile by ID. Returns nil, nil when no
// profile exists.
func (db *DB) FetchProfile(ctx context.Context, id string) (*types.CandidateProfile, error) {
	p, err := scanProfile(db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM candidate_profiles WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate profile: %w", err)
	}
	return p, nil
}

// FetchActiveProfiles lists every active candidate profile
func (db *DB) FetchActiveProfiles(ctx context.Context) ([]types.CandidateProfile, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM candidate_profiles WHERE is_active ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate profiles: %w", err)
	}
	defer rows.Close()

	profiles := []types.CandidateProfile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list candidate profiles: %w", err)
	}
	return profiles, nil
}

// UpsertProfile creates or replaces a candidate profile and marks it active
func (db *DB) UpsertProfile(ctx context.Context, p *types.CandidateProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO candidate_profiles (id, skills, preferred_location, experience_level,
		                                 preferred_companies, expected_salary,
		                                 preferred_employment_type, summary, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		 ON CONFLICT (id) DO UPDATE SET
		     skills = $2,
		     preferred_location = $3,
		     experience_level = $4,
		     preferred_companies = $5,
		     expected_salary = $6,
		     preferred_employment_type = $7,
		     summary = $8,
		     is_active = TRUE,
		     updated_at = NOW()`,
		p.ID, p.Skills, p.PreferredLocation, p.ExperienceLevel,
		p.PreferredCompanies, p.ExpectedSalary, p.PreferredEmploymentType, p.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert candidate profile %s: %w", p.ID, err)
	}
	return nil
}

// DeactivateProfile hides a profile from FetchActiveProfiles without deleting it
func (db *DB) DeactivateProfile(ctx context.Context, id string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE candidate_profiles SET is_active = FALSE, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate candidate profile %s: %w", id, err)
	}
	return nil
}
