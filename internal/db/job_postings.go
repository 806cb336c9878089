package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-matcher/internal/types"
)

// -----------------------------------------------------------------------------
// Job Posting Methods
// -----------------------------------------------------------------------------

const postingColumns = `id, title, company, description, required_skills, location,
		        employment_type, experience_level, salary, posted_date, expiry_date, is_active`

func scanPosting(row pgx.Row) (*types.JobPosting, error) {
	var p types.JobPosting
	err := row.Scan(&p.ID, &p.Title, &p.Company, &p.Description, &p.RequiredSkills,
		&p.Location, &p.EmploymentType, &p.ExperienceLevel, &p.Salary,
		&p.PostedDate, &p.ExpiryDate, &p.Active)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchPosting retrieves a job posting by ID, active or not. Returns nil, nil
// when no posting exists.
func (db *DB) FetchPosting(ctx context.Context, id string) (*types.JobPosting, error) {
	p, err := scanPosting(db.pool.QueryRow(ctx,
		`SELECT `+postingColumns+` FROM job_postings WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return p, nil
}

// FetchActivePostings lists active postings whose expiry date has not passed
func (db *DB) FetchActivePostings(ctx context.Context) ([]types.JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+postingColumns+` FROM job_postings
		 WHERE is_active AND (expiry_date IS NULL OR expiry_date > NOW())
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	postings := []types.JobPosting{}
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	return postings, nil
}

// UpsertJobPosting creates or updates a job posting.
func (db *DB) UpsertJobPosting(ctx context.Context, p *types.JobPosting) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO job_postings (id, title, company, description, required_skills, location,
		                           employment_type, experience_level, salary, posted_date,
		                           expiry_date, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, NOW()), $11, $12)
		 ON CONFLICT (id) DO UPDATE SET
		     title = $2,
		     company = $3,
		     description = $4,
		     required_skills = $5,
		     location = $6,
		     employment_type = $7,
		     experience_level = $8,
		     salary = $9,
		     posted_date = COALESCE($10, job_postings.posted_date),
		     expiry_date = $11,
		     is_active = $12,
		     updated_at = NOW()`,
		p.ID, p.Title, p.Company, p.Description, p.RequiredSkills, p.Location,
		p.EmploymentType, p.ExperienceLevel, p.Salary, p.PostedDate, p.ExpiryDate, p.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert job posting %s: %w", p.ID, err)
	}
	return nil
}

// DeactivateJobPosting marks a posting inactive. Unknown IDs are ignored.
func (db *DB) DeactivateJobPosting(ctx context.Context, id string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE job_postings SET is_active = FALSE, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate job posting %s: %w", id, err)
	}
	return nil
}

// OnPostingCreated mirrors a posting event into the job_postings table:
// deactivations flip is_active, everything else is an upsert.
func (db *DB) OnPostingCreated(ctx context.Context, event types.PostingEvent) error {
	if event.Action == types.PostingDeactivated {
		return db.DeactivateJobPosting(ctx, event.Posting.ID)
	}
	posting := event.Posting
	return db.UpsertJobPosting(ctx, &posting)
}
