package upstream

import (
	"context"
	"net/url"
	"time"

	"github.com/jonathan/job-matcher/internal/types"
)

// ProfileService reads candidate profiles from the user service.
type ProfileService struct {
	c *client
}

// NewProfileService creates a client for the user service at baseURL.
func NewProfileService(baseURL string, opts *Options) (*ProfileService, error) {
	c, err := newClient(baseURL, opts)
	if err != nil {
		return nil, err
	}
	return &ProfileService{c: c}, nil
}

// FetchProfile calls GET /api/users/{id}/profile. A 404 or a null body yields nil, nil.
func (s *ProfileService) FetchProfile(ctx context.Context, id string) (*types.CandidateProfile, error) {
	var profile *types.CandidateProfile
	ok, err := s.c.getJSON(ctx, "/api/users/"+url.PathEscape(id)+"/profile", &profile)
	if err != nil || !ok || profile == nil {
		return nil, err
	}
	if profile.ID == "" {
		profile.ID = id
	}
	return profile, nil
}

// FetchActiveProfiles calls GET /api/users/profiles.
func (s *ProfileService) FetchActiveProfiles(ctx context.Context) ([]types.CandidateProfile, error) {
	profiles := []types.CandidateProfile{}
	if _, err := s.c.getJSON(ctx, "/api/users/profiles", &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// PostingService reads job postings from the job service.
type PostingService struct {
	c   *client
	now func() time.Time
}

// NewPostingService creates a client for the job service at baseURL.
func NewPostingService(baseURL string, opts *Options) (*PostingService, error) {
	c, err := newClient(baseURL, opts)
	if err != nil {
		return nil, err
	}
	return &PostingService{c: c, now: time.Now}, nil
}

// FetchPosting calls GET /api/jobs/{id}. A 404 or a null body yields nil, nil.
func (s *PostingService) FetchPosting(ctx context.Context, id string) (*types.JobPosting, error) {
	var posting *types.JobPosting
	ok, err := s.c.getJSON(ctx, "/api/jobs/"+url.PathEscape(id), &posting)
	if err != nil || !ok || posting == nil {
		return nil, err
	}
	if posting.ID == "" {
		posting.ID = id
	}
	return posting, nil
}

// FetchActivePostings calls GET /api/jobs and drops inactive or expired
// postings the job service may still return.
func (s *PostingService) FetchActivePostings(ctx context.Context) ([]types.JobPosting, error) {
	var all []types.JobPosting
	if _, err := s.c.getJSON(ctx, "/api/jobs", &all); err != nil {
		return nil, err
	}

	now := s.now()
	postings := make([]types.JobPosting, 0, len(all))
	for i := range all {
		if all[i].IsListable(now) {
			postings = append(postings, all[i])
		}
	}
	return postings, nil
}
