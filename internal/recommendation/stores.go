// Package recommendation ranks job postings for candidates and candidates for postings.
package recommendation

import (
	"context"
	"errors"

	"github.com/jonathan/job-matcher/internal/types"
)

// ProfileStore supplies candidate profiles. FetchProfile returns (nil, nil) when
// the candidate does not exist; a non-nil error means the store could not be reached.
type ProfileStore interface {
	FetchProfile(ctx context.Context, id string) (*types.CandidateProfile, error)
	FetchActiveProfiles(ctx context.Context) ([]types.CandidateProfile, error)
}

// PostingStore supplies job postings with the same not-found convention as ProfileStore.
type PostingStore interface {
	FetchPosting(ctx context.Context, id string) (*types.JobPosting, error)
	FetchActivePostings(ctx context.Context) ([]types.JobPosting, error)
}

// IngestHook receives posting change notifications from the messaging side.
type IngestHook interface {
	OnPostingCreated(ctx context.Context, event types.PostingEvent) error
}

// Hooks fans one notification out to several hooks in order. Every hook is
// called even if an earlier one fails; the errors are joined.
type Hooks []IngestHook

// OnPostingCreated implements IngestHook.
func (hs Hooks) OnPostingCreated(ctx context.Context, event types.PostingEvent) error {
	var errs []error
	for _, h := range hs {
		if err := h.OnPostingCreated(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// lookup is the outcome of fetching one anchor entity. ok is false when the
// entity is missing or the store was unavailable; both degrade the same way.
type lookup[T any] struct {
	value T
	ok    bool
}

func found[T any](v T) lookup[T] {
	return lookup[T]{value: v, ok: true}
}
