package recommendation

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-matcher/internal/ranking"
	"github.com/jonathan/job-matcher/internal/types"
)

// DefaultLimit is the number of results returned when the caller does not ask for a count.
const DefaultLimit = 10

// Defaults applied by NewService to zero-valued Config fields.
const (
	DefaultFetchTimeout = 5 * time.Second
	minChunkSize        = 64
	cancelCheckInterval = 256
)

var errAnchorNotFound = errors.New("anchor entity not found")

// Config tunes the ranking pipeline.
type Config struct {
	// Workers bounds the number of goroutines scoring one request. Defaults to runtime.NumCPU().
	Workers int
	// FetchTimeout bounds the store calls of one request. Defaults to DefaultFetchTimeout.
	FetchTimeout time.Duration
}

// Service is the ranking pipeline. It fetches the anchor and the collection from
// its stores, scores every pair, and returns the best matches in rank order.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	scorer   *ranking.Scorer
	profiles ProfileStore
	postings PostingStore
	metrics  *Metrics
	log      *zap.Logger
	cfg      Config
}

// NewService wires the pipeline to its collaborators. metrics may be nil.
func NewService(scorer *ranking.Scorer, profiles ProfileStore, postings PostingStore, metrics *Metrics, log *zap.Logger, cfg Config) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		scorer:   scorer,
		profiles: profiles,
		postings: postings,
		metrics:  metrics,
		log:      log.Named("recommendation"),
		cfg:      cfg,
	}
}

// RankPostingsForCandidate returns up to limit active postings for the candidate,
// best first, ties broken by posting id. A missing candidate or an unreachable
// store yields an empty list rather than an error.
func (s *Service) RankPostingsForCandidate(ctx context.Context, candidateID string, limit int) []types.MatchResult {
	start := time.Now()
	log := s.log.With(zap.String("direction", DirectionPostingsForCandidate), zap.String("candidate_id", candidateID))

	var profile lookup[*types.CandidateProfile]
	var postings []types.JobPosting

	err := s.fetch(ctx,
		func(ctx context.Context) error {
			p, err := s.profiles.FetchProfile(ctx, candidateID)
			if err != nil {
				return fmt.Errorf("fetching candidate profile: %w", err)
			}
			if p == nil {
				return errAnchorNotFound
			}
			profile = found(p)
			return nil
		},
		func(ctx context.Context) error {
			ps, err := s.postings.FetchActivePostings(ctx)
			if err != nil {
				return fmt.Errorf("fetching active postings: %w", err)
			}
			postings = ps
			return nil
		},
	)
	if err != nil || !profile.ok {
		s.degrade(ctx, log, DirectionPostingsForCandidate, start, err)
		return []types.MatchResult{}
	}

	results, err := s.rank(ctx, len(postings), limit, ranking.ByScoreThenPosting, func(i int) types.MatchResult {
		return s.scorer.Score(profile.value, &postings[i])
	})
	if err != nil {
		s.degrade(ctx, log, DirectionPostingsForCandidate, start, err)
		return []types.MatchResult{}
	}

	s.metrics.recordRanking(DirectionPostingsForCandidate, OutcomeOK, time.Since(start), len(postings))
	log.Debug("ranked postings",
		zap.Int("pool", len(postings)),
		zap.Int("returned", len(results)),
		zap.Duration("elapsed", time.Since(start)))
	return results
}

// RankCandidatesForPosting returns up to limit candidates for the posting, best
// first, ties broken by candidate id. Degrades to an empty list like
// RankPostingsForCandidate.
func (s *Service) RankCandidatesForPosting(ctx context.Context, postingID string, limit int) []types.MatchResult {
	start := time.Now()
	log := s.log.With(zap.String("direction", DirectionCandidatesForPosting), zap.String("posting_id", postingID))

	var posting lookup[*types.JobPosting]
	var profiles []types.CandidateProfile

	err := s.fetch(ctx,
		func(ctx context.Context) error {
			p, err := s.postings.FetchPosting(ctx, postingID)
			if err != nil {
				return fmt.Errorf("fetching job posting: %w", err)
			}
			if p == nil {
				return errAnchorNotFound
			}
			posting = found(p)
			return nil
		},
		func(ctx context.Context) error {
			ps, err := s.profiles.FetchActiveProfiles(ctx)
			if err != nil {
				return fmt.Errorf("fetching candidate profiles: %w", err)
			}
			profiles = ps
			return nil
		},
	)
	if err != nil || !posting.ok {
		s.degrade(ctx, log, DirectionCandidatesForPosting, start, err)
		return []types.MatchResult{}
	}

	results, err := s.rank(ctx, len(profiles), limit, ranking.ByScoreThenCandidate, func(i int) types.MatchResult {
		return s.scorer.Score(&profiles[i], posting.value)
	})
	if err != nil {
		s.degrade(ctx, log, DirectionCandidatesForPosting, start, err)
		return []types.MatchResult{}
	}

	s.metrics.recordRanking(DirectionCandidatesForPosting, OutcomeOK, time.Since(start), len(profiles))
	log.Debug("ranked candidates",
		zap.Int("pool", len(profiles)),
		zap.Int("returned", len(results)),
		zap.Duration("elapsed", time.Since(start)))
	return results
}

// Refresh recomputes the candidate's recommendations with the default limit and
// discards them. Nothing is cached, so the call has no lasting effect.
func (s *Service) Refresh(ctx context.Context, candidateID string) int {
	s.log.Info("refreshing recommendations", zap.String("candidate_id", candidateID))
	return len(s.RankPostingsForCandidate(ctx, candidateID, DefaultLimit))
}

// fetch runs the anchor and collection lookups concurrently under the fetch
// timeout. The first failure cancels the other lookup.
func (s *Service) fetch(ctx context.Context, anchor, collection func(context.Context) error) error {
	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(fetchCtx)
	g.Go(func() error { return anchor(gCtx) })
	g.Go(func() error { return collection(gCtx) })
	return g.Wait()
}

// rank scores n pairs on the worker pool and keeps the best limit of them.
// Each worker fills its own bounded heap over a contiguous chunk; the heaps
// are merged once all workers finish.
func (s *Service) rank(ctx context.Context, n, limit int, before ranking.Order, score func(i int) types.MatchResult) ([]types.MatchResult, error) {
	if n == 0 || limit <= 0 {
		return []types.MatchResult{}, nil
	}

	chunk := max((n+s.cfg.Workers-1)/s.cfg.Workers, minChunkSize)
	chunks := (n + chunk - 1) / chunk
	partial := make([]*ranking.TopK, chunks)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for c := 0; c < chunks; c++ {
		lo, hi := c*chunk, min((c+1)*chunk, n)
		g.Go(func() error {
			top := ranking.NewTopK(limit, before)
			for i := lo; i < hi; i++ {
				if (i-lo)%cancelCheckInterval == 0 {
					if err := gCtx.Err(); err != nil {
						return err
					}
				}
				top.Offer(score(i))
			}
			partial[c] = top
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring canceled: %w", err)
	}

	merged := ranking.NewTopK(limit, before)
	for _, top := range partial {
		merged.Merge(top)
	}
	return merged.Results(), nil
}

// degrade records why a request produced no results. Missing anchors are
// expected and logged at debug; store failures are logged as warnings.
func (s *Service) degrade(ctx context.Context, log *zap.Logger, direction string, start time.Time, err error) {
	outcome := OutcomeNotFound
	switch {
	case err == nil, errors.Is(err, errAnchorNotFound):
		log.Debug("anchor not found, returning no matches")
	case ctx.Err() != nil:
		outcome = OutcomeCanceled
		log.Info("ranking canceled by caller", zap.Error(err))
	default:
		outcome = OutcomeUpstreamUnavailable
		log.Warn("upstream unavailable, returning no matches", zap.Error(err))
	}
	s.metrics.recordRanking(direction, outcome, time.Since(start), 0)
}
