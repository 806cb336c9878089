package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/recommendation"
	"github.com/jonathan/job-matcher/internal/server/middleware"
	"github.com/jonathan/job-matcher/internal/server/ratelimit"
	"github.com/jonathan/job-matcher/internal/types"
)

// Timeouts for the HTTP listener and background work.
const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 30 * time.Second
	healthTimeout   = 2 * time.Second
	refreshTimeout  = time.Minute
)

// Ranker is the ranking pipeline as seen by the HTTP layer.
type Ranker interface {
	RankPostingsForCandidate(ctx context.Context, candidateID string, limit int) []types.MatchResult
	RankCandidatesForPosting(ctx context.Context, postingID string, limit int) []types.MatchResult
	Refresh(ctx context.Context, candidateID string) int
}

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

// Ping implements HealthChecker.
func (f HealthCheckFunc) Ping(ctx context.Context) error { return f(ctx) }

// Options wires the server to its collaborators. Ranker and Ingest are required;
// a nil JWT disables authentication and a nil RateLimiter disables rate limiting.
type Options struct {
	Port        int
	CORSOrigin  string
	Ranker      Ranker
	Ingest      recommendation.IngestHook
	JWT         *JWTService
	RateLimiter *ratelimit.Limiter
	Checks      map[string]HealthChecker
	Registry    *prometheus.Registry
	Logger      *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	ranker      Ranker
	ingest      recommendation.IngestHook
	rateLimiter *ratelimit.Limiter
	checks      map[string]HealthChecker
	corsOrigin  string
	log         *zap.Logger

	// background tracks refresh requests still running after their 202.
	background sync.WaitGroup
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Ranker == nil || opts.Ingest == nil {
		return nil, errors.New("server: ranker and ingest hook are required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.CORSOrigin == "" {
		opts.CORSOrigin = "*"
	}

	s := &Server{
		ranker:      opts.Ranker,
		ingest:      opts.Ingest,
		rateLimiter: opts.RateLimiter,
		checks:      opts.Checks,
		corsOrigin:  opts.CORSOrigin,
		log:         opts.Logger.Named("http"),
	}

	requests := middleware.NewRequestCounter()
	if err := opts.Registry.Register(requests); err != nil {
		return nil, fmt.Errorf("failed to register request metrics: %w", err)
	}
	if s.rateLimiter != nil {
		if err := opts.Registry.Register(s.rateLimiter.Collector()); err != nil {
			return nil, fmt.Errorf("failed to register rate limit metrics: %w", err)
		}
	}

	protect := func(h http.HandlerFunc) http.Handler { return h }
	if opts.JWT != nil {
		auth := middleware.AuthMiddleware(opts.JWT.AsTokenValidator())
		protect = func(h http.HandlerFunc) http.Handler { return auth(h) }
	}

	// Setup router
	mux := http.NewServeMux()
	mux.Handle("GET /recommendations/candidates/{candidateId}", protect(s.handleCandidateRecommendations))
	mux.Handle("GET /recommendations/postings/{postingId}/matches", protect(s.handlePostingMatches))
	mux.Handle("POST /recommendations/refresh/{candidateId}", protect(s.handleRefresh))
	mux.Handle("POST /recommendations/events/postings", protect(s.handlePostingEvent))
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	s.handler = middleware.RequestID(
		middleware.Logging(s.log, requests)(
			s.withRateLimit(s.withCORS(mux)),
		),
	)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves requests until ctx is canceled, then shuts down gracefully and
// waits for in-flight refreshes.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.background.Wait()

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	if s.rateLimiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth pings every configured dependency.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(s.checks))
	for name, checker := range s.checks {
		if err := checker.Ping(ctx); err != nil {
			s.log.Warn("health check failed", zap.String("check", name), zap.Error(err))
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	body := map[string]any{"status": "ok", "checks": checks}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	s.jsonResponse(w, status, body)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID identifies the caller by the IP in RemoteAddr.
// X-Forwarded-For is ignored since it can be spoofed without a trusted proxy.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.log.Warn("rate limit exceeded",
		zap.String("client", extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
