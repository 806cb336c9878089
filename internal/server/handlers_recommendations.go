package server

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/events"
	"github.com/jonathan/job-matcher/internal/recommendation"
	"github.com/jonathan/job-matcher/internal/server/middleware"
)

// MaxLimit caps the limit query parameter.
const MaxLimit = 100

// maxEventBytes bounds the size of a posting event body.
const maxEventBytes = 1 << 20

// parseLimit reads ?limit=N. Absent means recommendation.DefaultLimit and
// values above MaxLimit are capped.
func parseLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return recommendation.DefaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, &ErrInvalidLimit{Value: raw}
	}
	return min(limit, MaxLimit), nil
}

// handleCandidateRecommendations handles GET /recommendations/candidates/{candidateId}
func (s *Server) handleCandidateRecommendations(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("candidateId")
	limit, err := parseLimit(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, s.ranker.RankPostingsForCandidate(r.Context(), candidateID, limit))
}

// handlePostingMatches handles GET /recommendations/postings/{postingId}/matches
func (s *Server) handlePostingMatches(w http.ResponseWriter, r *http.Request) {
	postingID := r.PathValue("postingId")
	limit, err := parseLimit(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, s.ranker.RankCandidatesForPosting(r.Context(), postingID, limit))
}

// handleRefresh handles POST /recommendations/refresh/{candidateId}. The
// recomputation runs after the response is sent.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("candidateId")
	log := s.log.With(
		zap.String("candidate_id", candidateID),
		zap.String("request_id", middleware.GetRequestID(r.Context())))

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), refreshTimeout)
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		defer cancel()
		n := s.ranker.Refresh(ctx, candidateID)
		log.Debug("refresh finished", zap.Int("results", n))
	}()

	s.jsonResponse(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// handlePostingEvent handles POST /recommendations/events/postings, the HTTP
// counterpart of the Redis posting event subscriber.
func (s *Server) handlePostingEvent(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mediaType, _, err := mime.ParseMediaType(ct); err != nil || mediaType != "application/json" {
			err := &ErrUnsupportedMediaType{ContentType: ct}
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventBytes))
	if err != nil {
		verr := &ErrValidation{Field: "body", Message: "unreadable or too large"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	event, err := events.Decode(body)
	if err != nil {
		verr := &ErrValidation{Field: "event", Message: err.Error()}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	if err := s.ingest.OnPostingCreated(r.Context(), event); err != nil {
		s.log.Error("posting event ingest failed",
			zap.String("posting_id", event.Posting.ID),
			zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to ingest posting event")
		return
	}

	s.jsonResponse(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
