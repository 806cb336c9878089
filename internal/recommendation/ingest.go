package recommendation

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/types"
)

var _ IngestHook = (*Service)(nil)

// OnPostingCreated acknowledges a posting change notification. The pipeline
// keeps no cache, so there is nothing to invalidate; the event is only logged
// and counted.
func (s *Service) OnPostingCreated(_ context.Context, event types.PostingEvent) error {
	s.metrics.recordPostingEvent(event.Action)
	s.log.Info("received posting event",
		zap.String("action", event.Action),
		zap.String("posting_id", event.Posting.ID),
		zap.Bool("active", event.Posting.Active))
	return nil
}
