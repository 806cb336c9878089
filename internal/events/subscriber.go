// Package events consumes posting change notifications published on Redis
// and hands them to the recommendation ingest hook.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/logger"
	"github.com/jonathan/job-matcher/internal/recommendation"
	"github.com/jonathan/job-matcher/internal/types"
)

// DefaultChannel is the pub/sub channel posting events are published on.
const DefaultChannel = "job-postings"

// maxLoggedPayload bounds how much of a rejected payload is logged.
const maxLoggedPayload = 200

// Subscriber reads posting events from a Redis channel.
type Subscriber struct {
	client  *redis.Client
	channel string
	hook    recommendation.IngestHook
	log     *zap.Logger
}

// NewSubscriber creates a subscriber on channel. An empty channel means DefaultChannel.
func NewSubscriber(client *redis.Client, channel string, hook recommendation.IngestHook, log *zap.Logger) *Subscriber {
	if channel == "" {
		channel = DefaultChannel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Subscriber{
		client:  client,
		channel: channel,
		hook:    hook,
		log:     log.Named("events"),
	}
}

// Run subscribes and dispatches messages until ctx is canceled. Malformed
// messages are logged and skipped; only subscription failures end the loop early.
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer func() { _ = pubsub.Close() }()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.channel, err)
	}
	s.log.Info("subscribed to posting events", zap.String("channel", s.channel))

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("posting event subscriber stopped")
			return nil
		case msg, ok := <-messages:
			if !ok {
				return fmt.Errorf("subscription to %s closed", s.channel)
			}
			if err := s.Handle(ctx, []byte(msg.Payload)); err != nil {
				s.log.Warn("dropping posting event",
					zap.Error(err),
					zap.String("payload", logger.Truncate(msg.Payload, maxLoggedPayload)))
			}
		}
	}
}

// Handle decodes and validates one event payload and passes it to the hook.
func (s *Subscriber) Handle(ctx context.Context, payload []byte) error {
	event, err := Decode(payload)
	if err != nil {
		return err
	}
	if err := s.hook.OnPostingCreated(ctx, event); err != nil {
		return fmt.Errorf("ingest hook failed for posting %s: %w", event.Posting.ID, err)
	}
	return nil
}

// Decode parses and validates a posting event.
func Decode(payload []byte) (types.PostingEvent, error) {
	var event types.PostingEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return types.PostingEvent{}, fmt.Errorf("failed to decode posting event: %w", err)
	}
	if err := event.Validate(); err != nil {
		return types.PostingEvent{}, fmt.Errorf("invalid posting event: %w", err)
	}
	return event, nil
}

// Publish encodes event and publishes it on channel.
func Publish(ctx context.Context, client *redis.Client, channel string, event types.PostingEvent) error {
	if channel == "" {
		channel = DefaultChannel
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode posting event: %w", err)
	}
	if err := client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish posting event: %w", err)
	}
	return nil
}
