//go:build integration

package events

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-matcher/internal/types"
)

// Requires TEST_REDIS_URL, e.g. redis://localhost:6379/0

type syncHook struct {
	mu     sync.Mutex
	events []types.PostingEvent
}

func (h *syncHook) OnPostingCreated(_ context.Context, event types.PostingEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func (h *syncHook) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func TestIntegration_PublishSubscribe(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set, skipping integration test")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	channel := "job-postings-test"
	hook := &syncHook{}
	done := make(chan error, 1)
	go func() { done <- NewSubscriber(client, channel, hook, nil).Run(ctx) }()

	event := types.PostingEvent{Action: types.PostingCreated, Posting: types.JobPosting{ID: "job-int-1", Active: true}}
	require.Eventually(t, func() bool {
		_ = Publish(ctx, client, channel, event)
		return hook.count() > 0
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
