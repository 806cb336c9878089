package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/events"
	"github.com/jonathan/job-matcher/internal/types"
)

var publishCmd = &cobra.Command{
	Use:   "publish <created|updated|deactivated> <posting.json>",
	Short: "Publish a posting change event to Redis",
	Long:  "Reads a job posting from a JSON file, wraps it in a change event and publishes it on REDIS_CHANNEL. Running subscribers ingest it like any posting service event.",
	Args:  cobra.ExactArgs(2),
	RunE:  runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	event, err := readPostingEvent(args[0], args[1])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is not set")
	}

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(redisOpts)
	defer func() { _ = client.Close() }()

	if err := events.Publish(cmd.Context(), client, cfg.Redis.Channel, event); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Published %s event for posting %s.\n", event.Action, event.Posting.ID)
	return nil
}

// readPostingEvent loads a posting from path and validates it as an event with action.
func readPostingEvent(action, path string) (types.PostingEvent, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.PostingEvent{}, fmt.Errorf("failed to read posting file %s: %w", path, err)
	}

	event := types.PostingEvent{Action: action}
	if err := json.Unmarshal(content, &event.Posting); err != nil {
		return types.PostingEvent{}, fmt.Errorf("failed to unmarshal posting JSON: %w", err)
	}
	if err := event.Validate(); err != nil {
		return types.PostingEvent{}, fmt.Errorf("invalid posting event: %w", err)
	}
	return event, nil
}
