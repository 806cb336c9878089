package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/recommendation"
	"github.com/jonathan/job-matcher/internal/server"
	"github.com/jonathan/job-matcher/internal/upstream"
)

// loadConfig loads configuration and folds validation errors into one.
func loadConfig() (*config.Config, error) {
	cfg, errs := config.Load(configPath)
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// backend is the store pair selected by the configuration.
type backend struct {
	profiles recommendation.ProfileStore
	postings recommendation.PostingStore
	// mirror persists posting events; nil for the http backend, whose
	// upstream services own their data.
	mirror recommendation.IngestHook
	checks map[string]server.HealthChecker
	close  func()
}

// openBackend connects the configured store backend.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		database, err := db.Connect(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &backend{
			profiles: database,
			postings: database,
			mirror:   database,
			checks:   map[string]server.HealthChecker{"postgres": database},
			close:    database.Close,
		}, nil

	case config.BackendHTTP:
		opts := upstream.DefaultOptions()
		opts.Timeout = cfg.Upstream.Timeout

		profiles, err := upstream.NewProfileService(cfg.Upstream.ProfileServiceURL, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create profile service client: %w", err)
		}
		postings, err := upstream.NewPostingService(cfg.Upstream.PostingServiceURL, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create posting service client: %w", err)
		}
		return &backend{
			profiles: profiles,
			postings: postings,
			checks:   map[string]server.HealthChecker{},
			close:    func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// hooks returns the ingest hooks for svc: the pipeline itself plus the
// backend mirror when there is one.
func (b *backend) hooks(svc *recommendation.Service) recommendation.Hooks {
	hooks := recommendation.Hooks{svc}
	if b.mirror != nil {
		hooks = append(hooks, b.mirror)
	}
	return hooks
}
