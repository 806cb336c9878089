package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/events"
	"github.com/jonathan/job-matcher/internal/logger"
	"github.com/jonathan/job-matcher/internal/ranking"
	"github.com/jonathan/job-matcher/internal/recommendation"
	"github.com/jonathan/job-matcher/internal/server"
	"github.com/jonathan/job-matcher/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the recommendation endpoints, and the posting event subscriber when REDIS_URL is set.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	fields := make([]zap.Field, 0, len(cfg.LogSummary()))
	for k, v := range cfg.LogSummary() {
		fields = append(fields, zap.String(k, v))
	}
	log.Info("configuration loaded", fields...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg, log)
}

// serve wires every component and blocks until ctx is canceled or a component fails.
func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.close()

	scorer, err := ranking.NewScorer(cfg.Ranking.Weights)
	if err != nil {
		return fmt.Errorf("invalid ranking weights: %w", err)
	}
	w := scorer.Weights()
	log.Info("scorer ready",
		zap.Float64("weight_skills", w.Skills),
		zap.Float64("weight_location", w.Location),
		zap.Float64("weight_experience", w.Experience),
		zap.Float64("weight_salary", w.Salary),
		zap.Float64("weight_company", w.Company))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics := recommendation.NewMetrics()
	if err := metrics.Register(registry); err != nil {
		return fmt.Errorf("failed to register ranking metrics: %w", err)
	}

	svc := recommendation.NewService(scorer, b.profiles, b.postings, metrics, log, recommendation.Config{
		Workers:      cfg.Ranking.Workers,
		FetchTimeout: cfg.Ranking.FetchTimeout,
	})
	hooks := b.hooks(svc)

	var jwtService *server.JWTService
	if cfg.Auth.Enabled() {
		jwtService = server.NewJWTService(&cfg.Auth)
	} else {
		log.Warn("JWT_SECRET not set, recommendation endpoints are unauthenticated")
	}

	checks := b.checks
	var sub *events.Subscriber
	if cfg.Redis.URL != "" {
		redisOpts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(redisOpts)
		defer func() { _ = client.Close() }()

		checks["redis"] = server.HealthCheckFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		sub = events.NewSubscriber(client, cfg.Redis.Channel, hooks, log)
	}

	srv, err := server.New(server.Options{
		Port:        cfg.Server.Port,
		CORSOrigin:  cfg.Server.CORSOrigin,
		Ranker:      svc,
		Ingest:      hooks,
		JWT:         jwtService,
		RateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		Checks:      checks,
		Registry:    registry,
		Logger:      log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Start(gCtx) })
	if sub != nil {
		g.Go(func() error { return sub.Run(gCtx) })
	}

	return g.Wait()
}
