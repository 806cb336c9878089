// Package config loads the service configuration from an optional YAML file
// and environment variables. Environment variables take precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jonathan/job-matcher/internal/ranking"
)

// Store backends.
const (
	BackendPostgres = "postgres"
	BackendHTTP     = "http"
)

// Default values for non-secret configuration.
const (
	DefaultPort            = 8080
	DefaultStoreBackend    = BackendPostgres
	DefaultUpstreamTimeout = 3 * time.Second
	DefaultFetchTimeout    = 5 * time.Second
	DefaultRedisChannel    = "job-postings"
	DefaultCORSOrigin      = "*"
)

// Config holds all configuration values for the recommendation service.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Ranking  RankingConfig
	Auth     JWTConfig
	Log      LogConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port       int
	CORSOrigin string
}

// StoreConfig selects where profiles and postings are read from.
type StoreConfig struct {
	Backend     string
	DatabaseURL string
}

// UpstreamConfig points at the remote user and job services used by the http backend.
type UpstreamConfig struct {
	ProfileServiceURL string
	PostingServiceURL string
	Timeout           time.Duration
}

// RedisConfig enables the posting event subscriber when URL is set.
type RedisConfig struct {
	URL     string
	Channel string
}

// RankingConfig tunes scoring and the ranking pipeline.
type RankingConfig struct {
	Weights      ranking.Weights
	Workers      int
	FetchTimeout time.Duration
}

// LogConfig controls the zap logger.
type LogConfig struct {
	JSON  bool
	Debug bool
}

// Configuration validation errors.
var (
	ErrInvalidPort              = errors.New("PORT must be a valid integer between 1 and 65535")
	ErrUnknownBackend           = errors.New("STORE_BACKEND must be postgres or http")
	ErrMissingDatabaseURL       = errors.New("DATABASE_URL is required for the postgres backend")
	ErrMissingProfileServiceURL = errors.New("PROFILE_SERVICE_URL is required for the http backend")
	ErrMissingPostingServiceURL = errors.New("POSTING_SERVICE_URL is required for the http backend")
	ErrInvalidRedisURL          = errors.New("REDIS_URL is not a valid redis URL")
	ErrInvalidWorkers           = errors.New("ranking.workers must not be negative")
	ErrInvalidTimeout           = errors.New("timeouts must be positive")
)

// Load reads configuration from an optional YAML file and environment variables.
// Returns the loaded config and a slice of validation errors (empty if valid).
// If a config file path is provided and the file cannot be loaded, only that error is returned.
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var loadErrs []error

	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	collect := func(err error) {
		if err != nil {
			loadErrs = append(loadErrs, err)
		}
	}

	port, err := getEnvIntOrDefault("PORT", k.Int("server.port"), DefaultPort)
	collect(err)
	workers, err := getEnvIntOrDefault("RANKING_WORKERS", k.Int("ranking.workers"), 0)
	collect(err)
	upstreamTimeout, err := getEnvDurationOrDefault("UPSTREAM_TIMEOUT", k, "upstream.timeout", DefaultUpstreamTimeout)
	collect(err)
	fetchTimeout, err := getEnvDurationOrDefault("RANKING_FETCH_TIMEOUT", k, "ranking.fetch_timeout", DefaultFetchTimeout)
	collect(err)
	expiration, err := getEnvIntOrDefault("JWT_EXPIRATION_HOURS", k.Int("auth.expiration_hours"), DefaultJWTExpirationHours)
	collect(err)

	weights := ranking.DefaultWeights()
	if k.Exists("ranking.weights") {
		weights = ranking.Weights{
			Skills:     k.Float64("ranking.weights.skills"),
			Location:   k.Float64("ranking.weights.location"),
			Experience: k.Float64("ranking.weights.experience"),
			Salary:     k.Float64("ranking.weights.salary"),
			Company:    k.Float64("ranking.weights.company"),
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:       port,
			CORSOrigin: getEnvOrDefault("CORS_ORIGIN", k.String("server.cors_origin"), DefaultCORSOrigin),
		},
		Store: StoreConfig{
			Backend:     strings.ToLower(getEnvOrDefault("STORE_BACKEND", k.String("store.backend"), DefaultStoreBackend)),
			DatabaseURL: getEnvOrKoanf("DATABASE_URL", k, "store.database_url"),
		},
		Upstream: UpstreamConfig{
			ProfileServiceURL: getEnvOrKoanf("PROFILE_SERVICE_URL", k, "upstream.profile_service_url"),
			PostingServiceURL: getEnvOrKoanf("POSTING_SERVICE_URL", k, "upstream.posting_service_url"),
			Timeout:           upstreamTimeout,
		},
		Redis: RedisConfig{
			URL:     getEnvOrKoanf("REDIS_URL", k, "redis.url"),
			Channel: getEnvOrDefault("REDIS_CHANNEL", k.String("redis.channel"), DefaultRedisChannel),
		},
		Ranking: RankingConfig{
			Weights:      weights,
			Workers:      workers,
			FetchTimeout: fetchTimeout,
		},
		Auth: JWTConfig{
			Secret:          getEnvOrKoanf("JWT_SECRET", k, "auth.jwt_secret"),
			ExpirationHours: expiration,
		},
		Log: LogConfig{
			JSON:  getEnvBoolOrKoanf("LOG_JSON", k, "log.json"),
			Debug: getEnvBoolOrKoanf("LOG_DEBUG", k, "log.debug"),
		},
	}

	errs := cfg.Validate()
	return cfg, append(loadErrs, errs...)
}

// Validate checks the configuration for consistency.
// Returns a slice of validation errors (empty if valid).
func (c *Config) Validate() []error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, ErrInvalidPort)
	}

	switch c.Store.Backend {
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, ErrMissingDatabaseURL)
		}
	case BackendHTTP:
		if c.Upstream.ProfileServiceURL == "" {
			errs = append(errs, ErrMissingProfileServiceURL)
		}
		if c.Upstream.PostingServiceURL == "" {
			errs = append(errs, ErrMissingPostingServiceURL)
		}
	default:
		errs = append(errs, fmt.Errorf("%w, got %q", ErrUnknownBackend, c.Store.Backend))
	}

	if c.Redis.URL != "" {
		if u, err := url.Parse(c.Redis.URL); err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
			errs = append(errs, ErrInvalidRedisURL)
		}
	}

	if err := c.Ranking.Weights.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ranking.weights: %w", err))
	}
	if c.Ranking.Workers < 0 {
		errs = append(errs, ErrInvalidWorkers)
	}
	if c.Ranking.FetchTimeout <= 0 || c.Upstream.Timeout <= 0 {
		errs = append(errs, ErrInvalidTimeout)
	}

	if c.Auth.Secret != "" {
		if err := c.Auth.normalize(); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// LogSummary returns a summary of the configuration suitable for logging.
// All secrets are masked to prevent accidental exposure.
func (c *Config) LogSummary() map[string]string {
	return map[string]string{
		"port":                strconv.Itoa(c.Server.Port),
		"store_backend":       c.Store.Backend,
		"database_url":        maskURL(c.Store.DatabaseURL),
		"profile_service_url": c.Upstream.ProfileServiceURL,
		"posting_service_url": c.Upstream.PostingServiceURL,
		"redis_url":           maskURL(c.Redis.URL),
		"redis_channel":       c.Redis.Channel,
		"jwt_secret":          maskSecret(c.Auth.Secret),
		"fetch_timeout":       c.Ranking.FetchTimeout.String(),
		"workers":             strconv.Itoa(c.Ranking.Workers),
	}
}

// getEnvOrKoanf returns the environment variable value if set, otherwise the koanf value.
func getEnvOrKoanf(envKey string, k *koanf.Koanf, koanfKey string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	return k.String(koanfKey)
}

// getEnvOrDefault returns the environment variable value if set, otherwise the koanf value, or default.
func getEnvOrDefault(envKey string, koanfVal string, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvIntOrDefault returns the environment variable as int if set, otherwise the koanf value, or default.
func getEnvIntOrDefault(envKey string, koanfVal int, defaultVal int) (int, error) {
	if val := os.Getenv(envKey); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("%s must be a valid integer: %w", envKey, err)
		}
		return i, nil
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

// getEnvDurationOrDefault parses a Go duration ("5s", "250ms") from env or file.
func getEnvDurationOrDefault(envKey string, k *koanf.Koanf, koanfKey string, defaultVal time.Duration) (time.Duration, error) {
	if val := os.Getenv(envKey); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, fmt.Errorf("%s must be a valid duration: %w", envKey, err)
		}
		return d, nil
	}
	if k.Exists(koanfKey) {
		d, err := time.ParseDuration(k.String(koanfKey))
		if err != nil {
			return 0, fmt.Errorf("%s must be a valid duration: %w", koanfKey, err)
		}
		return d, nil
	}
	return defaultVal, nil
}

// getEnvBoolOrKoanf accepts true/1/yes/on and false/0/no/off from env, falling back to the file.
func getEnvBoolOrKoanf(envKey string, k *koanf.Koanf, koanfKey string) bool {
	switch strings.ToLower(os.Getenv(envKey)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return k.Bool(koanfKey)
}

// maskSecret hides all but the last four characters.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}

// maskURL strips credentials from a connection URL.
func maskURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "****"
	}
	if u.User != nil {
		u.User = url.UserPassword("****", "****")
	}
	return u.String()
}
