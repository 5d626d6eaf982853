// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package config loads service configuration from defaults, an optional
// YAML file and environment variables (highest priority).
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/reelpick/internal/validation"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Security  SecurityConfig  `koanf:"security"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	AI        AIConfig        `koanf:"ai"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Events    EventsConfig    `koanf:"events"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	RequestTimeout  time.Duration `koanf:"request_timeout" validate:"gt=0"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig configures the DuckDB user-data store.
type DatabaseConfig struct {
	// Path is the DuckDB file. ":memory:" is accepted for development.
	Path string `koanf:"path" validate:"required"`

	// Threads bounds DuckDB worker threads (0 = DuckDB default).
	Threads int `koanf:"threads" validate:"gte=0"`

	// WatchedListName is the name of the per-user "already seen" list.
	WatchedListName string `koanf:"watched_list_name" validate:"required"`

	// HistoryLimit bounds the watched-list rows read as watch signals.
	HistoryLimit int `koanf:"history_limit" validate:"gte=1"`
}

// SecurityConfig configures authentication and HTTP protections.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	JWTIssuer         string        `koanf:"jwt_issuer"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"gte=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// TMDBConfig configures the catalog metadata client.
type TMDBConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url" validate:"required,url"`
	Language          string        `koanf:"language" validate:"required"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	Burst             int           `koanf:"burst" validate:"gte=1"`
}

// Enabled reports whether genre lookups are possible.
func (t *TMDBConfig) Enabled() bool { return t.APIKey != "" }

// AIConfig configures the optional ranking model.
type AIConfig struct {
	// Provider is "openai", "anthropic" or empty (AI ranking disabled).
	Provider        string `koanf:"provider" validate:"omitempty,oneof=openai anthropic"`
	APIKey          string `koanf:"api_key"`
	BaseURL         string `koanf:"base_url" validate:"omitempty,url"`
	Model           string `koanf:"model"`
	MaxOutputTokens int64  `koanf:"max_output_tokens" validate:"gte=64"`
}

// Enabled reports whether AI ranking is configured.
func (a *AIConfig) Enabled() bool { return a.Provider != "" && a.APIKey != "" }

// RecommendConfig mirrors recommend.Config with koanf keys.
type RecommendConfig struct {
	HighRatingThreshold       int           `koanf:"high_rating_threshold"`
	RatingWeightMultiplier    int           `koanf:"rating_weight_multiplier"`
	CandidatePoolLimit        int           `koanf:"candidate_pool_limit"`
	AICandidateLimit          int           `koanf:"ai_candidate_limit"`
	AIRequestCount            int           `koanf:"ai_request_count"`
	TargetResultSize          int           `koanf:"target_result_size"`
	FallbackMinimumAcceptable int           `koanf:"fallback_minimum_acceptable"`
	MinQuality                float64       `koanf:"min_quality"`
	FallbackOnlyMinQuality    float64       `koanf:"fallback_only_min_quality"`
	TopGenreCount             int           `koanf:"top_genre_count"`
	HistoryPromptLimit        int           `koanf:"history_prompt_limit"`
	MetadataConcurrency       int           `koanf:"metadata_concurrency"`
	RankerTimeout             time.Duration `koanf:"ranker_timeout"`
}

// CacheConfig configures result and metadata caching.
type CacheConfig struct {
	ResultTTL  time.Duration `koanf:"result_ttl" validate:"gte=0"`
	ResultSize int           `koanf:"result_size" validate:"gte=1"`
	GenreTTL   time.Duration `koanf:"genre_ttl" validate:"gt=0"`
	GenreSize  int           `koanf:"genre_size" validate:"gte=1"`

	// GenreStorePath enables the persistent genre store when non-empty.
	GenreStorePath string `koanf:"genre_store_path"`
}

// EventsConfig configures the history-change event bus.
type EventsConfig struct {
	Transport string `koanf:"transport" validate:"oneof=memory nats"`
	NATSURL   string `koanf:"nats_url"`
	Topic     string `koanf:"topic" validate:"required"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// minJWTSecretLength matches the HS256 key size.
const minJWTSecretLength = 32

// Validate checks tag rules and cross-field constraints.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("security.jwt_secret must be at least %d characters", minJWTSecretLength)
	}

	if c.AI.Provider != "" && c.AI.APIKey == "" {
		return errors.New("ai.api_key is required when ai.provider is set")
	}
	if c.AI.Provider != "" && c.AI.Model == "" {
		return errors.New("ai.model is required when ai.provider is set")
	}

	if c.Events.Transport == "nats" && c.Events.NATSURL == "" {
		return errors.New("events.nats_url is required for the nats transport")
	}

	return nil
}
