// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelpick/config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults (layer 1).
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    45 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		Database: DatabaseConfig{
			Path:            "/data/reelpick.duckdb",
			Threads:         0,
			WatchedListName: "Déjà vu",
			HistoryLimit:    20,
		},
		Security: SecurityConfig{
			JWTSecret:       "",
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
		},
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			Language:          "fr-FR",
			Timeout:           5 * time.Second,
			RequestsPerSecond: 20,
			Burst:             10,
		},
		AI: AIConfig{
			Provider:        "",
			MaxOutputTokens: 1024,
		},
		Recommend: RecommendConfig{
			HighRatingThreshold:       4,
			RatingWeightMultiplier:    2,
			CandidatePoolLimit:        100,
			AICandidateLimit:          50,
			AIRequestCount:            8,
			TargetResultSize:          10,
			FallbackMinimumAcceptable: 6,
			MinQuality:                6.5,
			FallbackOnlyMinQuality:    7.0,
			TopGenreCount:             5,
			HistoryPromptLimit:        10,
			MetadataConcurrency:       4,
			RankerTimeout:             20 * time.Second,
		},
		Cache: CacheConfig{
			ResultTTL:  10 * time.Minute,
			ResultSize: 10000,
			GenreTTL:   24 * time.Hour,
			GenreSize:  50000,
		},
		Events: EventsConfig{
			Transport: "memory",
			Topic:     "history.changed",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from three layers:
//  1. built-in defaults
//  2. optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. mapped environment variables
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are split on commas when they arrive as strings (env).
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"http_request_timeout":  "server.request_timeout",

	"duckdb_path":         "database.path",
	"duckdb_threads":      "database.threads",
	"watched_list_name":   "database.watched_list_name",
	"watch_history_limit": "database.history_limit",

	"jwt_secret":          "security.jwt_secret",
	"jwt_issuer":          "security.jwt_issuer",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"tmdb_api_key":  "tmdb.api_key",
	"tmdb_base_url": "tmdb.base_url",
	"tmdb_language": "tmdb.language",
	"tmdb_timeout":  "tmdb.timeout",
	"tmdb_rps":      "tmdb.requests_per_second",
	"tmdb_burst":    "tmdb.burst",

	"ai_provider":          "ai.provider",
	"ai_api_key":           "ai.api_key",
	"ai_base_url":          "ai.base_url",
	"ai_model":             "ai.model",
	"ai_max_output_tokens": "ai.max_output_tokens",

	"recommend_high_rating_threshold":     "recommend.high_rating_threshold",
	"recommend_rating_weight_multiplier":  "recommend.rating_weight_multiplier",
	"recommend_candidate_pool_limit":      "recommend.candidate_pool_limit",
	"recommend_ai_candidate_limit":        "recommend.ai_candidate_limit",
	"recommend_ai_request_count":          "recommend.ai_request_count",
	"recommend_target_result_size":        "recommend.target_result_size",
	"recommend_fallback_minimum":          "recommend.fallback_minimum_acceptable",
	"recommend_min_quality":               "recommend.min_quality",
	"recommend_fallback_only_min_quality": "recommend.fallback_only_min_quality",
	"recommend_top_genre_count":           "recommend.top_genre_count",
	"recommend_history_prompt_limit":      "recommend.history_prompt_limit",
	"recommend_metadata_concurrency":      "recommend.metadata_concurrency",
	"recommend_ranker_timeout":            "recommend.ranker_timeout",

	"cache_result_ttl":  "cache.result_ttl",
	"cache_result_size": "cache.result_size",
	"cache_genre_ttl":   "cache.genre_ttl",
	"cache_genre_size":  "cache.genre_size",
	"genre_store_path":  "cache.genre_store_path",

	"events_transport": "events.transport",
	"nats_url":         "events.nats_url",
	"events_topic":     "events.topic",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
