// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// validConfig returns defaults plus the one required secret.
func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = testSecret
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.WatchedListName != "Déjà vu" {
		t.Errorf("Database.WatchedListName = %q", cfg.Database.WatchedListName)
	}
	if cfg.Cache.ResultTTL != 10*time.Minute {
		t.Errorf("Cache.ResultTTL = %v, want 10m", cfg.Cache.ResultTTL)
	}
	if cfg.AI.Enabled() {
		t.Error("AI must be disabled by default")
	}
	if cfg.TMDB.Enabled() {
		t.Error("TMDB must be disabled without an API key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing secret", func(c *Config) { c.Security.JWTSecret = "" }, "jwt_secret"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad provider", func(c *Config) { c.AI.Provider = "mystery" }, "ai.provider"},
		{"provider without key", func(c *Config) { c.AI.Provider = "openai"; c.AI.Model = "gpt-4.1-mini" }, "ai.api_key"},
		{"provider without model", func(c *Config) { c.AI.Provider = "anthropic"; c.AI.APIKey = "k" }, "ai.model"},
		{"nats without url", func(c *Config) { c.Events.Transport = "nats" }, "events.nats_url"},
		{"bad transport", func(c *Config) { c.Events.Transport = "kafka" }, "events.transport"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad tmdb url", func(c *Config) { c.TMDB.BaseURL = "not a url" }, "tmdb.base_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
tmdb:
  language: en-US
recommend:
  target_result_size: 12
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RECOMMEND_RANKER_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100 (env beats file)", cfg.Server.Port)
	}
	if cfg.TMDB.Language != "en-US" {
		t.Errorf("TMDB.Language = %q, want en-US (file beats default)", cfg.TMDB.Language)
	}
	if cfg.Recommend.TargetResultSize != 12 {
		t.Errorf("Recommend.TargetResultSize = %d, want 12", cfg.Recommend.TargetResultSize)
	}
	if cfg.Recommend.RankerTimeout != 5*time.Second {
		t.Errorf("Recommend.RankerTimeout = %v, want 5s", cfg.Recommend.RankerTimeout)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Database.WatchedListName != "Déjà vu" {
		t.Errorf("Database.WatchedListName = %q, want default", cfg.Database.WatchedListName)
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded without a JWT secret")
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
}
