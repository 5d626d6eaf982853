// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"fmt"
	"time"
)

// Config contains all tunables of the recommendation pipeline.
type Config struct {
	// HighRatingThreshold is the minimum rating (1-5) counted as a strong signal.
	HighRatingThreshold int `json:"high_rating_threshold"`

	// RatingWeightMultiplier is the per-genre weight of a high rating.
	// A passive watch contributes 1.
	RatingWeightMultiplier int `json:"rating_weight_multiplier"`

	// CandidatePoolLimit caps the number of candidates read from the source.
	CandidatePoolLimit int `json:"candidate_pool_limit"`

	// AICandidateLimit caps how many candidates are shown to the AI ranker.
	AICandidateLimit int `json:"ai_candidate_limit"`

	// AIRequestCount is how many picks the AI ranker is asked for.
	AIRequestCount int `json:"ai_request_count"`

	// TargetResultSize is the maximum length of the final list.
	TargetResultSize int `json:"target_result_size"`

	// FallbackMinimumAcceptable is the smallest AI answer considered sufficient.
	FallbackMinimumAcceptable int `json:"fallback_minimum_acceptable"`

	// MinQuality is the candidate quality floor when an AI ranker is configured.
	MinQuality float64 `json:"min_quality"`

	// FallbackOnlyMinQuality is the quality floor when no AI ranker is configured.
	FallbackOnlyMinQuality float64 `json:"fallback_only_min_quality"`

	// TopGenreCount is how many genres are reported and used for overlap.
	TopGenreCount int `json:"top_genre_count"`

	// HistoryPromptLimit bounds the recent watches included in the AI prompt.
	HistoryPromptLimit int `json:"history_prompt_limit"`

	// MetadataConcurrency bounds parallel genre lookups.
	MetadataConcurrency int `json:"metadata_concurrency"`

	// RankerTimeout bounds the single AI ranking call.
	RankerTimeout time.Duration `json:"ranker_timeout"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
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
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.HighRatingThreshold < 1 || c.HighRatingThreshold > 5 {
		return fmt.Errorf("high_rating_threshold must be in [1, 5], got %d", c.HighRatingThreshold)
	}
	if c.RatingWeightMultiplier < 1 {
		return fmt.Errorf("rating_weight_multiplier must be positive, got %d", c.RatingWeightMultiplier)
	}
	if c.TargetResultSize < 1 {
		return fmt.Errorf("target_result_size must be positive, got %d", c.TargetResultSize)
	}
	if c.CandidatePoolLimit < c.TargetResultSize {
		return fmt.Errorf("candidate_pool_limit must be >= target_result_size, got %d < %d",
			c.CandidatePoolLimit, c.TargetResultSize)
	}
	if c.AICandidateLimit < 1 || c.AICandidateLimit > c.CandidatePoolLimit {
		return fmt.Errorf("ai_candidate_limit must be in [1, %d], got %d", c.CandidatePoolLimit, c.AICandidateLimit)
	}
	if c.AIRequestCount < 1 {
		return fmt.Errorf("ai_request_count must be positive, got %d", c.AIRequestCount)
	}
	if c.FallbackMinimumAcceptable < 0 || c.FallbackMinimumAcceptable > c.TargetResultSize {
		return fmt.Errorf("fallback_minimum_acceptable must be in [0, %d], got %d",
			c.TargetResultSize, c.FallbackMinimumAcceptable)
	}
	if c.MinQuality < 0 || c.FallbackOnlyMinQuality < 0 {
		return fmt.Errorf("quality floors must be non-negative, got %.1f and %.1f", c.MinQuality, c.FallbackOnlyMinQuality)
	}
	if c.TopGenreCount < 1 {
		return fmt.Errorf("top_genre_count must be positive, got %d", c.TopGenreCount)
	}
	if c.HistoryPromptLimit < 0 {
		return fmt.Errorf("history_prompt_limit must be non-negative, got %d", c.HistoryPromptLimit)
	}
	if c.MetadataConcurrency < 1 {
		return fmt.Errorf("metadata_concurrency must be positive, got %d", c.MetadataConcurrency)
	}
	if c.RankerTimeout <= 0 {
		return fmt.Errorf("ranker_timeout must be positive, got %v", c.RankerTimeout)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
