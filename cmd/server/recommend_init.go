// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tomtom215/reelpick/internal/cache"
	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/database"
	"github.com/tomtom215/reelpick/internal/llm"
	"github.com/tomtom215/reelpick/internal/recommend"
	"github.com/tomtom215/reelpick/internal/tmdb"
)

// RecommendComponents holds the recommendation engine and its caches.
type RecommendComponents struct {
	Engine     *recommend.Engine
	Results    *cache.ResultCache
	GenreStore *cache.GenreStore
}

// Close releases the persistent genre store.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (c *RecommendComponents) Close(logger zerolog.Logger) {
	if c.GenreStore == nil {
		return
	}
	if err := c.GenreStore.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing genre store")
	}
}

// initRecommend wires the store, metadata resolver and ranking model into
// the engine.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func initRecommend(cfg *config.Config, db *database.DB, logger zerolog.Logger) (*RecommendComponents, error) {
	engine, err := recommend.NewEngine(buildEngineConfig(&cfg.Recommend), logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	engine.SetHistorySource(db)
	engine.SetCandidateSource(db)

	comps := &RecommendComponents{
		Engine:  engine,
		Results: cache.NewResultCache(cfg.Cache.ResultSize, cfg.Cache.ResultTTL),
	}

	if cfg.TMDB.Enabled() {
		if cfg.Cache.GenreStorePath != "" {
			store, err := cache.OpenGenreStore(cfg.Cache.GenreStorePath, cfg.Cache.GenreTTL)
			if err != nil {
				return nil, fmt.Errorf("open genre store: %w", err)
			}
			comps.GenreStore = store
		}
		resolver := cache.NewCachedResolver(
			tmdb.NewClient(&cfg.TMDB),
			cfg.Cache.GenreSize,
			cfg.Cache.GenreTTL,
			comps.GenreStore,
			logger,
		)
		engine.SetMetadataResolver(resolver)
	} else {
		logger.Warn().Msg("TMDB_API_KEY not set, series genres will not be resolved")
	}

	model, err := llm.New(&cfg.AI)
	if err != nil {
		comps.Close(logger)
		return nil, fmt.Errorf("create ranking model: %w", err)
	}
	if model != nil {
		engine.SetRankingModel(model)
		logger.Info().Str("provider", cfg.AI.Provider).Str("model", cfg.AI.Model).Msg("AI ranking enabled")
	} else {
		logger.Info().Msg("AI ranking disabled, using genre-overlap fallback")
	}

	return comps, nil
}

// buildEngineConfig maps the koanf section onto the engine config.
func buildEngineConfig(rc *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		HighRatingThreshold:       rc.HighRatingThreshold,
		RatingWeightMultiplier:    rc.RatingWeightMultiplier,
		CandidatePoolLimit:        rc.CandidatePoolLimit,
		AICandidateLimit:          rc.AICandidateLimit,
		AIRequestCount:            rc.AIRequestCount,
		TargetResultSize:          rc.TargetResultSize,
		FallbackMinimumAcceptable: rc.FallbackMinimumAcceptable,
		MinQuality:                rc.MinQuality,
		FallbackOnlyMinQuality:    rc.FallbackOnlyMinQuality,
		TopGenreCount:             rc.TopGenreCount,
		HistoryPromptLimit:        rc.HistoryPromptLimit,
		MetadataConcurrency:       rc.MetadataConcurrency,
		RankerTimeout:             rc.RankerTimeout,
	}
}
