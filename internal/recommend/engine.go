// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Note: This package has no dependencies on other internal packages.
// Storage, metadata and model adapters plug in through interfaces.

var (
	// ErrNotConfigured is returned when a required collaborator is missing.
	ErrNotConfigured = errors.New("recommendation engine not configured")

	// ErrWatchedSetUnavailable is returned when the watched list cannot be
	// read. Without it watched items cannot be excluded.
	ErrWatchedSetUnavailable = errors.New("watched list unavailable")
)

// Engine runs the recommendation pipeline. It is safe for concurrent use
// once its collaborators are set.
type Engine struct {
	config *Config
	logger zerolog.Logger

	history    HistorySource
	candidates CandidateSource
	resolver   MetadataResolver
	model      RankingModel
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// SetHistorySource sets the viewing history reader.
func (e *Engine) SetHistorySource(h HistorySource) { e.history = h }

// SetCandidateSource sets the candidate pool reader.
func (e *Engine) SetCandidateSource(c CandidateSource) { e.candidates = c }

// SetMetadataResolver sets the genre resolver. Optional.
func (e *Engine) SetMetadataResolver(r MetadataResolver) { e.resolver = r }

// SetRankingModel enables AI ranking. A nil model selects the fallback ranker.
func (e *Engine) SetRankingModel(m RankingModel) { e.model = m }

// AIEnabled reports whether an AI ranking model is configured.
func (e *Engine) AIEnabled() bool { return e.model != nil }

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config { return e.config.Clone() }

// userHistory is one user's signals as read from the store.
type userHistory struct {
	watches []WatchSignal
	ratings []RatingSignal
	watched []ContentRef
}

// GetRecommendations produces the recommendation list for userID.
// Errors are returned only when the watched list or the candidate pool
// cannot be read (or collaborators are missing). Watch and rating feed
// failures degrade the result instead.
func (e *Engine) GetRecommendations(ctx context.Context, userID string) (*Result, error) {
	if e.history == nil || e.candidates == nil {
		return nil, ErrNotConfigured
	}

	start := time.Now()
	logger := e.logger.With().Str("user_id", userID).Logger()

	hist, err := e.loadHistory(ctx, userID, logger)
	if err != nil {
		return nil, err
	}
	if len(hist.watches) == 0 && len(hist.ratings) == 0 {
		logger.Debug().Msg("no history, skipping ranking")
		return coldStart(), nil
	}

	extractor := NewAffinityExtractor(e.config, e.resolver, logger)
	affinity := extractor.Extract(ctx, hist.watches, hist.ratings)

	excluded := NewExclusionSet(hist.watched)
	minQuality := e.config.FallbackOnlyMinQuality
	if e.model != nil {
		minQuality = e.config.MinQuality
	}

	pool, err := NewPoolBuilder(e.config, e.candidates).Build(ctx, minQuality, excluded)
	if err != nil {
		return nil, fmt.Errorf("build candidate pool: %w", err)
	}

	ranker := e.ranker(logger)
	ranking := ranker.Rank(ctx, &RankInput{
		Affinity:    affinity,
		Watches:     hist.watches,
		HighRatings: e.highRatings(hist.ratings),
		Pool:        pool,
	})

	result := Assemble(e.config, ranking, affinity, excluded)

	logger.Info().
		Str("ranker", ranker.Name()).
		Str("mode", string(result.Mode)).
		Int("watch_signals", len(hist.watches)).
		Int("rating_signals", len(hist.ratings)).
		Int("pool", len(pool)).
		Int("ai_accepted", ranking.AIAccepted).
		Int("returned", len(result.Recommendations)).
		Dur("duration", time.Since(start)).
		Msg("recommendations generated")

	return result, nil
}

func (e *Engine) ranker(logger zerolog.Logger) Ranker { //nolint:gocritic // zerolog by value
	if e.model == nil {
		return NewFallbackRanker(e.config)
	}
	return NewAIRanker(e.config, e.model, logger)
}

func (e *Engine) highRatings(ratings []RatingSignal) []RatingSignal {
	var high []RatingSignal
	for _, r := range ratings {
		if r.Rating >= e.config.HighRatingThreshold {
			high = append(high, r)
		}
	}
	return high
}

// loadHistory reads the three history feeds concurrently. Failing watch or
// rating feeds are logged and treated as empty; a failing watched list is
// returned as ErrWatchedSetUnavailable.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) loadHistory(ctx context.Context, userID string, logger zerolog.Logger) (userHistory, error) {
	var h userHistory
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		watches, err := e.history.ListWatchSignals(gctx, userID)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to read watch signals")
			return nil
		}
		h.watches = watches
		return nil
	})
	g.Go(func() error {
		ratings, err := e.history.ListRatingSignals(gctx, userID)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to read rating signals")
			return nil
		}
		h.ratings = ratings
		return nil
	})
	g.Go(func() error {
		watched, err := e.history.ListWatchedListMembership(gctx, userID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWatchedSetUnavailable, err)
		}
		h.watched = watched
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("failed to read watched list")
		return userHistory{}, err
	}

	// Watch signals are excluded too; they may come from episodes outside
	// the watched list.
	for i := range h.watches {
		if h.watches[i].Ref.ID != "" {
			h.watched = append(h.watched, h.watches[i].Ref)
		}
	}
	return h, nil
}
