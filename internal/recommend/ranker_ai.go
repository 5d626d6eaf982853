// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// RankingModel is an external model able to answer a tool-calling prompt.
// Implementations live outside this package (OpenAI, Anthropic).
type RankingModel interface {
	// Name identifies the provider and model for logs.
	Name() string

	// Complete sends one prompt. It must honor ctx cancellation.
	Complete(ctx context.Context, p Prompt) (*Completion, error)
}

// AIRanker asks a RankingModel to choose from the pool and pads short or
// failed answers with the FallbackRanker.
type AIRanker struct {
	config   *Config
	model    RankingModel
	fallback *FallbackRanker
	logger   zerolog.Logger
}

// NewAIRanker creates an AI-backed ranker.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAIRanker(cfg *Config, model RankingModel, logger zerolog.Logger) *AIRanker {
	return &AIRanker{
		config:   cfg,
		model:    model,
		fallback: NewFallbackRanker(cfg),
		logger:   logger,
	}
}

// Name implements Ranker.
func (r *AIRanker) Name() string { return "ai:" + r.model.Name() }

// Rank implements Ranker. A single model call is made, bounded by the
// ranker timeout. There is no retry.
func (r *AIRanker) Rank(ctx context.Context, in *RankInput) Ranking {
	offered := in.Pool
	if len(offered) > r.config.AICandidateLimit {
		offered = offered[:r.config.AICandidateLimit]
	}
	if len(offered) == 0 {
		return r.fallback.Rank(ctx, in)
	}

	callCtx, cancel := context.WithTimeout(ctx, r.config.RankerTimeout)
	defer cancel()

	start := time.Now()
	completion, err := r.model.Complete(callCtx, buildPrompt(r.config, in, offered))
	if err != nil {
		event := r.logger.Warn()
		if errors.Is(err, context.DeadlineExceeded) {
			event = event.Bool("timeout", true)
		}
		event.Err(err).
			Str("model", r.model.Name()).
			Dur("elapsed", time.Since(start)).
			Msg("ai ranking failed, using genre fallback")
		return r.fallback.Rank(ctx, in)
	}

	ids, strict, err := ParseSelection(completion)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("model", r.model.Name()).
			Msg("ai ranking reply unparseable, using genre fallback")
		return r.fallback.Rank(ctx, in)
	}

	accepted := acceptSelection(ids, offered, r.config.TargetResultSize)
	if discarded := len(ids) - len(accepted); discarded > 0 {
		r.logger.Debug().
			Int("returned", len(ids)).
			Int("discarded", discarded).
			Bool("strict", strict).
			Msg("discarded ai ids outside the candidate pool")
	}
	if len(accepted) == 0 {
		return r.fallback.Rank(ctx, in)
	}

	mode := ModeAI
	if len(accepted) < r.config.FallbackMinimumAcceptable {
		mode = ModeAIInsufficient
	}

	return Ranking{
		Items:      r.fallback.Pad(accepted, in.Pool, in.Affinity.TopGenres),
		Mode:       mode,
		AIAccepted: len(accepted),
	}
}
