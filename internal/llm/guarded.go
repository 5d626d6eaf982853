// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/reelpick/internal/breaker"
	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/metrics"
	"github.com/tomtom215/reelpick/internal/recommend"
)

// ErrUnknownProvider is returned by New for unsupported providers.
var ErrUnknownProvider = errors.New("llm: unknown provider")

// Guarded decorates a model with a circuit breaker and metrics.
type Guarded struct {
	next    recommend.RankingModel
	breaker *breaker.Breaker
}

// NewGuarded wraps next. Cancellation by the caller is not held against
// the provider; deadlines are, since a slow provider is a failing one.
func NewGuarded(next recommend.RankingModel) *Guarded {
	settings := breaker.DefaultSettings("ai-" + next.Name())
	settings.MinRequests = 5
	settings.Timeout = time.Minute
	settings.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, context.Canceled)
	}

	return &Guarded{next: next, breaker: breaker.New(settings)}
}

// Name implements recommend.RankingModel.
func (g *Guarded) Name() string { return g.next.Name() }

// Complete implements recommend.RankingModel.
func (g *Guarded) Complete(ctx context.Context, p recommend.Prompt) (*recommend.Completion, error) {
	start := time.Now()
	c, err := breaker.Execute(g.breaker, func() (*recommend.Completion, error) {
		return g.next.Complete(ctx, p)
	})

	outcome := "success"
	switch {
	case breaker.IsRejected(err):
		outcome = "rejected"
	case err != nil:
		outcome = "error"
	}
	metrics.RecordRankerCall(g.next.Name(), outcome, time.Since(start))

	return c, err
}

// New builds the configured ranking model. It returns nil when AI ranking
// is disabled.
func New(cfg *config.AIConfig) (recommend.RankingModel, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	var model recommend.RankingModel
	switch cfg.Provider {
	case "openai":
		model = NewOpenAI(cfg)
	case "anthropic":
		model = NewAnthropic(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	return NewGuarded(model), nil
}
