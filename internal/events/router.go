// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/rs/zerolog"
	"github.com/tomtom215/reelpick/internal/metrics"
)

// Invalidator drops cached state for a user. Returns whether anything was
// cached.
type Invalidator interface {
	Invalidate(userID string) bool
}

// RouterConfig tunes the consumer router.
type RouterConfig struct {
	CloseTimeout         time.Duration
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
}

// DefaultRouterConfig returns production defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     5 * time.Second,
		RetryMultiplier:      2.0,
	}
}

// handlerName identifies the invalidation consumer in Watermill logs.
const handlerName = "history-invalidator"

// Router consumes history events and invalidates cached results.
type Router struct {
	router      *message.Router
	invalidator Invalidator
	logger      zerolog.Logger
}

// NewRouter wires the invalidation handler onto bus's topic.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRouter(cfg RouterConfig, bus *Bus, invalidator Invalidator, logger zerolog.Logger) (*Router, error) {
	wmRouter, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, bus.logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	wmRouter.AddMiddleware(middleware.Recoverer)
	wmRouter.AddMiddleware(middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      cfg.RetryMultiplier,
		Logger:          bus.logger,
	}.Middleware)

	r := &Router{
		router:      wmRouter,
		invalidator: invalidator,
		logger:      logger.With().Str("component", "events_router").Logger(),
	}
	wmRouter.AddConsumerHandler(handlerName, bus.Topic(), bus.Subscriber(), r.handle)
	return r, nil
}

// handle never returns an error for malformed payloads; redelivery would
// not fix them.
func (r *Router) handle(msg *message.Message) error {
	event, err := decodeEvent(msg.Payload)
	if err != nil {
		metrics.HistoryEventsConsumed.WithLabelValues("malformed").Inc()
		r.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping malformed history event")
		return nil
	}

	result := "miss"
	if r.invalidator.Invalidate(event.UserID) {
		result = "invalidated"
	}
	metrics.HistoryEventsConsumed.WithLabelValues(result).Inc()

	r.logger.Debug().
		Str("user_id", event.UserID).
		Str("kind", string(event.Kind)).
		Str("result", result).
		Msg("History event consumed")
	return nil
}

// Run blocks until ctx is canceled or Close is called.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running is closed once all handlers are subscribed.
func (r *Router) Running() chan struct{} {
	return r.router.Running()
}

// Close stops the router and waits for in-flight handlers.
func (r *Router) Close() error {
	return r.router.Close()
}
