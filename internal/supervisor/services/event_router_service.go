// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package services

import (
	"context"
	"errors"
	"fmt"
)

// EventRouter is a message router that runs until its context ends.
type EventRouter interface {
	Run(ctx context.Context) error
	Close() error
}

// RouterFactory builds a fresh router. Watermill routers cannot be rerun
// after they stop, so every (re)start asks for a new one.
type RouterFactory func() (EventRouter, error)

// EventRouterService runs the history-event consumer under supervision.
type EventRouterService struct {
	factory RouterFactory
}

// NewEventRouterService creates the service.
func NewEventRouterService(factory RouterFactory) *EventRouterService {
	return &EventRouterService{factory: factory}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	router, err := s.factory()
	if err != nil {
		return fmt.Errorf("build event router: %w", err)
	}

	err = router.Run(ctx)
	if ctx.Err() != nil {
		// Run returns after ctx ends; any close error is secondary.
		_ = router.Close()
		return ctx.Err()
	}
	if err == nil {
		err = errors.New("event router stopped unexpectedly")
	}
	_ = router.Close()
	return fmt.Errorf("event router: %w", err)
}

// String names the service in supervisor logs.
func (s *EventRouterService) String() string {
	return "event-router"
}
