// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/events"
	"github.com/tomtom215/reelpick/internal/supervisor/services"
)

// EventComponents holds the history event bus and a router factory for the
// supervisor.
type EventComponents struct {
	Bus       *events.Bus
	NewRouter services.RouterFactory
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func initEvents(cfg *config.Config, invalidator events.Invalidator, logger zerolog.Logger) (*EventComponents, error) {
	bus, err := events.NewBus(&cfg.Events, logger)
	if err != nil {
		return nil, fmt.Errorf("create event bus: %w", err)
	}

	logger.Info().
		Str("transport", bus.Transport()).
		Str("topic", bus.Topic()).
		Msg("History event bus ready")

	return &EventComponents{
		Bus: bus,
		NewRouter: func() (services.EventRouter, error) {
			r, err := events.NewRouter(events.DefaultRouterConfig(), bus, invalidator, logger)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
	}, nil
}
