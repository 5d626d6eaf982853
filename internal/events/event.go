// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/tomtom215/reelpick/internal/validation"
)

// Kind is the type of history change.
type Kind string

const (
	KindWatched Kind = "watched"
	KindRated   Kind = "rated"
	KindEpisode Kind = "episode"
	KindList    Kind = "list"
)

// HistoryEvent announces that a user's viewing history changed.
type HistoryEvent struct {
	UserID     string    `json:"user_id" validate:"required,max=256"`
	Kind       Kind      `json:"kind" validate:"required,oneof=watched rated episode list"`
	ContentID  string    `json:"content_id,omitempty" validate:"omitempty,max=256"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Validate checks the event fields.
func (e *HistoryEvent) Validate() error {
	return validation.ValidateStruct(e)
}

func encodeEvent(e *HistoryEvent) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal history event: %w", err)
	}
	return data, nil
}

func decodeEvent(payload []byte) (*HistoryEvent, error) {
	var e HistoryEvent
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, fmt.Errorf("unmarshal history event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
