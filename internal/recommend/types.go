// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"context"
	"time"
)

// Medium is the kind of content a signal or candidate refers to.
type Medium string

const (
	// MediumMovie is a feature film.
	MediumMovie Medium = "movie"
	// MediumSeries is a television series.
	MediumSeries Medium = "tv"
)

// Valid reports whether m is a known medium.
func (m Medium) Valid() bool {
	return m == MediumMovie || m == MediumSeries
}

// ContentRef identifies a piece of content.
// ID is the catalog row identifier; ExternalID is the TMDB identifier.
// Either may be zero depending on where the reference came from.
type ContentRef struct {
	ID         string `json:"id,omitempty"`
	ExternalID int    `json:"tmdb_id,omitempty"`
	Medium     Medium `json:"medium"`
}

// WatchSignal is one observed unit of consumption.
type WatchSignal struct {
	Ref       ContentRef `json:"ref"`
	Title     string     `json:"title,omitempty"`
	Year      int        `json:"year,omitempty"`
	Genres    []string   `json:"genres,omitempty"`
	WatchedAt time.Time  `json:"watched_at,omitempty"`
}

// RatingSignal is an explicit user rating on a 1-5 scale.
type RatingSignal struct {
	Ref    ContentRef `json:"ref"`
	Rating int        `json:"rating"`
}

// CandidateItem is content eligible for recommendation.
type CandidateItem struct {
	ID         string   `json:"id"`
	ExternalID int      `json:"tmdbId,omitempty"`
	Title      string   `json:"title"`
	Type       Medium   `json:"type"`
	Genres     []string `json:"genres"`
	Year       int      `json:"year,omitempty"`
	Quality    float64  `json:"imdbRating"`
	Overview   string   `json:"overview,omitempty"`
	PosterURL  string   `json:"posterUrl,omitempty"`
}

// HasAnyGenre reports whether the item carries at least one of genres.
func (c *CandidateItem) HasAnyGenre(genres []string) bool {
	for _, g := range c.Genres {
		for _, want := range genres {
			if g == want {
				return true
			}
		}
	}
	return false
}

// Mode describes which ranking path produced a result.
type Mode string

const (
	// ModeNone means no ranking happened (cold start).
	ModeNone Mode = "none"
	// ModeAI means the AI ranker supplied enough items.
	ModeAI Mode = "ai"
	// ModeAIInsufficient means the AI answer was accepted but short of the
	// minimum and the fallback supplied the rest.
	ModeAIInsufficient Mode = "ai_insufficient"
	// ModeFallback means only the deterministic genre-overlap ranking ran.
	ModeFallback Mode = "fallback"
)

// Result is the response payload of a recommendation request.
type Result struct {
	Recommendations []CandidateItem `json:"recommendations"`
	TopGenres       []string        `json:"topGenres,omitempty"`
	PreferredType   string          `json:"preferredType,omitempty"`
	Message         string          `json:"message,omitempty"`

	// Mode is reported to metrics and logs only.
	Mode Mode `json:"-"`
}

// HistorySource reads a user's viewing history from the user-data store.
// Implementations must return empty slices (not errors) for new users.
type HistorySource interface {
	// ListWatchSignals returns watch signals, newest first.
	ListWatchSignals(ctx context.Context, userID string) ([]WatchSignal, error)

	// ListRatingSignals returns every explicit rating of the user.
	ListRatingSignals(ctx context.Context, userID string) ([]RatingSignal, error)

	// ListWatchedListMembership returns every item the user marked watched.
	ListWatchedListMembership(ctx context.Context, userID string) ([]ContentRef, error)
}

// MetadataResolver looks up catalog genres for a content reference.
// A failed lookup returns an error; callers treat it as "no genres".
type MetadataResolver interface {
	GetGenres(ctx context.Context, ref ContentRef) ([]string, error)
}

// CandidateSource queries quality-filtered candidate content.
type CandidateSource interface {
	QueryCandidates(ctx context.Context, minQuality float64, limit int, excludeIDs []string) ([]CandidateItem, error)
}
