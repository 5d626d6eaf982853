// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/reelpick/internal/metrics"
	"github.com/tomtom215/reelpick/internal/recommend"
)

// ListWatchSignals implements recommend.HistorySource.
// Watched-list items come first (newest first), followed by series known
// only from watched episodes. The total is capped at HistoryLimit.
func (db *DB) ListWatchSignals(ctx context.Context, userID string) ([]recommend.WatchSignal, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start := time.Now()
	signals, err := db.listWatchedItems(ctx, userID)
	if err == nil {
		signals, err = db.appendEpisodeSignals(ctx, userID, signals)
	}
	metrics.RecordDBQuery("watch_signals", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return signals, nil
}

func (db *DB) listWatchedItems(ctx context.Context, userID string) ([]recommend.WatchSignal, error) {
	query := `
		SELECT
			c.id,
			COALESCE(c.tmdb_id, 0),
			c.type,
			c.title,
			COALESCE(c.year, 0),
			COALESCE(c.genres, ''),
			li.watched_at
		FROM user_lists ul
		JOIN list_items li ON li.list_id = ul.id
		JOIN content c ON c.id = li.content_id
		WHERE ul.user_id = ?
		  AND ul.name = ?
		  AND li.watched = true
		ORDER BY li.watched_at DESC NULLS LAST, li.position
		LIMIT ?
	`

	rows, err := db.conn.QueryContext(ctx, query, userID, db.cfg.WatchedListName, db.cfg.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("query watched items: %w", err)
	}
	defer rows.Close()

	signals := make([]recommend.WatchSignal, 0, db.cfg.HistoryLimit)
	for rows.Next() {
		var (
			s         recommend.WatchSignal
			medium    string
			genres    string
			watchedAt sql.NullTime
		)
		if err := rows.Scan(&s.Ref.ID, &s.Ref.ExternalID, &medium, &s.Title, &s.Year, &genres, &watchedAt); err != nil {
			return nil, fmt.Errorf("scan watched item: %w", err)
		}
		s.Ref.Medium = recommend.Medium(medium)
		s.Genres = splitGenres(genres)
		if watchedAt.Valid {
			s.WatchedAt = watchedAt.Time
		}
		signals = append(signals, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watched items: %w", err)
	}
	return signals, nil
}

// appendEpisodeSignals adds one signal per series the user has watched
// episodes of, newest first, skipping series already present.
func (db *DB) appendEpisodeSignals(ctx context.Context, userID string, signals []recommend.WatchSignal) ([]recommend.WatchSignal, error) {
	remaining := db.cfg.HistoryLimit - len(signals)
	if remaining <= 0 {
		return signals, nil
	}

	seen := make(map[int]struct{}, len(signals))
	for _, s := range signals {
		if s.Ref.Medium == recommend.MediumSeries && s.Ref.ExternalID != 0 {
			seen[s.Ref.ExternalID] = struct{}{}
		}
	}

	query := `
		WITH series AS (
			SELECT tmdb_id, MAX(watched_at) AS last_watched
			FROM watched_episodes
			WHERE user_id = ?
			GROUP BY tmdb_id
		)
		SELECT
			s.tmdb_id,
			COALESCE(c.id, ''),
			COALESCE(c.title, ''),
			COALESCE(c.year, 0),
			COALESCE(c.genres, ''),
			s.last_watched
		FROM series s
		LEFT JOIN content c ON c.tmdb_id = s.tmdb_id AND c.type = 'tv'
		ORDER BY s.last_watched DESC NULLS LAST, s.tmdb_id
	`

	rows, err := db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query watched series: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s           recommend.WatchSignal
			genres      string
			lastWatched sql.NullTime
		)
		if err := rows.Scan(&s.Ref.ExternalID, &s.Ref.ID, &s.Title, &s.Year, &genres, &lastWatched); err != nil {
			return nil, fmt.Errorf("scan watched series: %w", err)
		}
		if _, dup := seen[s.Ref.ExternalID]; dup || remaining == 0 {
			continue
		}
		seen[s.Ref.ExternalID] = struct{}{}

		s.Ref.Medium = recommend.MediumSeries
		s.Genres = splitGenres(genres)
		if lastWatched.Valid {
			s.WatchedAt = lastWatched.Time
		}
		signals = append(signals, s)
		remaining--
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watched series: %w", err)
	}
	return signals, nil
}

// ListRatingSignals implements recommend.HistorySource.
func (db *DB) ListRatingSignals(ctx context.Context, userID string) ([]recommend.RatingSignal, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT
			r.tmdb_id,
			r.content_type,
			r.rating,
			COALESCE(c.id, '')
		FROM user_ratings r
		LEFT JOIN content c ON c.tmdb_id = r.tmdb_id AND c.type = r.content_type
		WHERE r.user_id = ?
		ORDER BY r.rating DESC, r.tmdb_id
	`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		metrics.RecordDBQuery("rating_signals", time.Since(start), err)
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	ratings := []recommend.RatingSignal{}
	for rows.Next() {
		var (
			r      recommend.RatingSignal
			medium string
		)
		if err := rows.Scan(&r.Ref.ExternalID, &medium, &r.Rating, &r.Ref.ID); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		r.Ref.Medium = recommend.Medium(medium)
		ratings = append(ratings, r)
	}
	err = rows.Err()
	metrics.RecordDBQuery("rating_signals", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}

// ListWatchedListMembership implements recommend.HistorySource.
// Every watched item of the watched list is returned, not only the most
// recent HistoryLimit.
func (db *DB) ListWatchedListMembership(ctx context.Context, userID string) ([]recommend.ContentRef, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT c.id, COALESCE(c.tmdb_id, 0), c.type
		FROM user_lists ul
		JOIN list_items li ON li.list_id = ul.id
		JOIN content c ON c.id = li.content_id
		WHERE ul.user_id = ?
		  AND ul.name = ?
		  AND li.watched = true
	`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, userID, db.cfg.WatchedListName)
	if err != nil {
		metrics.RecordDBQuery("watched_membership", time.Since(start), err)
		return nil, fmt.Errorf("query watched membership: %w", err)
	}
	defer rows.Close()

	refs := []recommend.ContentRef{}
	for rows.Next() {
		var (
			ref    recommend.ContentRef
			medium string
		)
		if err := rows.Scan(&ref.ID, &ref.ExternalID, &medium); err != nil {
			return nil, fmt.Errorf("scan watched membership: %w", err)
		}
		ref.Medium = recommend.Medium(medium)
		refs = append(refs, ref)
	}
	err = rows.Err()
	metrics.RecordDBQuery("watched_membership", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("iterate watched membership: %w", err)
	}
	return refs, nil
}
