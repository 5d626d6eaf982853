// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package database

import (
	"context"
	"fmt"
	"time"
)

// createTables creates the tables and indexes if they do not exist.
func (db *DB) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	for _, query := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

var tableCreationQueries = []string{
	`CREATE TABLE IF NOT EXISTS content (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		type TEXT NOT NULL,
		genres TEXT,
		year INTEGER,
		imdb_rating DOUBLE,
		overview TEXT,
		poster_url TEXT,
		tmdb_id INTEGER
	)`,

	`CREATE TABLE IF NOT EXISTS user_lists (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		is_default BOOLEAN NOT NULL DEFAULT false
	)`,

	`CREATE TABLE IF NOT EXISTS list_items (
		list_id TEXT NOT NULL,
		content_id TEXT NOT NULL,
		watched BOOLEAN NOT NULL DEFAULT false,
		watched_at TIMESTAMP,
		not_interested BOOLEAN NOT NULL DEFAULT false,
		position INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (list_id, content_id)
	)`,

	`CREATE TABLE IF NOT EXISTS user_ratings (
		user_id TEXT NOT NULL,
		tmdb_id INTEGER NOT NULL,
		content_type TEXT NOT NULL,
		rating INTEGER NOT NULL,
		PRIMARY KEY (user_id, tmdb_id, content_type)
	)`,

	`CREATE TABLE IF NOT EXISTS watched_episodes (
		user_id TEXT NOT NULL,
		tmdb_id INTEGER NOT NULL,
		season_number INTEGER NOT NULL,
		episode_number INTEGER NOT NULL,
		watched_at TIMESTAMP,
		PRIMARY KEY (user_id, tmdb_id, season_number, episode_number)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_content_rating ON content(imdb_rating)`,
	`CREATE INDEX IF NOT EXISTS idx_content_tmdb ON content(tmdb_id, type)`,
	`CREATE INDEX IF NOT EXISTS idx_user_lists_user ON user_lists(user_id, name)`,
	`CREATE INDEX IF NOT EXISTS idx_watched_episodes_user ON watched_episodes(user_id)`,
}
