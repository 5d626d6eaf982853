// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/reelpick/internal/metrics"
	"github.com/tomtom215/reelpick/internal/recommend"
)

// QueryCandidates implements recommend.CandidateSource: catalog rows with
// imdb_rating >= minQuality that are not in excludeIDs, best rated first.
func (db *DB) QueryCandidates(ctx context.Context, minQuality float64, limit int, excludeIDs []string) ([]recommend.CandidateItem, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var sb strings.Builder
	sb.WriteString(`
		SELECT
			id,
			COALESCE(tmdb_id, 0),
			title,
			type,
			COALESCE(genres, ''),
			COALESCE(year, 0),
			imdb_rating,
			COALESCE(overview, ''),
			COALESCE(poster_url, '')
		FROM content
		WHERE imdb_rating IS NOT NULL
		  AND imdb_rating >= ?`)

	args := make([]any, 0, len(excludeIDs)+2)
	args = append(args, minQuality)

	if len(excludeIDs) > 0 {
		sb.WriteString("\n\t\t  AND id NOT IN (")
		sb.WriteString(placeholders(len(excludeIDs)))
		sb.WriteString(")")
		for _, id := range excludeIDs {
			args = append(args, id)
		}
	}

	sb.WriteString("\n\t\tORDER BY imdb_rating DESC, id\n\t\tLIMIT ?")
	args = append(args, limit)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		metrics.RecordDBQuery("candidates", time.Since(start), err)
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	items := make([]recommend.CandidateItem, 0, limit)
	for rows.Next() {
		var (
			item   recommend.CandidateItem
			medium string
			genres string
		)
		if err := rows.Scan(&item.ID, &item.ExternalID, &item.Title, &medium, &genres,
			&item.Year, &item.Quality, &item.Overview, &item.PosterURL); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		item.Type = recommend.Medium(medium)
		item.Genres = splitGenres(genres)
		items = append(items, item)
	}
	err = rows.Err()
	metrics.RecordDBQuery("candidates", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return items, nil
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

// splitGenres parses the comma-separated genres column.
func splitGenres(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}
