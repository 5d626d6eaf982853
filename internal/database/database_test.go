// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package database

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/recommend"
)

const watchedList = "Déjà vu"

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(&config.DatabaseConfig{
		Path:            memoryPath,
		WatchedListName: watchedList,
		HistoryLimit:    20,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustExec(t *testing.T, db *DB, query string, args ...any) {
	t.Helper()
	if _, err := db.conn.ExecContext(context.Background(), query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func insertContent(t *testing.T, db *DB, id string, tmdbID int, medium, title string, rating float64, genres ...string) {
	t.Helper()
	mustExec(t, db, `INSERT INTO content (id, title, type, genres, year, imdb_rating, overview, poster_url, tmdb_id)
		VALUES (?, ?, ?, ?, 2020, ?, '', '', ?)`, id, title, medium, strings.Join(genres, ","), rating, tmdbID)
}

func insertWatched(t *testing.T, db *DB, listID, contentID string, watchedAt time.Time) {
	t.Helper()
	mustExec(t, db, `INSERT INTO list_items (list_id, content_id, watched, watched_at) VALUES (?, ?, true, ?)`,
		listID, contentID, watchedAt)
}

func TestNew_InMemory(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestListWatchSignals(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	insertContent(t, db, "c1", 603, "movie", "Matrix", 8.7, "Action", "Science-Fiction")
	insertContent(t, db, "c2", 1399, "tv", "Game of Thrones", 9.2, "Drame")
	insertContent(t, db, "c3", 550, "movie", "Fight Club", 8.8, "Drame")
	insertContent(t, db, "c4", 66732, "tv", "Stranger Things", 8.7, "Sci-Fi & Fantasy", "Mystère")

	mustExec(t, db, `INSERT INTO user_lists (id, user_id, name, is_default) VALUES ('l1', 'u1', ?, true)`, watchedList)
	mustExec(t, db, `INSERT INTO user_lists (id, user_id, name) VALUES ('l2', 'u1', 'À voir')`)
	insertWatched(t, db, "l1", "c1", now.Add(-2*time.Hour))
	insertWatched(t, db, "l1", "c2", now.Add(-time.Hour))
	// Same content in another list does not count.
	insertWatched(t, db, "l2", "c3", now)
	// In the watched list but not marked watched.
	mustExec(t, db, `INSERT INTO list_items (list_id, content_id, watched) VALUES ('l1', 'c3', false)`)

	// Episodes: one series already a list signal, one catalog series, one unknown.
	mustExec(t, db, `INSERT INTO watched_episodes VALUES ('u1', 1399, 1, 1, ?)`, now)
	mustExec(t, db, `INSERT INTO watched_episodes VALUES ('u1', 66732, 1, 1, ?)`, now.Add(-3*time.Hour))
	mustExec(t, db, `INSERT INTO watched_episodes VALUES ('u1', 66732, 1, 2, ?)`, now.Add(-30*time.Minute))
	mustExec(t, db, `INSERT INTO watched_episodes VALUES ('u1', 94605, 1, 1, ?)`, now.Add(-5*time.Hour))

	signals, err := db.ListWatchSignals(ctx, "u1")
	if err != nil {
		t.Fatalf("ListWatchSignals() error = %v", err)
	}

	var got []string
	for _, s := range signals {
		got = append(got, s.Ref.ID+"/"+string(s.Ref.Medium))
	}
	want := []string{"c2/tv", "c1/movie", "c4/tv", "/tv"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("signals = %v, want %v", got, want)
	}

	if !reflect.DeepEqual(signals[1].Genres, []string{"Action", "Science-Fiction"}) {
		t.Errorf("genres = %v", signals[1].Genres)
	}
	if signals[3].Ref.ExternalID != 94605 || len(signals[3].Genres) != 0 {
		t.Errorf("unknown series signal = %+v", signals[3])
	}
	if !signals[0].WatchedAt.Equal(now.Add(-time.Hour)) {
		t.Errorf("WatchedAt = %v", signals[0].WatchedAt)
	}

	// Other users see nothing.
	empty, err := db.ListWatchSignals(ctx, "u2")
	if err != nil || len(empty) != 0 {
		t.Errorf("ListWatchSignals(u2) = %v, %v", empty, err)
	}
}

func TestListWatchSignals_HistoryLimit(t *testing.T) {
	db := setupTestDB(t)
	db.cfg.HistoryLimit = 2
	now := time.Now().UTC()

	mustExec(t, db, `INSERT INTO user_lists (id, user_id, name) VALUES ('l1', 'u1', ?)`, watchedList)
	for i, id := range []string{"a", "b", "c"} {
		insertContent(t, db, id, 100+i, "movie", id, 7, "Drame")
		insertWatched(t, db, "l1", id, now.Add(time.Duration(i)*time.Minute))
	}
	mustExec(t, db, `INSERT INTO watched_episodes VALUES ('u1', 999, 1, 1, ?)`, now)

	signals, err := db.ListWatchSignals(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListWatchSignals() error = %v", err)
	}
	if len(signals) != 2 || signals[0].Ref.ID != "c" || signals[1].Ref.ID != "b" {
		t.Errorf("signals = %+v", signals)
	}
}

func TestListRatingSignals(t *testing.T) {
	db := setupTestDB(t)
	insertContent(t, db, "c1", 603, "movie", "Matrix", 8.7, "Action")

	mustExec(t, db, `INSERT INTO user_ratings VALUES ('u1', 603, 'movie', 5)`)
	mustExec(t, db, `INSERT INTO user_ratings VALUES ('u1', 1399, 'tv', 2)`)
	mustExec(t, db, `INSERT INTO user_ratings VALUES ('u2', 603, 'movie', 1)`)

	ratings, err := db.ListRatingSignals(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListRatingSignals() error = %v", err)
	}

	want := []recommend.RatingSignal{
		{Ref: recommend.ContentRef{ID: "c1", ExternalID: 603, Medium: recommend.MediumMovie}, Rating: 5},
		{Ref: recommend.ContentRef{ExternalID: 1399, Medium: recommend.MediumSeries}, Rating: 2},
	}
	if !reflect.DeepEqual(ratings, want) {
		t.Errorf("ratings = %+v, want %+v", ratings, want)
	}
}

func TestListWatchedListMembership(t *testing.T) {
	db := setupTestDB(t)
	db.cfg.HistoryLimit = 1
	now := time.Now().UTC()

	mustExec(t, db, `INSERT INTO user_lists (id, user_id, name) VALUES ('l1', 'u1', ?)`, watchedList)
	for i, id := range []string{"a", "b", "c"} {
		insertContent(t, db, id, 0, "movie", id, 7, "Drame")
		insertWatched(t, db, "l1", id, now.Add(time.Duration(i)*time.Minute))
	}

	refs, err := db.ListWatchedListMembership(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListWatchedListMembership() error = %v", err)
	}
	if len(refs) != 3 {
		t.Errorf("membership = %v, want all 3 regardless of history limit", refs)
	}
}

func TestQueryCandidates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	insertContent(t, db, "a", 1, "movie", "A", 9.1, "Drame", " Romance ")
	insertContent(t, db, "b", 2, "tv", "B", 8.0, "Comédie")
	insertContent(t, db, "c", 3, "movie", "C", 6.9, "Horreur")
	insertContent(t, db, "d", 4, "movie", "D", 7.5)
	mustExec(t, db, `INSERT INTO content (id, title, type) VALUES ('e', 'Unrated', 'movie')`)

	items, err := db.QueryCandidates(ctx, 7.0, 10, []string{"b"})
	if err != nil {
		t.Fatalf("QueryCandidates() error = %v", err)
	}

	var ids []string
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	if !reflect.DeepEqual(ids, []string{"a", "d"}) {
		t.Fatalf("ids = %v, want [a d]", ids)
	}
	if !reflect.DeepEqual(items[0].Genres, []string{"Drame", "Romance"}) {
		t.Errorf("genres = %v", items[0].Genres)
	}
	if items[1].Genres == nil || len(items[1].Genres) != 0 {
		t.Errorf("empty genres = %#v, want empty slice", items[1].Genres)
	}

	limited, err := db.QueryCandidates(ctx, 0, 2, nil)
	if err != nil {
		t.Fatalf("QueryCandidates() error = %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "a" || limited[1].ID != "b" {
		t.Errorf("limited = %+v", limited)
	}
}

func TestPlaceholders(t *testing.T) {
	tests := map[int]string{0: "", 1: "?", 3: "?, ?, ?"}
	for n, want := range tests {
		if got := placeholders(n); got != want {
			t.Errorf("placeholders(%d) = %q, want %q", n, got, want)
		}
	}
}
