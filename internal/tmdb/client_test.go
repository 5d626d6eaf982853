// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/recommend"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(&config.TMDBConfig{
		APIKey:            "test-key",
		BaseURL:           srv.URL,
		Language:          "fr-FR",
		Timeout:           2 * time.Second,
		RequestsPerSecond: 1000,
		Burst:             100,
	})
	c.retryBaseDelay = time.Millisecond
	return c
}

func TestGetGenres_Movie(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "fr-FR", r.URL.Query().Get("language"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":603,"title":"Matrix","genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science-Fiction"}]}`))
	})

	genres, err := c.GetGenres(context.Background(), recommend.ContentRef{ExternalID: 603, Medium: recommend.MediumMovie})
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Science-Fiction"}, genres)
}

func TestGetGenres_SeriesFillsMissingNames(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tv/1399", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":1399,"name":"Game of Thrones","genres":[{"id":10765},{"id":18,"name":"Drame"},{"id":424242}]}`))
	})

	genres, err := c.GetGenres(context.Background(), recommend.ContentRef{ExternalID: 1399, Medium: recommend.MediumSeries})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sci-Fi & Fantasy", "Drame"}, genres)
}

func TestGetGenres_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"status_code":34}`, http.StatusNotFound)
	})

	_, err := c.GetGenres(context.Background(), recommend.ContentRef{ExternalID: 1, Medium: recommend.MediumMovie})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetGenres_InvalidRef(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(http.ResponseWriter, *http.Request) { atomic.AddInt32(&calls, 1) })

	_, err := c.GetGenres(context.Background(), recommend.ContentRef{ID: "local-only", Medium: recommend.MediumMovie})
	assert.ErrorIs(t, err, ErrInvalidRef)

	_, err = c.GetGenres(context.Background(), recommend.ContentRef{ExternalID: 5})
	assert.ErrorIs(t, err, ErrInvalidRef)

	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestGetGenres_RetriesRateLimit(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"id":1,"genres":[{"id":35,"name":"Comédie"}]}`))
	})

	genres, err := c.GetGenres(context.Background(), recommend.ContentRef{ExternalID: 1, Medium: recommend.MediumMovie})
	require.NoError(t, err)
	assert.Equal(t, []string{"Comédie"}, genres)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestGetGenres_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.GetGenres(context.Background(), recommend.ContentRef{ExternalID: 1, Medium: recommend.MediumMovie})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGenreName(t *testing.T) {
	name, ok := GenreName(10749)
	assert.True(t, ok)
	assert.Equal(t, "Romance", name)

	_, ok = GenreName(-1)
	assert.False(t, ok)
}
