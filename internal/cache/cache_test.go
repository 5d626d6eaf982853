// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package cache

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelpick/internal/recommend"
)

type countingResolver struct {
	genres map[int][]string
	err    error
	calls  int32
}

func (r *countingResolver) GetGenres(_ context.Context, ref recommend.ContentRef) ([]string, error) {
	atomic.AddInt32(&r.calls, 1)
	if r.err != nil {
		return nil, r.err
	}
	return r.genres[ref.ExternalID], nil
}

func TestResultCache_SetGetInvalidate(t *testing.T) {
	t.Parallel()

	c := NewResultCache(10, time.Minute)
	res := &recommend.Result{Recommendations: []recommend.CandidateItem{{ID: "a"}}}

	if _, ok := c.Get("u1"); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	c.Set("u1", res)
	got, ok := c.Get("u1")
	if !ok || got != res {
		t.Fatalf("Get() = %v, %v", got, ok)
	}

	if !c.Invalidate("u1") {
		t.Error("Invalidate() = false for cached user")
	}
	if c.Invalidate("u1") {
		t.Error("Invalidate() = true for missing user")
	}
	if _, ok := c.Get("u1"); ok {
		t.Error("hit after invalidation")
	}
}

func TestResultCache_SetIfCurrent(t *testing.T) {
	t.Parallel()

	c := NewResultCache(10, time.Minute)
	stale := &recommend.Result{Recommendations: []recommend.CandidateItem{{ID: "watched-meanwhile"}}}

	gen := c.Generation("u1")
	c.Invalidate("u1")
	if c.SetIfCurrent("u1", gen, stale) {
		t.Error("SetIfCurrent() stored a result computed before invalidation")
	}
	if _, ok := c.Get("u1"); ok {
		t.Error("stale result served after invalidation")
	}

	// Other users are not affected by u1's invalidation.
	if !c.SetIfCurrent("u2", gen, stale) {
		t.Error("SetIfCurrent() refused an unrelated user")
	}

	fresh := &recommend.Result{}
	if !c.SetIfCurrent("u1", c.Generation("u1"), fresh) {
		t.Fatal("SetIfCurrent() refused a result computed after invalidation")
	}
	if got, ok := c.Get("u1"); !ok || got != fresh {
		t.Errorf("Get() = %v, %v, want fresh result", got, ok)
	}
}

func TestResultCache_SetIfCurrentAfterStampEviction(t *testing.T) {
	t.Parallel()

	c := NewResultCache(1, time.Minute)

	gen := c.Generation("a")
	c.Invalidate("a")
	c.Invalidate("b") // evicts a's stamp

	if c.SetIfCurrent("a", gen, &recommend.Result{}) {
		t.Error("SetIfCurrent() accepted a stale result once the stamp was evicted")
	}
	if !c.SetIfCurrent("a", c.Generation("a"), &recommend.Result{}) {
		t.Error("SetIfCurrent() refused a current result")
	}
}

func TestResultCache_Bounded(t *testing.T) {
	t.Parallel()

	c := NewResultCache(2, time.Minute)
	for _, u := range []string{"u1", "u2", "u3"} {
		c.Set(u, &recommend.Result{})
	}

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Get("u1"); ok {
		t.Error("oldest entry survived eviction")
	}
}

func TestResultCache_Expires(t *testing.T) {
	t.Parallel()

	c := NewResultCache(10, 20*time.Millisecond)
	c.Set("u1", &recommend.Result{})
	time.Sleep(60 * time.Millisecond)

	if _, ok := c.Get("u1"); ok {
		t.Error("entry still present after TTL")
	}
}

func TestResultCache_DisabledWithZeroTTL(t *testing.T) {
	t.Parallel()

	c := NewResultCache(10, 0)
	c.Set("u1", &recommend.Result{})

	if _, ok := c.Get("u1"); ok {
		t.Error("disabled cache returned a hit")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	c.Purge()
}

func TestGenreStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store, err := OpenGenreStore("", time.Hour)
	if err != nil {
		t.Fatalf("OpenGenreStore() error = %v", err)
	}
	defer store.Close()

	ref := recommend.ContentRef{ExternalID: 603, Medium: recommend.MediumMovie}

	if _, ok, err := store.Get(ref); ok || err != nil {
		t.Fatalf("Get() on empty store = %v, %v", ok, err)
	}

	want := []string{"Action", "Science-Fiction"}
	if err := store.Set(ref, want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := store.Get(ref)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get() = %v, want %v", got, want)
	}

	// Same TMDB id, other medium: a distinct key.
	if _, ok, _ := store.Get(recommend.ContentRef{ExternalID: 603, Medium: recommend.MediumSeries}); ok {
		t.Error("series lookup hit a movie entry")
	}
}

func TestCachedResolver_Tiers(t *testing.T) {
	t.Parallel()

	store, err := OpenGenreStore("", time.Hour)
	if err != nil {
		t.Fatalf("OpenGenreStore() error = %v", err)
	}
	defer store.Close()

	upstream := &countingResolver{genres: map[int][]string{1399: {"Drame", "Sci-Fi & Fantasy"}}}
	ref := recommend.ContentRef{ExternalID: 1399, Medium: recommend.MediumSeries}

	r := NewCachedResolver(upstream, 100, time.Hour, store, zerolog.Nop())
	for i := 0; i < 3; i++ {
		got, err := r.GetGenres(context.Background(), ref)
		if err != nil || len(got) != 2 {
			t.Fatalf("GetGenres() = %v, %v", got, err)
		}
	}
	if upstream.calls != 1 {
		t.Errorf("upstream calls = %d, want 1", upstream.calls)
	}

	// A fresh memory tier still reads through the persistent store.
	cold := NewCachedResolver(upstream, 100, time.Hour, store, zerolog.Nop())
	if _, err := cold.GetGenres(context.Background(), ref); err != nil {
		t.Fatalf("GetGenres() error = %v", err)
	}
	if upstream.calls != 1 {
		t.Errorf("upstream calls after restart = %d, want 1", upstream.calls)
	}
}

func TestCachedResolver_ErrorsNotCached(t *testing.T) {
	t.Parallel()

	upstream := &countingResolver{err: errors.New("tmdb unavailable")}
	r := NewCachedResolver(upstream, 100, time.Hour, nil, zerolog.Nop())
	ref := recommend.ContentRef{ExternalID: 1, Medium: recommend.MediumMovie}

	for i := 0; i < 2; i++ {
		if _, err := r.GetGenres(context.Background(), ref); err == nil {
			t.Fatal("expected upstream error")
		}
	}
	if upstream.calls != 2 {
		t.Errorf("upstream calls = %d, want 2", upstream.calls)
	}
}
