// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelpick/internal/metrics"
	"github.com/tomtom215/reelpick/internal/recommend"
)

const (
	genreMemoryCacheName = "genres_memory"
	genreStoreCacheName  = "genres_store"
)

// CachedResolver serves genre lookups from memory, then the optional
// persistent store, then the wrapped resolver.
type CachedResolver struct {
	next   recommend.MetadataResolver
	memory *expirable.LRU[recommend.ContentRef, []string]
	store  *GenreStore
	logger zerolog.Logger
}

// NewCachedResolver wraps next. store may be nil.
func NewCachedResolver(next recommend.MetadataResolver, size int, ttl time.Duration, store *GenreStore, logger zerolog.Logger) *CachedResolver {
	return &CachedResolver{
		next:   next,
		memory: expirable.NewLRU[recommend.ContentRef, []string](size, nil, ttl),
		store:  store,
		logger: logger.With().Str("component", "genre_cache").Logger(),
	}
}

// GetGenres implements recommend.MetadataResolver.
// Upstream errors are returned unchanged and never cached.
func (r *CachedResolver) GetGenres(ctx context.Context, ref recommend.ContentRef) ([]string, error) {
	if genres, ok := r.memory.Get(ref); ok {
		metrics.RecordCacheLookup(genreMemoryCacheName, true)
		return genres, nil
	}
	metrics.RecordCacheLookup(genreMemoryCacheName, false)

	if r.store != nil {
		genres, ok, err := r.store.Get(ref)
		switch {
		case err != nil:
			r.logger.Warn().Err(err).Int("tmdb_id", ref.ExternalID).Msg("Genre store read failed")
		case ok:
			metrics.RecordCacheLookup(genreStoreCacheName, true)
			r.memory.Add(ref, genres)
			return genres, nil
		default:
			metrics.RecordCacheLookup(genreStoreCacheName, false)
		}
	}

	genres, err := r.next.GetGenres(ctx, ref)
	if err != nil {
		return nil, err
	}

	r.memory.Add(ref, genres)
	if r.store != nil {
		if err := r.store.Set(ref, genres); err != nil {
			r.logger.Warn().Err(err).Int("tmdb_id", ref.ExternalID).Msg("Genre store write failed")
		}
	}
	return genres, nil
}
