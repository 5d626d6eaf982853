// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// AffinityVector accumulates genre weights and remembers first-seen order.
// The zero value is ready to use.
type AffinityVector struct {
	weights map[string]int
	order   []string
}

// Add increases the weight of genre by w. Non-positive w is ignored so
// weights never decrease.
func (v *AffinityVector) Add(genre string, w int) {
	if genre == "" || w <= 0 {
		return
	}
	if v.weights == nil {
		v.weights = make(map[string]int)
	}
	if _, seen := v.weights[genre]; !seen {
		v.order = append(v.order, genre)
	}
	v.weights[genre] += w
}

// Weight returns the accumulated weight of genre.
func (v *AffinityVector) Weight(genre string) int {
	return v.weights[genre]
}

// Len returns the number of distinct genres.
func (v *AffinityVector) Len() int {
	return len(v.order)
}

// Empty reports whether no genre has been recorded.
func (v *AffinityVector) Empty() bool {
	return len(v.order) == 0
}

// Top returns up to n genres by descending weight. Ties keep first-seen order.
func (v *AffinityVector) Top(n int) []string {
	ranked := make([]string, len(v.order))
	copy(ranked, v.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return v.weights[ranked[i]] > v.weights[ranked[j]]
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TypeAffinity counts signals per medium.
type TypeAffinity map[Medium]int

// Preferred returns the medium with the most signals.
// Ties and empty input resolve to movies.
func (t TypeAffinity) Preferred() Medium {
	if t[MediumSeries] > t[MediumMovie] {
		return MediumSeries
	}
	return MediumMovie
}

// Affinity is the outcome of folding a user's history.
type Affinity struct {
	Genres        AffinityVector
	Types         TypeAffinity
	TopGenres     []string
	PreferredType Medium
}

// AffinityExtractor derives genre and medium preferences from history.
type AffinityExtractor struct {
	config   *Config
	resolver MetadataResolver
	logger   zerolog.Logger
}

// NewAffinityExtractor creates an extractor. resolver may be nil, in which
// case signals without genres contribute only to the medium count.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAffinityExtractor(cfg *Config, resolver MetadataResolver, logger zerolog.Logger) *AffinityExtractor {
	return &AffinityExtractor{
		config:   cfg,
		resolver: resolver,
		logger:   logger,
	}
}

// lookup is one pending genre resolution. Each goroutine owns one slot.
type lookup struct {
	ref    ContentRef
	genres []string
}

// Extract folds watches and ratings into an Affinity.
// Ratings below the high threshold are ignored. Failed lookups are skipped.
func (x *AffinityExtractor) Extract(ctx context.Context, watches []WatchSignal, ratings []RatingSignal) Affinity {
	var high []RatingSignal
	for _, r := range ratings {
		if r.Rating >= x.config.HighRatingThreshold {
			high = append(high, r)
		}
	}

	// Slots: watches without genres first, then high ratings.
	var slots []lookup
	watchSlot := make([]int, len(watches))
	for i := range watches {
		watchSlot[i] = -1
		if len(watches[i].Genres) == 0 && watches[i].Ref.ExternalID != 0 {
			watchSlot[i] = len(slots)
			slots = append(slots, lookup{ref: watches[i].Ref})
		}
	}
	ratingBase := len(slots)
	for _, r := range high {
		slots = append(slots, lookup{ref: r.Ref})
	}

	x.resolveAll(ctx, slots)

	var out Affinity
	out.Types = make(TypeAffinity)

	for i, w := range watches {
		genres := w.Genres
		if watchSlot[i] >= 0 {
			genres = slots[watchSlot[i]].genres
		}
		for _, g := range genres {
			out.Genres.Add(g, 1)
		}
		out.Types[w.Ref.Medium]++
	}

	for i, r := range high {
		for _, g := range slots[ratingBase+i].genres {
			out.Genres.Add(g, x.config.RatingWeightMultiplier)
		}
		out.Types[r.Ref.Medium]++
	}

	out.TopGenres = out.Genres.Top(x.config.TopGenreCount)
	out.PreferredType = out.Types.Preferred()
	return out
}

// resolveAll fills slot genres concurrently with bounded parallelism.
// The group never returns an error: a failed lookup leaves its slot empty.
func (x *AffinityExtractor) resolveAll(ctx context.Context, slots []lookup) {
	if x.resolver == nil || len(slots) == 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(x.config.MetadataConcurrency)

	for i := range slots {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			genres, err := x.resolver.GetGenres(gctx, slots[i].ref)
			if err != nil {
				x.logger.Debug().
					Err(err).
					Int("tmdb_id", slots[i].ref.ExternalID).
					Str("medium", string(slots[i].ref.Medium)).
					Msg("genre lookup failed, skipping")
				return nil
			}
			slots[i].genres = genres
			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // workers never return errors
}
