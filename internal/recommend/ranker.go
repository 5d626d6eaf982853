// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import "context"

// Ranker orders a candidate pool for one user.
// Rank never fails: every strategy degrades to some ordering of the pool.
type Ranker interface {
	// Name returns the strategy name for logging.
	Name() string

	// Rank returns at most the configured target size of items from in.Pool.
	Rank(ctx context.Context, in *RankInput) Ranking
}

// RankInput is everything a ranking strategy may look at.
type RankInput struct {
	Affinity Affinity

	// Watches are the user's watch signals, newest first.
	Watches []WatchSignal

	// HighRatings are ratings at or above the high threshold.
	HighRatings []RatingSignal

	// Pool is the candidate pool in quality-descending order.
	Pool []CandidateItem
}

// Ranking is the ordered output of a Ranker.
type Ranking struct {
	Items []CandidateItem
	Mode  Mode

	// AIAccepted is the number of items chosen by the AI ranker.
	AIAccepted int
}

// FallbackRanker orders candidates by genre overlap with the user's top
// genres, keeping the pool's quality order.
type FallbackRanker struct {
	config *Config
}

// NewFallbackRanker creates the deterministic ranker.
func NewFallbackRanker(cfg *Config) *FallbackRanker {
	return &FallbackRanker{config: cfg}
}

// Name implements Ranker.
func (f *FallbackRanker) Name() string { return "genre_overlap" }

// Rank implements Ranker.
func (f *FallbackRanker) Rank(_ context.Context, in *RankInput) Ranking {
	return Ranking{
		Items: f.Pad(nil, in.Pool, in.Affinity.TopGenres),
		Mode:  ModeFallback,
	}
}

// Pad appends genre-overlapping pool items to selected until the target
// size is reached. Items already in selected are never repeated.
func (f *FallbackRanker) Pad(selected, pool []CandidateItem, topGenres []string) []CandidateItem {
	target := f.config.TargetResultSize
	out := make([]CandidateItem, 0, target)
	seen := make(map[string]struct{}, target)

	for i := range selected {
		if len(out) == target {
			return out
		}
		if _, dup := seen[selected[i].ID]; dup {
			continue
		}
		seen[selected[i].ID] = struct{}{}
		out = append(out, selected[i])
	}

	for i := range pool {
		if len(out) == target {
			break
		}
		if _, dup := seen[pool[i].ID]; dup {
			continue
		}
		if !pool[i].HasAnyGenre(topGenres) {
			continue
		}
		seen[pool[i].ID] = struct{}{}
		out = append(out, pool[i])
	}
	return out
}
