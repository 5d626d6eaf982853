// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"context"
	"fmt"
	"sort"
)

// ExclusionSet holds identifiers that must never be recommended.
type ExclusionSet map[string]struct{}

// NewExclusionSet builds a set from watched-list membership.
func NewExclusionSet(refs []ContentRef) ExclusionSet {
	set := make(ExclusionSet, len(refs))
	for _, r := range refs {
		if r.ID != "" {
			set[r.ID] = struct{}{}
		}
	}
	return set
}

// Contains reports whether id is excluded.
func (s ExclusionSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the excluded identifiers in sorted order.
func (s ExclusionSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PoolBuilder fetches the candidate pool.
type PoolBuilder struct {
	config *Config
	source CandidateSource
}

// NewPoolBuilder creates a pool builder over source.
func NewPoolBuilder(cfg *Config, source CandidateSource) *PoolBuilder {
	return &PoolBuilder{config: cfg, source: source}
}

// Build returns candidates at or above minQuality, sorted by quality
// descending, none of which is in excluded. The source is trusted for
// nothing: exclusion, quality and uniqueness are enforced again here.
func (b *PoolBuilder) Build(ctx context.Context, minQuality float64, excluded ExclusionSet) ([]CandidateItem, error) {
	raw, err := b.source.QueryCandidates(ctx, minQuality, b.config.CandidatePoolLimit, excluded.IDs())
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}

	seen := make(map[string]struct{}, len(raw))
	pool := make([]CandidateItem, 0, len(raw))
	for i := range raw {
		item := raw[i]
		if item.ID == "" || excluded.Contains(item.ID) || item.Quality < minQuality {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		pool = append(pool, item)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Quality > pool[j].Quality
	})

	if len(pool) > b.config.CandidatePoolLimit {
		pool = pool[:b.config.CandidatePoolLimit]
	}
	return pool, nil
}
