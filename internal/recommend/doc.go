// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package recommend implements the recommendation scoring pipeline.
//
// # Architecture
//
// A request flows through four stages:
//
//	History ──> AffinityExtractor ──> PoolBuilder ──> Ranker ──> Assemble
//
//   - AffinityExtractor folds watch and rating signals into genre weights
//     and a preferred medium. High ratings count more than passive watches.
//   - PoolBuilder reads quality-filtered candidates and enforces the
//     watched-set exclusion.
//   - Ranker is a strategy. AIRanker asks an external model to pick from
//     the pool and pads short answers; FallbackRanker orders by genre overlap.
//   - Assemble deduplicates, bounds the list, and attaches explanations.
//
// # Failure Model
//
// Candidate source and watched list failures are returned to the caller,
// since watched items could not be excluded otherwise. Watch and rating
// feed failures are treated as empty. Metadata lookup failures drop the
// affected signal's genres. AI failures, timeouts and unparseable replies
// fall back to the deterministic ranking.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	engine.SetHistorySource(store)
//	engine.SetCandidateSource(store)
//	engine.SetMetadataResolver(tmdbClient)
//	engine.SetRankingModel(model) // optional
//
//	result, err := engine.GetRecommendations(ctx, userID)
//
// # Thread Safety
//
// The engine holds no per-request state and is safe for concurrent use.
// Collaborators must be set before the first request.
package recommend
