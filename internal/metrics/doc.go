// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

/*
Package metrics provides Prometheus metrics for the recommendation service.

All collectors are registered on the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: requests by method, endpoint and status (counter)
  - api_request_duration_seconds: latency by method and endpoint (histogram)
  - api_active_requests: in-flight requests (gauge)

Recommendation Metrics:
  - recommendations_total: results served, labeled by mode
    (none, ai, ai_insufficient, fallback)
  - recommendation_duration_seconds: end-to-end pipeline latency
  - recommendation_items: number of items per result (histogram)

Ranking Model Metrics:
  - ranker_requests_total: model calls by provider and outcome
    (success, error, rejected)
  - ranker_request_duration_seconds: model latency by provider

Metadata Metrics:
  - metadata_lookups_total: TMDB lookups by outcome
  - metadata_lookup_duration_seconds: TMDB latency

Database Metrics:
  - duckdb_query_duration_seconds: query latency by operation
  - duckdb_query_errors_total: failed queries by operation

Cache Metrics:
  - cache_hits_total / cache_misses_total: by cache name
  - cache_evictions_total: by cache name

Event Metrics:
  - history_events_published_total / history_events_consumed_total

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: by name and result
  - circuit_breaker_state_transitions_total: by name and states

# Usage

	start := time.Now()
	res, err := engine.GetRecommendations(ctx, userID)
	metrics.RecordRecommendation(string(res.Mode), len(res.Recommendations), time.Since(start))

# Thread Safety

Every collector is safe for concurrent use.
*/
package metrics
