// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package main is the entry point for the Reelpick server.
//
// Reelpick recommends streaming content from a user's viewing history: the
// watched list, explicit ratings and watched episodes stored in DuckDB.
// Genre affinity is extracted from that history (with TMDB lookups for
// missing genres), a quality-filtered candidate pool is ranked by an
// optional AI model with a deterministic genre-overlap fallback, and the
// result is assembled into a bounded, de-duplicated list.
//
// # Startup
//
//  1. Configuration: defaults, config.yaml, environment (koanf v2)
//  2. Logging: zerolog, JSON or console
//  3. DuckDB user-data store
//  4. TMDB client behind the two-tier genre cache (LRU + optional badger)
//  5. AI ranking model (OpenAI or Anthropic, optional)
//  6. History event bus (in-memory or NATS) and result cache
//  7. Supervisor tree: event router and HTTP server
//
// # Example
//
//	export JWT_SECRET=$(openssl rand -hex 32)
//	export DUCKDB_PATH=/data/reelpick.duckdb
//	export TMDB_API_KEY=...
//	export AI_PROVIDER=openai AI_MODEL=gpt-4.1-mini AI_API_KEY=...
//	./reelpick
//
// SIGINT and SIGTERM drain in-flight requests within
// HTTP_SHUTDOWN_TIMEOUT, then close the bus, genre store and database.
package main
