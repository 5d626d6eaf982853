// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

/*
Package database implements the user-data and catalog store on DuckDB.

DB satisfies two interfaces of package recommend:

  - recommend.HistorySource: watch signals, ratings and the watched-list
    membership of a user
  - recommend.CandidateSource: quality-filtered catalog content

Tables:
  - content: the catalog (genres stored comma-separated)
  - user_lists / list_items: per-user lists; the list named by
    DatabaseConfig.WatchedListName ("Déjà vu") records what a user has seen
  - user_ratings: explicit 1-5 ratings keyed by TMDB id and content type
  - watched_episodes: per-episode progress of series

# Watch Signals

Watched items of the watched list are read newest first. Series known only
through watched_episodes are appended as "tv" signals unless the same TMDB
id already appears among the list signals. Their genres come from the
catalog when a matching row exists; otherwise they are left empty and the
engine resolves them through TMDB.

# Thread Safety

DB is safe for concurrent use; database/sql pools the DuckDB connections.
*/
package database
