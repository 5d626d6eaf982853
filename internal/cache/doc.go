// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

/*
Package cache provides the caching layers of the recommendation service.

# Result Cache

ResultCache keeps assembled recommendation results per user in a bounded,
expiring LRU (hashicorp/golang-lru/v2/expirable). Entries are dropped when
the TTL elapses, when the user's history changes (see package events) or
when a caller bypasses the cache with ?refresh=true.

# Genre Cache

CachedResolver decorates a recommend.MetadataResolver with two tiers:

  - an in-memory expiring LRU, always present
  - an optional BadgerDB store that survives restarts

Catalog genres rarely change, so lookups are served from memory first, then
from disk, and only then from the upstream catalog. Upstream answers are
written back to both tiers.

# Thread Safety

All types in this package are safe for concurrent use.
*/
package cache
