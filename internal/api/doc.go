// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

/*
Package api exposes the recommendation service over HTTP.

Routes:

	GET  /healthz                   liveness plus user-data store ping
	GET  /metrics                   Prometheus exposition
	GET  /api/v1/recommendations    recommendations for the bearer's user
	POST /api/v1/history/events     announce a history change (202)

Every /api/v1 route requires an HS256 bearer token whose subject is the
user ID, is rate limited per client IP and instrumented with Prometheus.
Responses use the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", ...}}
	{"success": false, "error": {"code": "UNAUTHORIZED", "message": "..."}}

Recommendation results are cached per user. ?refresh=true bypasses the
cache, and history events invalidate it on every instance.
*/
package api
