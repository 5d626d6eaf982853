// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

/*
Package middleware provides infrastructure HTTP middleware: request ID
propagation, Prometheus request instrumentation and structured access
logging.

All middleware uses the func(http.Handler) http.Handler shape so it plugs
straight into chi:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

The metrics endpoint label is the chi route pattern when one matched
(for example /api/v1/recommendations), keeping label cardinality bounded.
*/
package middleware
