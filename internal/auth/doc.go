// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

/*
Package auth authenticates API callers with HS256 bearer tokens.

The service does not issue tokens in production; an upstream identity
provider signs them with the shared JWT_SECRET. The token subject ("sub")
is the user ID whose history drives recommendations.

Usage:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
	    return err
	}
	r.Use(auth.RequireAuth(jwtManager, onUnauthorized))

Handlers read the caller with logging.UserIDFromContext or
auth.ClaimsFromContext.
*/
package auth
