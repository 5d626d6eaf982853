// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package services adapts Reelpick components to suture.Service.
//
// Each wrapper turns a blocking Start/Stop lifecycle into Serve(ctx):
// return nil or ctx.Err() on a requested stop, and an error on a crash so
// the supervisor restarts the service.
package services
