// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

/*
Package supervisor runs the long-lived services of Reelpick under a suture v4
supervisor tree.

	RootSupervisor ("reelpick")
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventRouterService (history-event cache invalidation)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashing event consumer is restarted without touching the HTTP server,
and the other way around. Supervisor events are logged through sutureslog
into the zerolog-backed slog handler from internal/logging.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(services.NewEventRouterService(newRouter))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor
