// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

/*
Package events carries history-change notifications between the API and
the result cache.

When a user's watched list, ratings or episode progress change, the writer
publishes a HistoryEvent. Every service instance consumes the topic and
drops the user's cached recommendations so the next request recomputes
them from fresh history.

Two transports are supported via Watermill:

  - memory: gochannel pub/sub, single process (default)
  - nats: core NATS subjects, fan-out to every instance (no queue group)

The consumer runs on a Watermill router with panic recovery and
exponential-backoff retry. Malformed payloads are acknowledged and counted
rather than retried.
*/
package events
