// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

/*
Package llm adapts hosted language models to recommend.RankingModel.

Two providers are supported:

  - openai: the Responses API with a strict function tool
  - anthropic: the Messages API with a tool definition

Both receive the same provider-neutral recommend.Prompt. The tool argument
schema is reflected from the Go type in Prompt.Tool.Parameters with
invopop/jsonschema, so the schema and the decoder never drift apart.

New wraps the selected adapter in a Guarded model that routes calls through
a circuit breaker and records latency and outcome metrics. A provider that
keeps failing is skipped quickly and the engine falls back to genre-overlap
ranking.

# Usage

	model, err := llm.New(&cfg.AI)
	if err != nil {
	    return err
	}
	if model != nil {
	    engine.SetRankingModel(model)
	}
*/
package llm
