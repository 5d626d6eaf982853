// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"fmt"
	"strings"
)

// SelectionToolName is the function the ranking model must call.
const SelectionToolName = "recommend_content"

// ContentSelection is the argument object of the selection tool.
// Its JSON schema is reflected by model adapters.
type ContentSelection struct {
	ContentIDs []string `json:"content_ids" jsonschema:"required,description=Identifiers of the recommended content from the supplied list. Best first." validate:"required,min=1,dive,required"`
}

// Prompt is a provider-neutral tool-calling request.
type Prompt struct {
	System string
	User   string
	Tool   ToolSpec
}

// ToolSpec describes the single function offered to the model.
// Parameters is a Go value whose type defines the argument schema.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  any
}

// Completion is a provider-neutral model reply.
type Completion struct {
	// ToolName and ToolArguments are set when the model called a tool.
	ToolName      string
	ToolArguments []byte

	// Text is any free-form text the model produced.
	Text string
}

const systemPrompt = "You are a film and television recommendation expert. " +
	"Answer only by calling the recommend_content function with identifiers taken from the supplied list."

// buildPrompt renders the bounded ranking context.
// offered must already be capped to the AI candidate limit.
func buildPrompt(cfg *Config, in *RankInput, offered []CandidateItem) Prompt {
	var b strings.Builder

	b.WriteString("Analyze the user's viewing history and pick the best content to recommend.\n\n")

	b.WriteString("VIEWING HISTORY (newest first):\n")
	history := in.Watches
	if len(history) > cfg.HistoryPromptLimit {
		history = history[:cfg.HistoryPromptLimit]
	}
	if len(history) == 0 {
		b.WriteString("- none\n")
	}
	for i := range history {
		w := &history[i]
		fmt.Fprintf(&b, "- %s (%s, %s) - Genres: %s\n",
			orUnknown(w.Title), w.Ref.Medium, yearOrUnknown(w.Year), joinOrNA(w.Genres))
	}

	if len(in.HighRatings) > 0 {
		b.WriteString("\nHIGHLY RATED:\n")
		limit := len(in.HighRatings)
		if limit > cfg.HistoryPromptLimit {
			limit = cfg.HistoryPromptLimit
		}
		for _, r := range in.HighRatings[:limit] {
			fmt.Fprintf(&b, "- TMDB %d (%s) rated %d/5\n", r.Ref.ExternalID, r.Ref.Medium, r.Rating)
		}
	}

	fmt.Fprintf(&b, "\nFAVORITE GENRES: %s\n", joinOrNA(in.Affinity.TopGenres))
	fmt.Fprintf(&b, "PREFERRED TYPE: %s\n", mediumLabel(in.Affinity.PreferredType))

	b.WriteString("\nAVAILABLE CONTENT:\n")
	for i := range offered {
		c := &offered[i]
		fmt.Fprintf(&b, "ID:%s | %s (%s, %s) - Rating: %.1f - Genres: %s\n",
			c.ID, c.Title, c.Type, yearOrUnknown(c.Year), c.Quality, joinOrNA(c.Genres))
	}

	fmt.Fprintf(&b, "\nChoose the %d best items for this user. Favor diversity while staying relevant.", cfg.AIRequestCount)

	return Prompt{
		System: systemPrompt,
		User:   b.String(),
		Tool: ToolSpec{
			Name:        SelectionToolName,
			Description: "Return recommended content IDs",
			Parameters:  ContentSelection{},
		},
	}
}

func joinOrNA(values []string) string {
	if len(values) == 0 {
		return "N/A"
	}
	return strings.Join(values, ", ")
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown title"
	}
	return s
}

func yearOrUnknown(y int) string {
	if y == 0 {
		return "n/d"
	}
	return fmt.Sprintf("%d", y)
}

func mediumLabel(m Medium) string {
	if m == MediumSeries {
		return "Series"
	}
	return "Movies"
}
