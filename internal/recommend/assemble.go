// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

// User-facing guidance for empty results.
const (
	MessageNoHistory    = "Not enough watch history yet. Watch or rate something to get recommendations."
	MessageNoCandidates = "No eligible recommendations right now. Check back later."
)

// Assemble turns a ranking into the response payload. It never pads:
// the result is the ranking deduplicated, stripped of excluded ids and
// truncated to the target size.
//
//nolint:gocritic // hugeParam: affinity passed by value for immutability
func Assemble(cfg *Config, ranking Ranking, affinity Affinity, excluded ExclusionSet) *Result {
	items := make([]CandidateItem, 0, min(len(ranking.Items), cfg.TargetResultSize))
	seen := make(map[string]struct{}, len(ranking.Items))

	for i := range ranking.Items {
		if len(items) == cfg.TargetResultSize {
			break
		}
		id := ranking.Items[i].ID
		if excluded.Contains(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		items = append(items, ranking.Items[i])
	}

	result := &Result{
		Recommendations: items,
		Mode:            ranking.Mode,
	}

	if len(items) == 0 {
		if affinity.Genres.Empty() {
			result.Message = MessageNoHistory
		} else {
			result.Message = MessageNoCandidates
		}
		return result
	}

	// Explanations accompany personalized (AI) rankings only.
	if ranking.Mode == ModeAI || ranking.Mode == ModeAIInsufficient {
		result.TopGenres = affinity.TopGenres
		result.PreferredType = string(affinity.PreferredType)
	}
	return result
}

// coldStart is the result for a user without any history.
func coldStart() *Result {
	return &Result{
		Recommendations: []CandidateItem{},
		Message:         MessageNoHistory,
		Mode:            ModeNone,
	}
}
