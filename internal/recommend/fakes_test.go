// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// mockHistory implements HistorySource for testing.
type mockHistory struct {
	watches []WatchSignal
	ratings []RatingSignal
	watched []ContentRef

	watchesErr error
	ratingsErr error
	watchedErr error
}

func (m *mockHistory) ListWatchSignals(_ context.Context, _ string) ([]WatchSignal, error) {
	if m.watchesErr != nil {
		return nil, m.watchesErr
	}
	return m.watches, nil
}

func (m *mockHistory) ListRatingSignals(_ context.Context, _ string) ([]RatingSignal, error) {
	if m.ratingsErr != nil {
		return nil, m.ratingsErr
	}
	return m.ratings, nil
}

func (m *mockHistory) ListWatchedListMembership(_ context.Context, _ string) ([]ContentRef, error) {
	if m.watchedErr != nil {
		return nil, m.watchedErr
	}
	return m.watched, nil
}

// mockCandidates implements CandidateSource for testing.
type mockCandidates struct {
	items []CandidateItem
	err   error

	calls       int32
	lastQuality float64
	lastExclude []string
}

func (m *mockCandidates) QueryCandidates(_ context.Context, minQuality float64, limit int, excludeIDs []string) ([]CandidateItem, error) {
	atomic.AddInt32(&m.calls, 1)
	m.lastQuality = minQuality
	m.lastExclude = excludeIDs
	if m.err != nil {
		return nil, m.err
	}
	if len(m.items) > limit {
		return m.items[:limit], nil
	}
	return m.items, nil
}

// mockResolver implements MetadataResolver for testing.
type mockResolver struct {
	genres map[int][]string
	fail   map[int]bool
	calls  int32
}

func (m *mockResolver) GetGenres(_ context.Context, ref ContentRef) ([]string, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.fail[ref.ExternalID] {
		return nil, fmt.Errorf("tmdb %d: %w", ref.ExternalID, errors.New("lookup failed"))
	}
	return m.genres[ref.ExternalID], nil
}

// mockModel implements RankingModel for testing.
type mockModel struct {
	reply *Completion
	err   error
	block bool

	calls      int32
	lastPrompt Prompt
}

func (m *mockModel) Name() string { return "mock" }

func (m *mockModel) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	atomic.AddInt32(&m.calls, 1)
	m.lastPrompt = p
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.reply, nil
}

// toolReply builds a well-formed tool-call completion.
func toolReply(ids ...string) *Completion {
	args := `{"content_ids":[`
	for i, id := range ids {
		if i > 0 {
			args += ","
		}
		args += `"` + id + `"`
	}
	args += `]}`
	return &Completion{ToolName: SelectionToolName, ToolArguments: []byte(args)}
}

// candidate builds a pool item with a UUID-shaped id derived from n.
func candidate(n int, quality float64, genres ...string) CandidateItem {
	return CandidateItem{
		ID:      candidateID(n),
		Title:   fmt.Sprintf("Title %d", n),
		Type:    MediumMovie,
		Genres:  genres,
		Quality: quality,
	}
}

func candidateID(n int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}

func ids(items []CandidateItem) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}
