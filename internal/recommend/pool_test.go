// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestPoolBuilder_EnforcesExclusionAndOrder(t *testing.T) {
	t.Parallel()

	// The source ignores the exclusion list and returns unsorted rows.
	source := &mockCandidates{items: []CandidateItem{
		candidate(1, 7.0, "Drama"),
		candidate(2, 9.1, "Drama"),
		candidate(3, 8.0, "Comedy"),
		candidate(2, 9.1, "Drama"),
		candidate(4, 5.0, "Drama"),
		{ID: "", Title: "no id", Quality: 9.9},
	}}
	excluded := NewExclusionSet([]ContentRef{{ID: candidateID(3)}})

	pool, err := NewPoolBuilder(DefaultConfig(), source).Build(context.Background(), 6.5, excluded)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []string{candidateID(2), candidateID(1)}
	if got := ids(pool); !reflect.DeepEqual(got, want) {
		t.Errorf("pool = %v, want %v", got, want)
	}
	if source.lastQuality != 6.5 {
		t.Errorf("source minQuality = %v, want 6.5", source.lastQuality)
	}
	if !reflect.DeepEqual(source.lastExclude, []string{candidateID(3)}) {
		t.Errorf("source exclude = %v", source.lastExclude)
	}
}

func TestPoolBuilder_SourceFailure(t *testing.T) {
	t.Parallel()

	sourceErr := errors.New("connection refused")
	source := &mockCandidates{err: sourceErr}

	_, err := NewPoolBuilder(DefaultConfig(), source).Build(context.Background(), 6.5, ExclusionSet{})
	if !errors.Is(err, sourceErr) {
		t.Errorf("Build() error = %v, want wrapped %v", err, sourceErr)
	}
}

func TestExclusionSet(t *testing.T) {
	t.Parallel()

	set := NewExclusionSet([]ContentRef{{ID: "b"}, {ID: "a"}, {ExternalID: 12}, {ID: "a"}})

	if !set.Contains("a") || !set.Contains("b") {
		t.Error("expected a and b to be excluded")
	}
	if set.Contains("") {
		t.Error("empty id must not be excluded")
	}
	if got := set.IDs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("IDs() = %v, want [a b]", got)
	}
}
