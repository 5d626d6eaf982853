// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/reelpick/internal/metrics"
)

var errUpstream = errors.New("upstream failure")

func testSettings(name string) Settings {
	s := DefaultSettings(name)
	s.MinRequests = 4
	s.FailureRatio = 0.5
	s.Timeout = time.Hour
	return s
}

// TestBreaker_OpensAfterFailures verifies the breaker trips and then
// rejects without calling the wrapped function.
func TestBreaker_OpensAfterFailures(t *testing.T) {
	b := New(testSettings("test-opens"))

	if b.State() != "closed" {
		t.Fatalf("initial state = %q, want closed", b.State())
	}

	for i := 0; i < 4; i++ {
		_, _ = Execute(b, func() (int, error) { return 0, errUpstream })
	}

	if b.State() != "open" {
		t.Fatalf("state after failures = %q, want open", b.State())
	}

	called := false
	_, err := Execute(b, func() (int, error) {
		called = true
		return 1, nil
	})
	if !IsRejected(err) {
		t.Errorf("err = %v, want rejection", err)
	}
	if called {
		t.Error("wrapped function ran while the breaker was open")
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-opens")); got != 2 {
		t.Errorf("circuit_breaker_state = %v, want 2", got)
	}
}

func TestBreaker_TypedResult(t *testing.T) {
	b := New(testSettings("test-typed"))

	got, err := Execute(b, func() ([]string, error) { return []string{"Drame"}, nil })
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(got) != 1 || got[0] != "Drame" {
		t.Errorf("result = %v", got)
	}

	nilSlice, err := Execute(b, func() ([]string, error) { return nil, nil })
	if err != nil || nilSlice != nil {
		t.Errorf("nil result = %v, %v", nilSlice, err)
	}
}

func TestBreaker_IsSuccessfulIgnoresClassifiedErrors(t *testing.T) {
	errNotFound := errors.New("not found")
	s := testSettings("test-classified")
	s.IsSuccessful = func(err error) bool { return err == nil || errors.Is(err, errNotFound) }
	b := New(s)

	for i := 0; i < 10; i++ {
		_, err := Execute(b, func() (int, error) { return 0, errNotFound })
		if !errors.Is(err, errNotFound) {
			t.Fatalf("err = %v, want errNotFound passthrough", err)
		}
	}

	if b.State() != "closed" {
		t.Errorf("state = %q, want closed", b.State())
	}
}

func TestIsRejected(t *testing.T) {
	if IsRejected(errUpstream) {
		t.Error("plain error reported as rejection")
	}
	if IsRejected(nil) {
		t.Error("nil reported as rejection")
	}
}
