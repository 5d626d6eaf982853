// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

type mockHTTPServer struct {
	listenErr    error
	shutdownErr  error
	stop         chan struct{}
	shutdownCall atomic.Bool
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{stop: make(chan struct{})}
}

func (m *mockHTTPServer) ListenAndServe() error {
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.stop
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(context.Context) error {
	m.shutdownCall.Store(true)
	close(m.stop)
	return m.shutdownErr
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	t.Parallel()

	srv := newMockHTTPServer()
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
	if !srv.shutdownCall.Load() {
		t.Error("Shutdown not called")
	}
}

func TestHTTPServerService_ListenFailure(t *testing.T) {
	t.Parallel()

	srv := newMockHTTPServer()
	srv.listenErr = errors.New("address already in use")

	err := NewHTTPServerService(srv, 0).Serve(context.Background())
	if err == nil || !errors.Is(err, srv.listenErr) {
		t.Errorf("Serve() = %v, want wrapped listen error", err)
	}
}

func TestHTTPServerService_String(t *testing.T) {
	t.Parallel()
	if got := NewHTTPServerService(newMockHTTPServer(), 0).String(); got != "http-server" {
		t.Errorf("String() = %q", got)
	}
}

type mockRouter struct {
	runErr error
	closed atomic.Bool
	block  bool
}

func (m *mockRouter) Run(ctx context.Context) error {
	if m.block {
		<-ctx.Done()
		return nil
	}
	return m.runErr
}

func (m *mockRouter) Close() error {
	m.closed.Store(true)
	return nil
}

func TestEventRouterService_StopsWithContext(t *testing.T) {
	t.Parallel()

	router := &mockRouter{block: true}
	var builds atomic.Int32
	svc := NewEventRouterService(func() (EventRouter, error) {
		builds.Add(1)
		return router, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
	if !router.closed.Load() {
		t.Error("router not closed")
	}
	if builds.Load() != 1 {
		t.Errorf("factory called %d times", builds.Load())
	}
}

func TestEventRouterService_Failures(t *testing.T) {
	t.Parallel()

	factoryErr := errors.New("nats: no servers available")
	svc := NewEventRouterService(func() (EventRouter, error) { return nil, factoryErr })
	if err := svc.Serve(context.Background()); !errors.Is(err, factoryErr) {
		t.Errorf("Serve() = %v, want factory error", err)
	}

	runErr := errors.New("subscribe failed")
	router := &mockRouter{runErr: runErr}
	svc = NewEventRouterService(func() (EventRouter, error) { return router, nil })
	if err := svc.Serve(context.Background()); !errors.Is(err, runErr) {
		t.Errorf("Serve() = %v, want run error", err)
	}

	// A router that exits cleanly on its own is still a crash to restart.
	svc = NewEventRouterService(func() (EventRouter, error) { return &mockRouter{}, nil })
	if err := svc.Serve(context.Background()); err == nil {
		t.Error("Serve() = nil for unexpected stop")
	}
}
