// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/tomtom215/reelpick/internal/events"
	"github.com/tomtom215/reelpick/internal/logging"
	"github.com/tomtom215/reelpick/internal/metrics"
	"github.com/tomtom215/reelpick/internal/recommend"
	"github.com/tomtom215/reelpick/internal/validation"
)

// Recommender produces recommendations for one user.
type Recommender interface {
	GetRecommendations(ctx context.Context, userID string) (*recommend.Result, error)
}

// ResultStore caches recommendation results per user. SetIfCurrent refuses
// results whose generation predates an Invalidate for the same user.
type ResultStore interface {
	Get(userID string) (*recommend.Result, bool)
	Generation(userID string) uint64
	SetIfCurrent(userID string, gen uint64, res *recommend.Result) bool
	Invalidate(userID string) bool
}

// EventPublisher announces history changes.
type EventPublisher interface {
	Publish(ctx context.Context, e *events.HistoryEvent) error
}

// Pinger reports dependency health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// maxEventBodyBytes bounds POST /history/events bodies.
const maxEventBodyBytes = 4 << 10

// Handler serves the API endpoints.
type Handler struct {
	engine         Recommender
	results        ResultStore
	publisher      EventPublisher
	store          Pinger
	requestTimeout time.Duration
	startTime      time.Time
}

// HandlerOption configures optional Handler collaborators.
type HandlerOption func(*Handler)

// WithResultStore enables per-user result caching.
func WithResultStore(s ResultStore) HandlerOption {
	return func(h *Handler) { h.results = s }
}

// WithEventPublisher enables POST /api/v1/history/events.
func WithEventPublisher(p EventPublisher) HandlerOption {
	return func(h *Handler) { h.publisher = p }
}

// WithHealthCheck adds a dependency ping to /healthz.
func WithHealthCheck(p Pinger) HandlerOption {
	return func(h *Handler) { h.store = p }
}

// WithRequestTimeout bounds recommendation computation.
func WithRequestTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) { h.requestTimeout = d }
}

// NewHandler creates the API handler.
func NewHandler(engine Recommender, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine:         engine,
		requestTimeout: 30 * time.Second,
		startTime:      time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// GetRecommendations handles GET /api/v1/recommendations.
// Query: refresh=true bypasses the per-user cache.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID := logging.UserIDFromContext(r.Context())
	if userID == "" {
		rw.Unauthorized("Authentication required")
		return
	}

	refresh := false
	if v := r.URL.Query().Get("refresh"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			rw.BadRequest("refresh must be a boolean")
			return
		}
		refresh = parsed
	}

	if !refresh && h.results != nil {
		if res, ok := h.results.Get(userID); ok {
			rw.SuccessCached(res)
			return
		}
	}

	var gen uint64
	if h.results != nil {
		gen = h.results.Generation(userID)
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	start := time.Now()
	res, err := h.engine.GetRecommendations(ctx, userID)
	if err != nil {
		metrics.RecommendationErrors.Inc()
		logging.Ctx(r.Context()).Error().Err(err).Msg("Recommendation failed")
		rw.InternalError("Failed to generate recommendations")
		return
	}
	metrics.RecordRecommendation(string(res.Mode), len(res.Recommendations), time.Since(start))

	if h.results != nil && !h.results.SetIfCurrent(userID, gen, res) {
		logging.Ctx(r.Context()).Debug().Msg("History changed during computation, result not cached")
	}
	rw.Success(res)
}

// historyEventRequest is the POST /api/v1/history/events body.
type historyEventRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=watched rated episode list"`
	ContentID string `json:"content_id,omitempty" validate:"omitempty,max=256"`
}

// PostHistoryEvent handles POST /api/v1/history/events. The caller's own
// cached result is dropped before the event is published.
func (h *Handler) PostHistoryEvent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID := logging.UserIDFromContext(r.Context())
	if userID == "" {
		rw.Unauthorized("Authentication required")
		return
	}
	if h.publisher == nil {
		rw.ServiceUnavailable("History events are not enabled")
		return
	}

	var req historyEventRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		rw.BadRequest("Invalid JSON body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			rw.ValidationError("Invalid history event", verr.Details())
			return
		}
		rw.BadRequest(err.Error())
		return
	}

	if h.results != nil {
		h.results.Invalidate(userID)
	}

	event := &events.HistoryEvent{
		UserID:    userID,
		Kind:      events.Kind(req.Kind),
		ContentID: req.ContentID,
	}
	if err := h.publisher.Publish(r.Context(), event); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to publish history event")
		rw.ServiceUnavailable("Failed to publish history event")
		return
	}
	rw.Accepted(map[string]string{"status": "accepted"})
}

// healthResponse is the /healthz payload.
type healthResponse struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	resp := healthResponse{
		Status:        "ok",
		Database:      "unchecked",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Health check failed")
			resp.Status = "degraded"
			resp.Database = "unreachable"
			rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Database unreachable", resp)
			return
		}
		resp.Database = "ok"
	}
	rw.Success(resp)
}
