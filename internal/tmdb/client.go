// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package tmdb is a minimal client for The Movie Database API. It resolves
// genres for watched or rated titles that the local catalog does not carry.
//
// Requests are paced by a token-bucket limiter, retried on HTTP 429 with
// exponential backoff, and routed through a circuit breaker so an outage
// costs one fast failure per lookup instead of a full timeout.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelpick/internal/breaker"
	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/metrics"
	"github.com/tomtom215/reelpick/internal/recommend"
)

var (
	// ErrNotFound is returned when TMDB has no entry for the reference.
	ErrNotFound = errors.New("tmdb: not found")

	// ErrInvalidRef is returned for references without a TMDB ID or medium.
	ErrInvalidRef = errors.New("tmdb: reference has no tmdb id or medium")
)

// maxErrorBodySize limits the response body read for error reporting.
const maxErrorBodySize = 4 * 1024

// Genre is one entry of a details response.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Details is the subset of the movie and tv details responses we use.
type Details struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Name   string  `json:"name"`
	Genres []Genre `json:"genres"`
}

// GenreNames returns the genre labels, filling missing names from the
// built-in table. Unknown unnamed genres are dropped.
func (d *Details) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			name, _ = GenreName(g.ID)
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Client calls the TMDB v3 API.
type Client struct {
	baseURL        string
	apiKey         string
	language       string
	client         *http.Client
	limiter        *rate.Limiter
	breaker        *breaker.Breaker
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a TMDB client from configuration.
func NewClient(cfg *config.TMDBConfig) *Client {
	settings := breaker.DefaultSettings("tmdb-api")
	settings.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:        rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		breaker:        breaker.New(settings),
		maxRetries:     3,
		retryBaseDelay: 500 * time.Millisecond,
	}
}

// GetGenres implements recommend.MetadataResolver.
func (c *Client) GetGenres(ctx context.Context, ref recommend.ContentRef) ([]string, error) {
	if ref.ExternalID <= 0 || !ref.Medium.Valid() {
		return nil, ErrInvalidRef
	}

	start := time.Now()
	details, err := c.GetDetails(ctx, ref.Medium, ref.ExternalID)
	metrics.RecordMetadataLookup(lookupOutcome(err), time.Since(start))
	if err != nil {
		return nil, err
	}
	return details.GenreNames(), nil
}

// GetDetails fetches /{movie|tv}/{id}.
func (c *Client) GetDetails(ctx context.Context, medium recommend.Medium, id int) (*Details, error) {
	return breaker.Execute(c.breaker, func() (*Details, error) {
		var details Details
		path := "/" + string(medium) + "/" + strconv.Itoa(id)
		if err := c.makeRequest(ctx, path, &details); err != nil {
			return nil, err
		}
		return &details, nil
	})
}

// makeRequest performs a GET against path and decodes the JSON body.
func (c *Client) makeRequest(ctx context.Context, path string, result any) error {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	reqURL := c.baseURL + path + "?" + params.Encode()

	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		return fmt.Errorf("tmdb %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return fmt.Errorf("tmdb %s failed with status %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode tmdb %s response: %w", path, err)
	}
	return nil
}

// doRequestWithRateLimit waits for a limiter token, then performs the
// request. HTTP 429 responses are retried with exponential backoff,
// honoring Retry-After when present.
func (c *Client) doRequestWithRateLimit(ctx context.Context, reqURL string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		_ = resp.Body.Close()

		if attempt == c.maxRetries {
			return nil, fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && seconds >= 0 {
			delay = time.Duration(seconds) * time.Second
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func lookupOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
