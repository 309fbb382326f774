// Package fpl provides the typed HTTP client for the public FPL API plus the
// bootstrap cache shared by every analysis request.
//
// The upstream uses plain unauthenticated GETs. Rate limiting is handled via
// a token bucket limiter; sustained upstream failure trips a circuit breaker
// so analysis requests fail fast instead of stacking timeouts.
package fpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/fplhub/fpl-analytics/internal/metrics"
)

// Client is the shared HTTP client for all FPL endpoints. No retries are
// performed here; retry policy, if any, belongs to the caller.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	imageBaseURL string
	userAgent    string
	limiter      *rate.Limiter
	breaker      *gobreaker.CircuitBreaker
	imageBreaker *gobreaker.CircuitBreaker
	logger       *slog.Logger
}

// NewClient creates an FPL HTTP client with rate limiting and circuit
// breaking. requestsPerSecond bounds the upstream call rate across all
// inbound requests.
func NewClient(baseURL, imageBaseURL string, timeout time.Duration, requestsPerSecond int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      baseURL,
		imageBaseURL: imageBaseURL,
		userAgent:    "fpl-analytics/1.0",
		limiter:      rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		breaker:      newBreaker("fpl-api", logger),
		imageBreaker: newBreaker("fpl-images", logger),
		logger:       logger,
	}
}

func newBreaker(name string, logger *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"service", name, "from", from.String(), "to", to.String())
		},
	})
}

// get performs a rate-limited, breaker-guarded GET against the FPL API.
func (c *Client) get(ctx context.Context, endpoint, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	start := time.Now()
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.roundTrip(ctx, endpoint, url)
	})
	if err != nil {
		metrics.ObserveUpstream(endpoint, "error", time.Since(start))
		if ue, ok := err.(*UpstreamError); ok {
			return nil, ue
		}
		return nil, &UpstreamError{Endpoint: endpoint, Err: err}
	}
	metrics.ObserveUpstream(endpoint, "ok", time.Since(start))
	return out.([]byte), nil
}

func (c *Client) roundTrip(ctx context.Context, endpoint, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("body: %s", truncate(body, 200)),
		}
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, url string, out any) error {
	body, err := c.get(ctx, endpoint, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// --------------------------------------------------------------------------
// Typed fetch operations
// --------------------------------------------------------------------------

// FetchBootstrap downloads the full reference snapshot. Callers normally go
// through BootstrapCache instead.
func (c *Client) FetchBootstrap(ctx context.Context) (*Bootstrap, error) {
	var b Bootstrap
	if err := c.getJSON(ctx, "bootstrap-static", c.baseURL+"/bootstrap-static/", &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// FetchEntry returns a manager's identity and season summary.
func (c *Client) FetchEntry(ctx context.Context, managerID int) (*Entry, error) {
	var e Entry
	url := fmt.Sprintf("%s/entry/%d/", c.baseURL, managerID)
	if err := c.getJSON(ctx, "entry", url, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// FetchHistory returns a manager's per-gameweek season records, past seasons,
// and chip usages.
func (c *Client) FetchHistory(ctx context.Context, managerID int) (*History, error) {
	var h History
	url := fmt.Sprintf("%s/entry/%d/history/", c.baseURL, managerID)
	if err := c.getJSON(ctx, "history", url, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// FetchPicks returns a manager's squad selection for one gameweek.
func (c *Client) FetchPicks(ctx context.Context, managerID, gameweek int) (*GameweekPicks, error) {
	var p GameweekPicks
	url := fmt.Sprintf("%s/entry/%d/event/%d/picks/", c.baseURL, managerID, gameweek)
	if err := c.getJSON(ctx, "picks", url, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchElementSummary returns a player's per-round season history and
// upcoming fixtures.
func (c *Client) FetchElementSummary(ctx context.Context, playerID int) (*ElementSummary, error) {
	var s ElementSummary
	url := fmt.Sprintf("%s/element-summary/%d/", c.baseURL, playerID)
	if err := c.getJSON(ctx, "element-summary", url, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// FetchStandings returns a classic league's standings (first page).
func (c *Client) FetchStandings(ctx context.Context, leagueID int) (*Standings, error) {
	var s Standings
	url := fmt.Sprintf("%s/leagues-classic/%d/standings/", c.baseURL, leagueID)
	if err := c.getJSON(ctx, "standings", url, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetRaw relays an API path verbatim and returns the raw response bytes.
// Used by the passthrough handlers, which never decode upstream payloads.
func (c *Client) GetRaw(ctx context.Context, endpoint, path string) ([]byte, error) {
	return c.get(ctx, endpoint, c.baseURL+path)
}

// FetchPlayerImage downloads a player photo by element code from the image
// host. Returns the image bytes and the upstream Content-Type.
func (c *Client) FetchPlayerImage(ctx context.Context, code int) ([]byte, string, error) {
	const endpoint = "player-image"
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", &UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	url := fmt.Sprintf("%s/p%d.png", c.imageBaseURL, code)
	start := time.Now()
	out, err := c.imageBreaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, &UpstreamError{Endpoint: endpoint, Err: err}
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, &UpstreamError{Endpoint: endpoint, Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return nil, &UpstreamError{Endpoint: endpoint, Status: resp.StatusCode}
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &UpstreamError{Endpoint: endpoint, Err: err}
		}
		return imageResult{data: body, contentType: resp.Header.Get("Content-Type")}, nil
	})
	if err != nil {
		metrics.ObserveUpstream(endpoint, "error", time.Since(start))
		if ue, ok := err.(*UpstreamError); ok {
			return nil, "", ue
		}
		return nil, "", &UpstreamError{Endpoint: endpoint, Err: err}
	}
	metrics.ObserveUpstream(endpoint, "ok", time.Since(start))
	res := out.(imageResult)
	return res.data, res.contentType, nil
}

type imageResult struct {
	data        []byte
	contentType string
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
