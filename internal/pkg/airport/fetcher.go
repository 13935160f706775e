package airport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ijalalfrz/airport-status-service/internal/pkg/logger"
	"github.com/ijalalfrz/airport-status-service/internal/pkg/observability"
)

const statusPath = "asws/api/airport/status"

// Fetcher loads the current status of one airport.
type Fetcher interface {
	Fetch(ctx context.Context, code string) (Status, error)
}

// config for the HTTP status client
type ClientConfig struct {
	BaseURL string
	// Timeout of zero leaves the transport default in place.
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(config ClientConfig) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		baseURL: config.BaseURL,
		client:  httpClient,
	}
}

// Fetch issues one GET for code. There is no retry.
func (c *Client) Fetch(ctx context.Context, code string) (Status, error) {
	status, err := c.fetch(ctx, code)
	if err != nil {
		return Status{}, &FetchError{Code: code, Cause: err}
	}

	return status, nil
}

func (c *Client) fetch(ctx context.Context, code string) (Status, error) {
	endpoint, err := url.JoinPath(c.baseURL, statusPath, code)
	if err != nil {
		return Status{}, fmt.Errorf("build status url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Status{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if reqID, ok := ctx.Value(logger.RequestIDKey).(string); ok {
		req.Header.Set("X-Request-Id", reqID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Status{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Status{}, ErrUnknownAirport
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return Status{}, ErrUpstreamStatus.Wrap(fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	return Decode(resp.Body)
}

type instrumentedFetcher struct {
	next Fetcher
}

// Instrument records fetch outcomes and latency for every call on next.
func Instrument(next Fetcher) Fetcher {
	return &instrumentedFetcher{next: next}
}

func (f *instrumentedFetcher) Fetch(ctx context.Context, code string) (Status, error) {
	ctx = logger.WithAirportCode(ctx, code)
	start := time.Now()

	status, err := f.next.Fetch(ctx, code)

	elapsed := time.Since(start)
	observability.RecordFetch(err, elapsed)

	if err != nil {
		slog.DebugContext(ctx, "airport status fetch failed",
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()))
		return Status{}, AsFetchError(code, err)
	}

	slog.DebugContext(ctx, "airport status fetched", slog.Duration("elapsed", elapsed))

	return status, nil
}
