package stationapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/wind-station-map/internal/domain"
	"github.com/couchcryptid/wind-station-map/internal/observability"
	"github.com/goccy/go-json"
)

// maxErrorBody caps how much of a failed response is copied into the error.
const maxErrorBody = 512

// Client fetches station observations from the wind station API.
// It implements pipeline.StationSource.
type Client struct {
	url        string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a station API client for the fully resolved endpoint URL.
func NewClient(url string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// FetchStations issues a single GET and decodes the JSON array of stations.
// Transport failures and non-2xx statuses wrap domain.ErrFetch; bodies that
// are not an array of station objects wrap domain.ErrParse.
func (c *Client) FetchStations(ctx context.Context) ([]domain.StationRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching stations", "url", c.url)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: API error: status %d: %s", domain.ErrFetch, resp.StatusCode, body)
	}

	var stations []domain.StationRecord
	if err := json.NewDecoder(resp.Body).Decode(&stations); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrParse, err)
	}
	if stations == nil {
		return nil, fmt.Errorf("%w: response is null, expected an array", domain.ErrParse)
	}

	return stations, nil
}
