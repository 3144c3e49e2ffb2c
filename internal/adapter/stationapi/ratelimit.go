package stationapi

import (
	"context"
	"fmt"

	"github.com/couchcryptid/wind-station-map/internal/domain"
	"github.com/couchcryptid/wind-station-map/internal/observability"
	"golang.org/x/time/rate"
)

// Fetcher is the subset of Client wrapped by RateLimitedClient.
type Fetcher interface {
	FetchStations(ctx context.Context) ([]domain.StationRecord, error)
}

// RateLimitedClient wraps a Fetcher with a shared token bucket so a burst of
// page loads cannot flood the upstream API.
type RateLimitedClient struct {
	inner   Fetcher
	limiter *rate.Limiter
	metrics *observability.Metrics
}

// NewRateLimitedClient allows rps requests per second with the given burst.
func NewRateLimitedClient(inner Fetcher, rps float64, burst int, metrics *observability.Metrics) *RateLimitedClient {
	return &RateLimitedClient{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		metrics: metrics,
	}
}

// FetchStations waits for a token, then forwards to the wrapped client.
func (r *RateLimitedClient) FetchStations(ctx context.Context) ([]domain.StationRecord, error) {
	r.metrics.RateLimitWaiting.Inc()
	err := r.limiter.Wait(ctx)
	r.metrics.RateLimitWaiting.Dec()
	if err != nil {
		return nil, fmt.Errorf("%w: rate limit wait canceled: %w", domain.ErrFetch, err)
	}
	return r.inner.FetchStations(ctx)
}

var (
	_ Fetcher = (*Client)(nil)
	_ Fetcher = (*RateLimitedClient)(nil)
)
