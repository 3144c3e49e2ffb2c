package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for render passes.
type Metrics struct {
	RenderPasses    *prometheus.CounterVec // labels: outcome={success,fetch_error,parse_error}
	MarkersDrawn    *prometheus.CounterVec // labels: severity={light,medium,strong,severe}
	StationsPerPass prometheus.Histogram
	RenderInFlight  prometheus.Gauge

	// Upstream station API metrics.
	FetchDuration    prometheus.Histogram
	RateLimitWaiting prometheus.Gauge

	// Marker publishing metrics.
	MarkersPublished    prometheus.Counter
	MarkerPublishErrors prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.RenderPasses,
		m.MarkersDrawn,
		m.StationsPerPass,
		m.RenderInFlight,
		m.FetchDuration,
		m.RateLimitWaiting,
		m.MarkersPublished,
		m.MarkerPublishErrors,
	)

	return m
}

// NewUnregisteredMetrics creates Metrics without registering them. One-shot
// commands and tests use it to avoid "already registered" panics.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RenderPasses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wind_map",
			Name:      "render_passes_total",
			Help:      "Render passes by outcome.",
		}, []string{"outcome"}),
		MarkersDrawn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wind_map",
			Name:      "markers_drawn_total",
			Help:      "Station markers drawn, by severity.",
		}, []string{"severity"}),
		StationsPerPass: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wind_map",
			Name:      "stations_per_pass",
			Help:      "Number of stations returned by the upstream API per render pass.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		}),
		RenderInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wind_map",
			Name:      "render_in_flight",
			Help:      "Render passes currently running.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wind_map",
			Name:      "upstream_fetch_duration_seconds",
			Help:      "Station API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RateLimitWaiting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wind_map",
			Name:      "upstream_rate_limit_waiting",
			Help:      "Fetches currently waiting on the upstream rate limiter.",
		}),
		MarkersPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wind_map",
			Name:      "markers_published_total",
			Help:      "Markers written to the marker topic.",
		}),
		MarkerPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wind_map",
			Name:      "marker_publish_errors_total",
			Help:      "Failed marker batch publishes.",
		}),
	}
}
