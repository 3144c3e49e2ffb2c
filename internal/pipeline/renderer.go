package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/wind-station-map/internal/domain"
	"github.com/couchcryptid/wind-station-map/internal/observability"
	"github.com/oklog/ulid/v2"
)

// FailureNotice is the message shown to the user when a render pass aborts.
const FailureNotice = "Could not load wind data. See console for details."

// StationSource returns the current list of station observations.
type StationSource interface {
	FetchStations(ctx context.Context) ([]domain.StationRecord, error)
}

// MarkerSink receives the markers of every successful render pass.
type MarkerSink interface {
	LoadBatch(ctx context.Context, markers []domain.Marker) error
}

// Result summarizes one render pass.
type Result struct {
	PassID   string
	Stations int
	Markers  []domain.Marker
	Duration time.Duration
}

// Renderer fetches station observations and draws them onto a surface.
type Renderer struct {
	source  StationSource
	sink    MarkerSink
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// NewRenderer creates a Renderer. Pass a nil sink to skip marker publishing.
func NewRenderer(source StationSource, sink MarkerSink, logger *slog.Logger, metrics *observability.Metrics) *Renderer {
	return &Renderer{
		source:  source,
		sink:    sink,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once a render pass has completed successfully.
func (r *Renderer) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no render pass has completed yet")
	}
	return nil
}

// Render runs one pass: fetch every station, then for each one classify it,
// rotate its icon, place the marker and bind its popup. A fetch or parse
// failure aborts the pass, logs once and shows one notice; markers drawn
// before the failure stay on the surface. There is no retry.
func (r *Renderer) Render(ctx context.Context, surface domain.Surface, notifier domain.Notifier) (Result, error) {
	start := time.Now()
	res := Result{PassID: ulid.Make().String()}
	logger := r.logger.With("pass_id", res.PassID)

	r.metrics.RenderInFlight.Inc()
	defer r.metrics.RenderInFlight.Dec()

	records, err := r.source.FetchStations(ctx)
	if err != nil {
		return r.fail(logger, notifier, res, start, err)
	}
	res.Stations = len(records)
	r.metrics.StationsPerPass.Observe(float64(len(records)))

	res.Markers = make([]domain.Marker, 0, len(records))
	for _, rec := range records {
		station, err := rec.Observation()
		if err != nil {
			return r.fail(logger, notifier, res, start, err)
		}

		marker := domain.NewMarker(station)
		handle := surface.AddMarker(marker.Position, marker.Icon, marker.Rotation)
		handle.BindPopup(marker.Popup)

		res.Markers = append(res.Markers, marker)
		r.metrics.MarkersDrawn.WithLabelValues(string(marker.Severity)).Inc()
	}

	res.Duration = time.Since(start)
	r.metrics.RenderPasses.WithLabelValues("success").Inc()
	r.ready.Store(true)
	logger.Info("render pass complete",
		"stations", res.Stations,
		"markers", len(res.Markers),
		"duration", res.Duration,
	)

	r.publish(ctx, logger, res.Markers)
	return res, nil
}

// WarmUp renders onto a discarded surface until a pass succeeds, so the
// service becomes ready without waiting for a first page load. Failed
// attempts are repeated every interval. Returns ctx.Err() if ctx ends first.
func (r *Renderer) WarmUp(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := r.Render(ctx, discard{}, discard{}); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// discard is a surface nobody looks at.
type discard struct{}

func (discard) AddMarker(domain.LatLng, domain.Icon, float64) domain.MarkerHandle {
	return discard{}
}

func (discard) BindPopup(domain.Popup) {}
func (discard) Notify(string)          {}

func (r *Renderer) fail(logger *slog.Logger, notifier domain.Notifier, res Result, start time.Time, err error) (Result, error) {
	res.Duration = time.Since(start)
	r.metrics.RenderPasses.WithLabelValues(outcome(err)).Inc()
	logger.Error("failed to load wind data",
		"error", err,
		"markers_drawn", len(res.Markers),
	)
	notifier.Notify(FailureNotice)
	return res, err
}

// publish hands markers to the sink. Sink failures never affect the map.
func (r *Renderer) publish(ctx context.Context, logger *slog.Logger, markers []domain.Marker) {
	if r.sink == nil || len(markers) == 0 {
		return
	}
	if err := r.sink.LoadBatch(ctx, markers); err != nil {
		r.metrics.MarkerPublishErrors.Inc()
		logger.Warn("publish markers failed", "error", err, "markers", len(markers))
		return
	}
	r.metrics.MarkersPublished.Add(float64(len(markers)))
}

func outcome(err error) string {
	if errors.Is(err, domain.ErrParse) {
		return "parse_error"
	}
	return "fetch_error"
}
