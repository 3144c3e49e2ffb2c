package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/wind-station-map/internal/adapter/mapview"
	"github.com/couchcryptid/wind-station-map/internal/domain"
	"github.com/couchcryptid/wind-station-map/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// renderTimeout bounds one page load's render pass, including any wait on the
// upstream rate limiter. It stays below WriteTimeout so the response can
// still be written.
const renderTimeout = 25 * time.Second

// MapRenderer runs a render pass onto a surface and reports readiness.
type MapRenderer interface {
	sharedobs.ReadinessChecker
	Render(ctx context.Context, surface domain.Surface, notifier domain.Notifier) (pipeline.Result, error)
}

// Server serves the wind map plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	renderer   MapRenderer
	mapOpts    mapview.Options
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /, /markers.geojson, /healthz,
// /readyz, and /metrics routes.
func NewServer(addr string, renderer MapRenderer, mapOpts mapview.Options, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			// Each page load waits on the upstream station API.
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		renderer: renderer,
		mapOpts:  mapOpts,
		logger:   logger,
	}

	mux.HandleFunc("GET /{$}", s.handleMap)
	mux.HandleFunc("GET /markers.geojson", s.handleGeoJSON)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(renderer))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleMap is one page load: a fresh view, one render pass, one page. A
// failed pass still serves the page so the user sees the tiles, any markers
// drawn so far, and the notice.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	view := mapview.New(s.mapOpts)
	_, _ = s.renderer.Render(ctx, view, view)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := view.WriteHTML(w); err != nil {
		s.logger.Error("render map page failed", "error", err)
	}
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	view := mapview.New(s.mapOpts)
	if _, err := s.renderer.Render(ctx, view, view); err != nil {
		writeJSON(w, http.StatusBadGateway, "application/json", map[string]string{
			"error": pipeline.FailureNotice,
		})
		return
	}
	writeJSON(w, http.StatusOK, "application/geo+json", view.GeoJSON())
}

func writeJSON(w http.ResponseWriter, status int, contentType string, v any) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
