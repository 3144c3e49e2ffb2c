package mapview

import (
	"sync"

	"github.com/couchcryptid/wind-station-map/internal/domain"
)

// Default map framing: centred on Estonia over OpenStreetMap tiles.
const (
	DefaultZoom        = 7
	DefaultTileURL     = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// DefaultCenter is where the map opens.
var DefaultCenter = domain.LatLng{Lat: 58.6, Lng: 25.0}

// Options frames the map and its background tiles.
type Options struct {
	Center      domain.LatLng `json:"center"`
	Zoom        int           `json:"zoom"`
	TileURL     string        `json:"tile_url"`
	Attribution string        `json:"attribution"`
}

// DefaultOptions returns the standard framing.
func DefaultOptions() Options {
	return Options{
		Center:      DefaultCenter,
		Zoom:        DefaultZoom,
		TileURL:     DefaultTileURL,
		Attribution: DefaultAttribution,
	}
}

// Marker is a marker placed on a View.
type Marker struct {
	Position domain.LatLng
	Icon     domain.Icon
	Rotation float64
	Popup    *domain.Popup // nil until bound
}

// View is one map instance: it collects markers and notices for a single
// page load and renders them as HTML or GeoJSON. A View implements
// domain.Surface and domain.Notifier and is safe for concurrent use.
type View struct {
	opts Options

	mu      sync.Mutex
	markers []*Marker
	notices []string
}

// New creates an empty View.
func New(opts Options) *View {
	return &View{opts: opts}
}

// Options returns the view's framing.
func (v *View) Options() Options {
	return v.opts
}

// AddMarker places a rotated icon at pos.
func (v *View) AddMarker(pos domain.LatLng, icon domain.Icon, rotation float64) domain.MarkerHandle {
	v.mu.Lock()
	defer v.mu.Unlock()

	m := &Marker{Position: pos, Icon: icon, Rotation: rotation}
	v.markers = append(v.markers, m)
	return &markerHandle{view: v, marker: m}
}

// Notify queues a blocking notice for the page.
func (v *View) Notify(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notices = append(v.notices, message)
}

// Markers returns a snapshot of the placed markers in drawing order.
func (v *View) Markers() []Marker {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]Marker, len(v.markers))
	for i, m := range v.markers {
		out[i] = *m
		if m.Popup != nil {
			p := *m.Popup
			out[i].Popup = &p
		}
	}
	return out
}

// Notices returns a snapshot of queued notices.
func (v *View) Notices() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.notices...)
}

// Clear removes every marker and notice, keeping the framing.
func (v *View) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.markers = nil
	v.notices = nil
}

type markerHandle struct {
	view   *View
	marker *Marker
}

func (h *markerHandle) BindPopup(p domain.Popup) {
	h.view.mu.Lock()
	defer h.view.mu.Unlock()
	h.marker.Popup = &p
}

var (
	_ domain.Surface  = (*View)(nil)
	_ domain.Notifier = (*View)(nil)
)
