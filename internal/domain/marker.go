package domain

import "time"

// Marker is the drawn form of one station, as recorded by a surface and
// published downstream.
type Marker struct {
	Station    string    `json:"station"`
	Position   LatLng    `json:"position"`
	Severity   Severity  `json:"severity"`
	Icon       Icon      `json:"icon"`
	Rotation   float64   `json:"rotation"`
	Popup      Popup     `json:"popup"`
	RenderedAt time.Time `json:"rendered_at"`
}

// NewMarker derives the full marker for a station: severity from wind speed,
// rotation from the bearing, icon from the severity, and the popup text.
func NewMarker(s StationObservation) Marker {
	severity := Classify(s.WindSpeed)
	return Marker{
		Station:    s.Name,
		Position:   s.Position,
		Severity:   severity,
		Icon:       IconFor(severity),
		Rotation:   DisplayRotation(s.WindDirection),
		Popup:      PopupFor(s),
		RenderedAt: clock.Now(),
	}
}
