package mapview

import "github.com/couchcryptid/wind-station-map/internal/domain"

// FeatureCollection is a GeoJSON (RFC 7946) collection of marker points.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one marker as a GeoJSON point.
type Feature struct {
	Type       string            `json:"type"`
	Geometry   Geometry          `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// Geometry holds a point in [longitude, latitude] order.
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// FeatureProperties carries everything needed to draw the marker.
type FeatureProperties struct {
	Name      string          `json:"name"`
	Severity  domain.Severity `json:"severity"`
	IconClass string          `json:"icon_class"`
	Rotation  float64         `json:"rotation"`
	Popup     *domain.Popup   `json:"popup,omitempty"`
}

// GeoJSON returns the view's markers as a FeatureCollection.
func (v *View) GeoJSON() FeatureCollection {
	markers := v.Markers()
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(markers)),
	}
	for _, m := range markers {
		props := FeatureProperties{
			Severity:  m.Icon.Severity,
			IconClass: m.Icon.ClassName,
			Rotation:  m.Rotation,
			Popup:     m.Popup,
		}
		if m.Popup != nil {
			props.Name = m.Popup.Title
		}
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: [2]float64{m.Position.Lng, m.Position.Lat},
			},
			Properties: props,
		})
	}
	return fc
}
