package domain

import (
	"fmt"
	"strings"
)

// StationRecord is one element of the station API response as it arrives on
// the wire. Numeric fields are pointers so a missing value can be told apart
// from zero.
type StationRecord struct {
	Name            string   `json:"name"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	WindSpeed       *float64 `json:"wind_speed"`
	WindGust        *float64 `json:"wind_gust"`
	WindDirection   *float64 `json:"wind_direction"`
	ObservationTime string   `json:"observation_time"`
}

// StationObservation is a single station reading ready to be drawn.
type StationObservation struct {
	Name            string
	Position        LatLng
	WindSpeed       float64  // m/s
	WindGust        *float64 // m/s, nil when not reported
	WindDirection   float64  // degrees, "blows from"
	ObservationTime string
}

// LatLng is a WGS-84 latitude/longitude pair in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Observation converts the wire record into a StationObservation. It fails
// with ErrParse when a field needed to place or classify the marker is
// missing.
func (r StationRecord) Observation() (StationObservation, error) {
	var missing []string
	if r.Latitude == nil {
		missing = append(missing, "latitude")
	}
	if r.Longitude == nil {
		missing = append(missing, "longitude")
	}
	if r.WindSpeed == nil {
		missing = append(missing, "wind_speed")
	}
	if r.WindDirection == nil {
		missing = append(missing, "wind_direction")
	}
	if len(missing) > 0 {
		return StationObservation{}, fmt.Errorf("%w: station %q missing %s",
			ErrParse, r.Name, strings.Join(missing, ", "))
	}

	return StationObservation{
		Name:            r.Name,
		Position:        LatLng{Lat: *r.Latitude, Lng: *r.Longitude},
		WindSpeed:       *r.WindSpeed,
		WindGust:        r.WindGust,
		WindDirection:   *r.WindDirection,
		ObservationTime: r.ObservationTime,
	}, nil
}

// HasGust reports whether the station reported a gust worth showing. Absent,
// null and zero gusts are all treated as "no gust".
func (s StationObservation) HasGust() bool {
	return s.WindGust != nil && *s.WindGust != 0
}
