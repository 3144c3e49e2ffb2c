package domain

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// Popup is the text attached to a marker and shown when the user clicks it.
// Title is rendered emphasized above the lines.
type Popup struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// PopupFor builds the popup for a station: name, wind speed, gust (only
// when reported and non-zero), direction and observation time.
func PopupFor(s StationObservation) Popup {
	lines := make([]string, 0, 4)
	lines = append(lines, fmt.Sprintf("Wind: %s m/s", formatNumber(s.WindSpeed)))
	if s.HasGust() {
		lines = append(lines, fmt.Sprintf("Gust: %s m/s", formatNumber(*s.WindGust)))
	}
	lines = append(lines,
		fmt.Sprintf("Direction: %s°", formatNumber(s.WindDirection)),
		"Time: "+s.ObservationTime,
	)
	return Popup{Title: s.Name, Lines: lines}
}

// String renders the popup as plain text, one line per row.
func (p Popup) String() string {
	return strings.Join(append([]string{p.Title}, p.Lines...), "\n")
}

// HTML renders the popup as an escaped HTML fragment with a bold title.
func (p Popup) HTML() string {
	var b strings.Builder
	b.WriteString("<b>")
	b.WriteString(html.EscapeString(p.Title))
	b.WriteString("</b>")
	for _, line := range p.Lines {
		b.WriteString("<br>")
		b.WriteString(html.EscapeString(line))
	}
	return b.String()
}

// formatNumber prints the shortest decimal that round-trips, so 7 renders
// as "7" and 3.2 as "3.2".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
