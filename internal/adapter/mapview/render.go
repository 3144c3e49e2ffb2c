package mapview

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// pageMarker is the JSON shape consumed by the page script.
type pageMarker struct {
	Lat       float64    `json:"lat"`
	Lng       float64    `json:"lng"`
	ClassName string     `json:"class_name"`
	Size      [2]float64 `json:"size"`
	Anchor    [2]float64 `json:"anchor"`
	Rotation  float64    `json:"rotation"`
	PopupHTML string     `json:"popup_html,omitempty"`
}

type pageData struct {
	Title   string
	Map     Options
	Markers []pageMarker
	Notices []string
}

// WriteHTML renders the view as a standalone Leaflet page. Icons are rotated
// with a CSS transform about their anchor; popups open on click; queued
// notices are raised as blocking alerts after the map is drawn.
func (v *View) WriteHTML(w io.Writer) error {
	markers := v.Markers()
	data := pageData{
		Title:   "Wind Stations",
		Map:     v.opts,
		Markers: make([]pageMarker, 0, len(markers)),
		Notices: v.Notices(),
	}
	if data.Notices == nil {
		data.Notices = []string{}
	}
	for _, m := range markers {
		pm := pageMarker{
			Lat:       m.Position.Lat,
			Lng:       m.Position.Lng,
			ClassName: m.Icon.ClassName,
			Size:      m.Icon.Size,
			Anchor:    m.Icon.Anchor,
			Rotation:  m.Rotation,
		}
		if m.Popup != nil {
			pm.PopupHTML = m.Popup.HTML()
		}
		data.Markers = append(data.Markers, pm)
	}
	return pageTmpl.ExecuteTemplate(w, "map.html", data)
}
