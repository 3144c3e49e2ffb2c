package domain

// Icon describes the directional marker graphic. Size and Anchor are in
// pixels; the anchor is the pivot used for both placement and rotation.
type Icon struct {
	Severity  Severity   `json:"severity"`
	ClassName string     `json:"class_name"`
	Size      [2]float64 `json:"size"`
	Anchor    [2]float64 `json:"anchor"`
}

// iconSize is the arrow glyph's bounding box. The anchor sits at its centre
// so rotation does not shift the marker off its coordinate.
var iconSize = [2]float64{24, 35}

// IconFor returns the directional icon for a severity.
func IconFor(s Severity) Icon {
	return Icon{
		Severity:  s,
		ClassName: "wind-icon " + s.CSSClass(),
		Size:      iconSize,
		Anchor:    [2]float64{iconSize[0] / 2, iconSize[1] / 2},
	}
}
