package domain

// Severity is a coarse wind strength label used to colour map icons.
type Severity string

const (
	SeverityLight  Severity = "light"
	SeverityMedium Severity = "medium"
	SeverityStrong Severity = "strong"
	SeveritySevere Severity = "severe"
)

// Severities lists every label from calmest to strongest.
var Severities = []Severity{SeverityLight, SeverityMedium, SeverityStrong, SeveritySevere}

// Classify maps a wind speed in m/s to a severity label:
//   - < 5 light
//   - < 10 medium
//   - < 15 strong
//   - otherwise severe
//
// It accepts any float. Negative speeds and NaN fall through to light.
func Classify(speed float64) Severity {
	switch {
	case speed >= 15:
		return SeveritySevere
	case speed >= 10:
		return SeverityStrong
	case speed >= 5:
		return SeverityMedium
	default:
		return SeverityLight
	}
}

// CSSClass returns the stylesheet class that colours icons of this severity.
func (s Severity) CSSClass() string {
	return "wind-" + string(s)
}
