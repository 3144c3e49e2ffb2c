package domain

// Surface is anything markers can be drawn on. Implementations must rotate
// the icon clockwise by rotation degrees about its anchor.
type Surface interface {
	AddMarker(pos LatLng, icon Icon, rotation float64) MarkerHandle
}

// MarkerHandle refers to a marker already placed on a Surface.
type MarkerHandle interface {
	// BindPopup attaches text shown when the user interacts with the marker.
	// It does not open the popup.
	BindPopup(p Popup)
}

// Notifier surfaces a blocking, user-facing notice.
type Notifier interface {
	Notify(message string)
}
