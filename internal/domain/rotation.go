package domain

import "math"

// DisplayRotation converts a meteorological bearing (the direction the wind
// blows from) into the clockwise icon rotation that points where the wind
// blows to. The result is always in [0, 360) for finite input.
func DisplayRotation(bearing float64) float64 {
	r := math.Mod(bearing+180, 360)
	if r < 0 {
		r += 360
	}
	// A tiny negative remainder rounds up to exactly 360 after the shift.
	if r >= 360 {
		r -= 360
	}
	return r
}
