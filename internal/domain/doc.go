// Package domain models wind-station observations and the rules for drawing
// them on a map.
//
// # Data Source
//
// Observations come from a JSON API that returns one array of station
// objects per request. Each element carries a display name, a WGS-84
// position, wind speed and optional gust in m/s, a wind bearing in degrees,
// and a preformatted observation time. The service never stores them: every
// page load fetches and draws the full list from scratch.
//
// # Wind Direction Convention
//
// Bearings follow the meteorological convention: a value of 270 means the
// wind blows from the west. Icons are drawn pointing the way the air moves,
// so the display rotation is the bearing turned half a circle:
//
//	display = (bearing + 180) mod 360
//	270 (westerly) -> 90 (points east)
//	  0 (northerly) -> 180 (points south)
//
// See [DisplayRotation].
//
// # Severity Classification
//
// Wind speed maps onto four labels used to colour the icons. Lower bounds
// are inclusive:
//
//	< 5 m/s light | < 10 m/s medium | < 15 m/s strong | >= 15 m/s severe
//
// Values below zero are not rejected and classify as light. See [Classify].
//
// # Popup Text
//
// Each marker carries a popup with the station name, wind speed, an
// optional gust line (only when the gust is present and non-zero),
// direction in degrees and the observation time. See [PopupFor].
package domain
