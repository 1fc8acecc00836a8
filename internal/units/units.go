// Package units provides shared fixed-precision formatting for exported
// gaze metrics
package units

import "strconv"

// NA is the textual placeholder for absent numeric cells, e.g. the TTFF
// of an AOI that was never fixated.
const NA = "N/A"

// Export precisions. Internal computation stays full precision; only the
// tabular exports round, so repeated runs diff cleanly.
const (
	SecondsDecimals = 3
	MillisDecimals  = 1
	CoordDecimals   = 4
	PercentDecimals = 2
)

// Seconds formats a time in seconds for export.
func Seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', SecondsDecimals, 64)
}

// Millis formats a duration in milliseconds for export.
func Millis(v float64) string {
	return strconv.FormatFloat(v, 'f', MillisDecimals, 64)
}

// Coord formats a normalized stimulus coordinate for export.
func Coord(v float64) string {
	return strconv.FormatFloat(v, 'f', CoordDecimals, 64)
}

// Percent formats a percentage for export.
func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', PercentDecimals, 64)
}

// MillisOrNA formats an optional millisecond value, rendering nil as NA.
func MillisOrNA(v *float64) string {
	if v == nil {
		return NA
	}
	return Millis(*v)
}

// CoordOrNA formats an optional coordinate value, rendering nil as NA.
func CoordOrNA(v *float64) string {
	if v == nil {
		return NA
	}
	return Coord(*v)
}
