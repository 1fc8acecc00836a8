package gaze

import "errors"

// The analysis favours total functions over errors for domain edge cases:
// empty input, zero AOIs, unvisited AOIs and zero-variance point sets all
// produce well-defined zero/empty/nil results. Only contract violations
// surface as errors, each wrapping one of these sentinels so callers can
// distinguish the kind with errors.Is.
var (
	// ErrInvalidAOI marks malformed AOI geometry, e.g. negative width or
	// height, or non-finite bounds.
	ErrInvalidAOI = errors.New("invalid aoi")

	// ErrInvalidGazeData marks NaN or infinite timestamps or coordinates
	// in the input stream.
	ErrInvalidGazeData = errors.New("invalid gaze data")

	// ErrInvalidParameters marks unusable detection parameters, e.g. a
	// non-positive minimum duration or a negative dispersion threshold.
	ErrInvalidParameters = errors.New("invalid parameters")
)
