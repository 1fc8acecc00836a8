package gaze

import (
	"fmt"
	"math"
)

// ValidateParams rejects unusable detection parameters before any
// computation runs.
func ValidateParams(p Params) error {
	if math.IsNaN(p.DispersionThreshold) || math.IsInf(p.DispersionThreshold, 0) {
		return fmt.Errorf("%w: dispersion threshold is not finite", ErrInvalidParameters)
	}
	if p.DispersionThreshold < 0 {
		return fmt.Errorf("%w: dispersion threshold %v is negative", ErrInvalidParameters, p.DispersionThreshold)
	}
	if math.IsNaN(p.MinDurationMs) || math.IsInf(p.MinDurationMs, 0) {
		return fmt.Errorf("%w: minimum duration is not finite", ErrInvalidParameters)
	}
	if p.MinDurationMs <= 0 {
		return fmt.Errorf("%w: minimum duration %vms is not positive", ErrInvalidParameters, p.MinDurationMs)
	}
	if math.IsNaN(p.VideoStartTime) || math.IsInf(p.VideoStartTime, 0) {
		return fmt.Errorf("%w: video start time is not finite", ErrInvalidParameters)
	}
	return nil
}

// ValidateAOIs rejects AOIs whose geometry would make downstream
// containment checks silently misbehave. Zero-area AOIs are accepted;
// they just never match a realistic centroid.
func ValidateAOIs(aois []AOI) error {
	for i, a := range aois {
		for _, v := range []float64{a.Bounds.X, a.Bounds.Y, a.Bounds.Width, a.Bounds.Height} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: aoi %q (index %d) has non-finite bounds", ErrInvalidAOI, a.Name, i)
			}
		}
		if a.Bounds.Width < 0 {
			return fmt.Errorf("%w: aoi %q (index %d) has negative width %v", ErrInvalidAOI, a.Name, i, a.Bounds.Width)
		}
		if a.Bounds.Height < 0 {
			return fmt.Errorf("%w: aoi %q (index %d) has negative height %v", ErrInvalidAOI, a.Name, i, a.Bounds.Height)
		}
	}
	return nil
}

// ValidateGazePoints rejects points with NaN or infinite timestamps or
// stimulus coordinates. The whole call fails rather than dropping the
// offending sample, so NaN can never propagate into aggregates
// undetected.
func ValidateGazePoints(points []GazePoint) error {
	for i, p := range points {
		if math.IsNaN(p.Timestamp) || math.IsInf(p.Timestamp, 0) {
			return fmt.Errorf("%w: point %d has non-finite timestamp", ErrInvalidGazeData, i)
		}
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("%w: point %d has non-finite coordinates", ErrInvalidGazeData, i)
		}
	}
	return nil
}
