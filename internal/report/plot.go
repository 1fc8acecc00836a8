package report

import (
	"sort"

	"github.com/fovea-data/gaze.report/internal/gaze"
)

// Marker radius bounds in normalized stimulus units. Radii interpolate
// linearly between these based on each fixation's duration relative to
// the session's shortest and longest fixation.
const (
	MinFixationRadius = 0.010
	MaxFixationRadius = 0.045
)

// FixationMarker is one scanpath circle: position is the fixation
// centroid, radius encodes relative duration. Pure data, no drawing.
type FixationMarker struct {
	FixationID int     `json:"fixation_id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Radius     float64 `json:"radius"`
	DurationMs float64 `json:"duration_ms"`
}

// SaccadeSegment is one scanpath line between two consecutive fixations.
type SaccadeSegment struct {
	FromID int     `json:"from_id"`
	ToID   int     `json:"to_id"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
}

// ScanpathPlot holds the visualization primitives for one session.
type ScanpathPlot struct {
	Markers  []FixationMarker `json:"markers"`
	Segments []SaccadeSegment `json:"segments"`
}

// BuildScanpathPlot produces one marker per fixation and one segment per
// consecutive fixation pair, in time order. When every fixation has the
// same duration all markers get the minimum radius.
func BuildScanpathPlot(fixations []gaze.Fixation) ScanpathPlot {
	plot := ScanpathPlot{
		Markers:  []FixationMarker{},
		Segments: []SaccadeSegment{},
	}
	if len(fixations) == 0 {
		return plot
	}

	sorted := make([]gaze.Fixation, len(fixations))
	copy(sorted, fixations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	minDur, maxDur := sorted[0].Duration, sorted[0].Duration
	for _, f := range sorted[1:] {
		if f.Duration < minDur {
			minDur = f.Duration
		}
		if f.Duration > maxDur {
			maxDur = f.Duration
		}
	}

	for i, f := range sorted {
		plot.Markers = append(plot.Markers, FixationMarker{
			FixationID: f.ID,
			X:          f.X,
			Y:          f.Y,
			Radius:     markerRadius(f.Duration, minDur, maxDur),
			DurationMs: f.Duration,
		})
		if i > 0 {
			prev := sorted[i-1]
			plot.Segments = append(plot.Segments, SaccadeSegment{
				FromID: prev.ID,
				ToID:   f.ID,
				X1:     prev.X,
				Y1:     prev.Y,
				X2:     f.X,
				Y2:     f.Y,
			})
		}
	}

	return plot
}

func markerRadius(duration, minDur, maxDur float64) float64 {
	if maxDur <= minDur {
		return MinFixationRadius
	}
	t := (duration - minDur) / (maxDur - minDur)
	return MinFixationRadius + t*(MaxFixationRadius-MinFixationRadius)
}
