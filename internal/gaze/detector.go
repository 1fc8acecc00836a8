package gaze

import (
	"sort"

	"github.com/fovea-data/gaze.report/internal/monitoring"
)

// DetectFixations identifies fixations in a gaze sample stream using the
// classic Dispersion-Threshold Identification (I-DT) algorithm.
//
// The input may be unordered; a stable sort by timestamp is applied first
// (ties keep their original relative order). A sliding window grows until
// its time span reaches minDurationMs; if the window's dispersion is
// within the threshold it is greedily extended one point at a time until
// the first point whose inclusion would push dispersion past the
// threshold, then emitted as a fixation. Otherwise the window start
// advances by one point. Trailing points that cannot reach the minimum
// duration are discarded, never reported as a partial fixation.
//
// The dispersion comparison is inclusive: a window whose dispersion
// exactly equals the threshold still qualifies. Dispersion is recomputed
// over the full candidate window on every extension; callers with very
// large inputs can tolerate this because sessions are seconds to minutes
// of samples at tracker frame rate.
//
// Fewer than two points yields an empty result. Inputs are assumed
// finite; Analyze validates them before calling here.
func DetectFixations(points []GazePoint, dispersionThreshold, minDurationMs float64) []Fixation {
	fixations := []Fixation{}
	if len(points) < 2 {
		return fixations
	}

	sorted := make([]GazePoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	n := len(sorted)
	nextID := 1
	start := 0

	for start < n {
		// Grow the window until it spans the minimum duration.
		end := start
		for end < n-1 && spanMs(sorted, start, end) < minDurationMs {
			end++
		}
		if spanMs(sorted, start, end) < minDurationMs {
			// Input exhausted: the remaining points cannot form a
			// fixation, and later starts span even less time.
			break
		}

		if Dispersion(sorted[start:end+1]) > dispersionThreshold {
			start++
			continue
		}

		// Extend until the first point whose inclusion would exceed the
		// threshold. No look-ahead past the first violation.
		for end < n-1 && Dispersion(sorted[start:end+2]) <= dispersionThreshold {
			end++
		}

		if spanMs(sorted, start, end) >= minDurationMs {
			f := newFixation(nextID, sorted[start:end+1])
			monitoring.Debugf("fixation %d: points=%d span=%.1fms centroid=(%.4f,%.4f)",
				f.ID, f.PointCount, f.Duration, f.X, f.Y)
			fixations = append(fixations, f)
			nextID++
		}

		start = end + 1
	}

	return fixations
}

// spanMs returns the time span of the window [start, end] in milliseconds.
func spanMs(points []GazePoint, start, end int) float64 {
	return (points[end].Timestamp - points[start].Timestamp) * 1000
}

// newFixation builds a fixation from a contiguous run of time-ordered
// points. The run is copied so the fixation owns its points.
func newFixation(id int, run []GazePoint) Fixation {
	owned := make([]GazePoint, len(run))
	copy(owned, run)

	cx, cy := Centroid(owned)
	first := owned[0]
	last := owned[len(owned)-1]

	return Fixation{
		ID:         id,
		StartTime:  first.Timestamp,
		EndTime:    last.Timestamp,
		Duration:   (last.Timestamp - first.Timestamp) * 1000,
		X:          cx,
		Y:          cy,
		PointCount: len(owned),
		Points:     owned,
	}
}
