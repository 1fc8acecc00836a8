package gaze

import "math"

// Distance returns the Euclidean distance between two points in
// normalized stimulus coordinates.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Dispersion returns the maximum pairwise Euclidean distance over a set
// of gaze points, or 0 for fewer than two points.
//
// This is the exact I-DT dispersion (max over all pairs), not the
// bounding-box diagonal approximation some implementations substitute.
// The two differ, and detection boundary decisions depend on which is
// used, so the O(n²) scan is deliberate.
func Dispersion(points []GazePoint) float64 {
	if len(points) < 2 {
		return 0
	}

	maxDist := 0.0
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			d := Distance(points[i].X, points[i].Y, points[j].X, points[j].Y)
			if d > maxDist {
				maxDist = d
			}
		}
	}
	return maxDist
}

// Centroid returns the arithmetic mean of the points' x and y
// coordinates. The centroid of an empty set is defined as (0, 0).
func Centroid(points []GazePoint) (x, y float64) {
	if len(points) == 0 {
		return 0, 0
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return sumX / n, sumY / n
}
