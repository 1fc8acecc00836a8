package gaze

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// AnalyzeScanpath computes path length, saccade amplitudes, the collapsed
// AOI visit sequence and the AOI transition matrix over the time-ordered
// fixation list. Empty input yields zero values and empty collections,
// not an error.
func AnalyzeScanpath(fixations []Fixation, aois []AOI) ScanpathMetrics {
	metrics := ScanpathMetrics{
		SaccadeAmplitudes: []float64{},
		AOISequence:       []string{},
		TransitionMatrix:  map[string]map[string]int{},
	}
	if len(fixations) == 0 {
		return metrics
	}

	sorted := make([]Fixation, len(fixations))
	copy(sorted, fixations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	metrics.FixationCount = len(sorted)
	for _, f := range sorted {
		metrics.TotalDuration += f.Duration
	}
	metrics.MeanFixationDuration = metrics.TotalDuration / float64(len(sorted))

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		metrics.SaccadeAmplitudes = append(metrics.SaccadeAmplitudes,
			Distance(prev.X, prev.Y, cur.X, cur.Y))
	}
	if len(metrics.SaccadeAmplitudes) > 0 {
		metrics.TotalLength = floats.Sum(metrics.SaccadeAmplitudes)
		metrics.MeanSaccadeAmplitude = stat.Mean(metrics.SaccadeAmplitudes, nil)
	}

	// Visit sequence collapses consecutive duplicates only; A→B→A stays
	// three entries. The transition matrix counts every consecutive pair
	// from the uncollapsed labels, including self transitions.
	labels := fixationLabels(sorted, aois)
	for i, label := range labels {
		if i == 0 || label != metrics.AOISequence[len(metrics.AOISequence)-1] {
			metrics.AOISequence = append(metrics.AOISequence, label)
		}
		if i > 0 {
			from := labels[i-1]
			if metrics.TransitionMatrix[from] == nil {
				metrics.TransitionMatrix[from] = map[string]int{}
			}
			metrics.TransitionMatrix[from][label]++
		}
	}

	return metrics
}
