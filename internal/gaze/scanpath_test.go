package gaze

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAnalyzeScanpathEmpty(t *testing.T) {
	metrics := AnalyzeScanpath(nil, nil)
	if metrics.FixationCount != 0 || metrics.TotalLength != 0 || metrics.TotalDuration != 0 {
		t.Errorf("empty input should yield zero metrics: %+v", metrics)
	}
	if len(metrics.AOISequence) != 0 || len(metrics.SaccadeAmplitudes) != 0 {
		t.Errorf("empty input should yield empty collections: %+v", metrics)
	}
	if metrics.TransitionMatrix == nil || len(metrics.TransitionMatrix) != 0 {
		t.Errorf("transition matrix should be empty, not nil: %v", metrics.TransitionMatrix)
	}
}

func TestAnalyzeScanpathPathLength(t *testing.T) {
	fixations := []Fixation{
		{ID: 1, StartTime: 0, Duration: 100, X: 0, Y: 0},
		{ID: 2, StartTime: 0.2, Duration: 200, X: 0.3, Y: 0.4}, // distance 0.5
		{ID: 3, StartTime: 0.5, Duration: 300, X: 0.3, Y: 0.9}, // distance 0.5
	}

	metrics := AnalyzeScanpath(fixations, nil)
	if math.Abs(metrics.TotalLength-1.0) > 1e-12 {
		t.Errorf("total length = %v, want 1.0", metrics.TotalLength)
	}
	if len(metrics.SaccadeAmplitudes) != 2 {
		t.Fatalf("expected 2 amplitudes, got %d", len(metrics.SaccadeAmplitudes))
	}
	if math.Abs(metrics.MeanSaccadeAmplitude-0.5) > 1e-12 {
		t.Errorf("mean amplitude = %v, want 0.5", metrics.MeanSaccadeAmplitude)
	}
	if math.Abs(metrics.TotalDuration-600) > 1e-9 {
		t.Errorf("total duration = %v, want 600", metrics.TotalDuration)
	}
	if math.Abs(metrics.MeanFixationDuration-200) > 1e-9 {
		t.Errorf("mean duration = %v, want 200", metrics.MeanFixationDuration)
	}
}

func TestAnalyzeScanpathSingleFixation(t *testing.T) {
	fixations := []Fixation{{ID: 1, StartTime: 0, Duration: 150, X: 0.5, Y: 0.5}}

	metrics := AnalyzeScanpath(fixations, nil)
	if metrics.TotalLength != 0 || metrics.MeanSaccadeAmplitude != 0 {
		t.Errorf("single fixation has no saccades: %+v", metrics)
	}
	if diff := cmp.Diff([]string{OutsideLabel}, metrics.AOISequence); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeScanpathSequenceCollapsesConsecutive(t *testing.T) {
	aois := []AOI{
		testAOI("a", "A", 0, 0, 0.4, 0.4),
		testAOI("b", "B", 0.6, 0.6, 0.4, 0.4),
	}
	fixations := []Fixation{
		{ID: 1, StartTime: 0.0, Duration: 100, X: 0.2, Y: 0.2}, // A
		{ID: 2, StartTime: 0.2, Duration: 100, X: 0.3, Y: 0.3}, // A (collapsed)
		{ID: 3, StartTime: 0.4, Duration: 100, X: 0.8, Y: 0.8}, // B
		{ID: 4, StartTime: 0.6, Duration: 100, X: 0.2, Y: 0.2}, // A (revisit kept)
	}

	metrics := AnalyzeScanpath(fixations, aois)
	want := []string{"A", "B", "A"}
	if diff := cmp.Diff(want, metrics.AOISequence); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeScanpathTransitionMatrixUncollapsed(t *testing.T) {
	aois := []AOI{
		testAOI("a", "A", 0, 0, 0.4, 0.4),
		testAOI("b", "B", 0.6, 0.6, 0.4, 0.4),
	}
	fixations := []Fixation{
		{ID: 1, StartTime: 0.0, Duration: 100, X: 0.2, Y: 0.2}, // A
		{ID: 2, StartTime: 0.2, Duration: 100, X: 0.3, Y: 0.3}, // A
		{ID: 3, StartTime: 0.4, Duration: 100, X: 0.8, Y: 0.8}, // B
		{ID: 4, StartTime: 0.6, Duration: 100, X: 0.5, Y: 0.5}, // outside
	}

	metrics := AnalyzeScanpath(fixations, aois)
	want := map[string]map[string]int{
		"A": {"A": 1, "B": 1},
		"B": {OutsideLabel: 1},
	}
	if diff := cmp.Diff(want, metrics.TransitionMatrix); diff != "" {
		t.Errorf("transition matrix mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeScanpathSortsByStartTime(t *testing.T) {
	fixations := []Fixation{
		{ID: 2, StartTime: 0.5, Duration: 100, X: 1, Y: 0},
		{ID: 1, StartTime: 0.0, Duration: 100, X: 0, Y: 0},
	}

	metrics := AnalyzeScanpath(fixations, nil)
	if math.Abs(metrics.TotalLength-1.0) > 1e-12 {
		t.Errorf("total length = %v, want 1.0", metrics.TotalLength)
	}
}
