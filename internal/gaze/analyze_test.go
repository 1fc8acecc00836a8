package gaze

import (
	"errors"
	"math"
	"testing"
)

func steadyThenSaccade() []GazePoint {
	var points []GazePoint
	// 200ms inside the left half.
	for i := 0; i < 7; i++ {
		points = append(points, GazePoint{Timestamp: float64(i) * 0.033, X: 0.25, Y: 0.5})
	}
	// 200ms inside the right half.
	for i := 0; i < 7; i++ {
		points = append(points, GazePoint{Timestamp: 0.5 + float64(i)*0.033, X: 0.75, Y: 0.5})
	}
	return points
}

func TestAnalyzeEndToEnd(t *testing.T) {
	aois := []AOI{
		testAOI("left", "Left", 0, 0, 0.5, 1),
		testAOI("right", "Right", 0.5, 0, 0.5, 1),
	}

	res, err := Analyze(steadyThenSaccade(), aois, DefaultParams())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(res.Fixations) != 2 {
		t.Fatalf("expected 2 fixations, got %d", len(res.Fixations))
	}
	if len(res.FixationLabels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(res.FixationLabels))
	}
	if res.FixationLabels[0] != "Left" || res.FixationLabels[1] != "Right" {
		t.Errorf("unexpected labels %v", res.FixationLabels)
	}

	// Dwell records: one per AOI plus the outside bucket, in input order.
	if len(res.DwellTime) != 3 {
		t.Fatalf("expected 3 dwell records, got %d", len(res.DwellTime))
	}
	if res.DwellTime[0].FixationCount != 1 || res.DwellTime[1].FixationCount != 1 {
		t.Errorf("each AOI should hold one fixation: %+v", res.DwellTime[:2])
	}
	if res.DwellTime[2].FixationCount != 0 {
		t.Errorf("outside bucket should be empty: %+v", res.DwellTime[2])
	}

	if len(res.FirstFixation) != 2 {
		t.Fatalf("expected 2 first-fixation records, got %d", len(res.FirstFixation))
	}
	if res.FirstFixation[0].TimeToFirstFixation == nil || *res.FirstFixation[0].TimeToFirstFixation != 0 {
		t.Errorf("Left TTFF should be 0: %+v", res.FirstFixation[0])
	}
	if res.FirstFixation[1].TimeToFirstFixation == nil ||
		math.Abs(*res.FirstFixation[1].TimeToFirstFixation-500) > 1e-9 {
		t.Errorf("Right TTFF should be 500ms: %+v", res.FirstFixation[1])
	}

	if res.Scanpath.FixationCount != 2 {
		t.Errorf("scanpath fixation count = %d, want 2", res.Scanpath.FixationCount)
	}
	if math.Abs(res.Scanpath.TotalLength-0.5) > 1e-12 {
		t.Errorf("scanpath length = %v, want 0.5", res.Scanpath.TotalLength)
	}
}

func TestAnalyzeNoAOIs(t *testing.T) {
	res, err := Analyze(steadyThenSaccade(), nil, DefaultParams())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.DwellTime) != 1 || res.DwellTime[0].AOIName != OutsideAOIsName {
		t.Errorf("expected only the outside bucket: %+v", res.DwellTime)
	}
	if math.Abs(res.DwellTime[0].PercentOfTotal-100) > 1e-9 {
		t.Errorf("outside percent = %v, want 100", res.DwellTime[0].PercentOfTotal)
	}
	for _, label := range res.FixationLabels {
		if label != OutsideLabel {
			t.Errorf("expected %q label, got %q", OutsideLabel, label)
		}
	}
	if len(res.FirstFixation) != 0 {
		t.Errorf("no AOIs should yield no first-fixation records: %+v", res.FirstFixation)
	}
}

func TestAnalyzeEmptyPoints(t *testing.T) {
	res, err := Analyze(nil, []AOI{testAOI("a", "A", 0, 0, 1, 1)}, DefaultParams())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.Fixations) != 0 || res.Scanpath.FixationCount != 0 {
		t.Errorf("empty input should yield no fixations: %+v", res)
	}
}

func TestAnalyzeInvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"negative threshold", Params{DispersionThreshold: -0.01, MinDurationMs: 100}},
		{"zero duration", Params{DispersionThreshold: 0.03, MinDurationMs: 0}},
		{"nan threshold", Params{DispersionThreshold: math.NaN(), MinDurationMs: 100}},
		{"inf duration", Params{DispersionThreshold: 0.03, MinDurationMs: math.Inf(1)}},
		{"nan video start", Params{DispersionThreshold: 0.03, MinDurationMs: 100, VideoStartTime: math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(nil, nil, tt.params)
			if !errors.Is(err, ErrInvalidParameters) {
				t.Errorf("expected ErrInvalidParameters, got %v", err)
			}
		})
	}
}

func TestAnalyzeInvalidAOI(t *testing.T) {
	tests := []struct {
		name string
		aoi  AOI
	}{
		{"negative width", testAOI("a", "A", 0, 0, -0.5, 1)},
		{"negative height", testAOI("a", "A", 0, 0, 1, -0.5)},
		{"nan bounds", testAOI("a", "A", math.NaN(), 0, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(nil, []AOI{tt.aoi}, DefaultParams())
			if !errors.Is(err, ErrInvalidAOI) {
				t.Errorf("expected ErrInvalidAOI, got %v", err)
			}
		})
	}
}

func TestAnalyzeZeroAreaAOIAccepted(t *testing.T) {
	_, err := Analyze(nil, []AOI{testAOI("a", "A", 0.5, 0.5, 0, 0)}, DefaultParams())
	if err != nil {
		t.Errorf("zero-area AOI should be accepted, got %v", err)
	}
}

func TestAnalyzeInvalidGazeData(t *testing.T) {
	tests := []struct {
		name  string
		point GazePoint
	}{
		{"nan x", GazePoint{Timestamp: 0, X: math.NaN(), Y: 0.5}},
		{"inf y", GazePoint{Timestamp: 0, X: 0.5, Y: math.Inf(-1)}},
		{"nan timestamp", GazePoint{Timestamp: math.NaN(), X: 0.5, Y: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// One bad sample fails the whole call.
			points := append(steadyThenSaccade(), tt.point)
			_, err := Analyze(points, nil, DefaultParams())
			if !errors.Is(err, ErrInvalidGazeData) {
				t.Errorf("expected ErrInvalidGazeData, got %v", err)
			}
		})
	}
}

func TestAnalyzeOutOfRangeCoordinatesTolerated(t *testing.T) {
	// Off-stimulus gaze is finite and legal; it just never matches an AOI.
	var points []GazePoint
	for i := 0; i < 7; i++ {
		points = append(points, GazePoint{Timestamp: float64(i) * 0.033, X: 1.4, Y: -0.2})
	}
	res, err := Analyze(points, []AOI{testAOI("a", "A", 0, 0, 1, 1)}, DefaultParams())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.Fixations) != 1 {
		t.Fatalf("expected 1 fixation, got %d", len(res.Fixations))
	}
	if res.FixationLabels[0] != OutsideLabel {
		t.Errorf("off-stimulus fixation should be %q, got %q", OutsideLabel, res.FixationLabels[0])
	}
}
