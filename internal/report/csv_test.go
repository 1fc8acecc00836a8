package report

import (
	"strings"
	"testing"

	"github.com/fovea-data/gaze.report/internal/gaze"
)

func sampleAOIs() []gaze.AOI {
	return []gaze.AOI{
		{ID: "left", Name: "Left", Bounds: gaze.Rect{X: 0, Y: 0, Width: 0.5, Height: 1}},
		{ID: "right", Name: "Right", Bounds: gaze.Rect{X: 0.5, Y: 0, Width: 0.5, Height: 1}},
		{ID: "never", Name: "Never", Bounds: gaze.Rect{X: 0.9, Y: 0.9, Width: 0.05, Height: 0.05}},
	}
}

func samplePoints() []gaze.GazePoint {
	var points []gaze.GazePoint
	for i := 0; i < 7; i++ {
		points = append(points, gaze.GazePoint{Timestamp: float64(i) * 0.033, X: 0.25, Y: 0.5})
	}
	for i := 0; i < 7; i++ {
		points = append(points, gaze.GazePoint{Timestamp: 0.5 + float64(i)*0.033, X: 0.75, Y: 0.5})
	}
	return points
}

func sampleResult(t *testing.T) *gaze.AnalysisResult {
	t.Helper()
	res, err := gaze.Analyze(samplePoints(), sampleAOIs(), gaze.DefaultParams())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return res
}

func TestFixationsCSV(t *testing.T) {
	text := FixationsCSV(sampleResult(t))
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	if lines[0] != "id,start_time_s,end_time_s,duration_ms,x,y,point_count,aoi" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[1] != "1,0.000,0.198,198.0,0.2500,0.5000,7,Left" {
		t.Errorf("unexpected first row %q", lines[1])
	}
	if lines[2] != "2,0.500,0.698,198.0,0.7500,0.5000,7,Right" {
		t.Errorf("unexpected second row %q", lines[2])
	}
}

func TestDwellTimeCSV(t *testing.T) {
	text := DwellTimeCSV(sampleResult(t))
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	if lines[0] != "aoi_id,aoi_name,total_dwell_ms,fixation_count,mean_duration_ms,percent_total" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if len(lines) != 5 {
		t.Fatalf("expected header + 3 AOIs + outside, got %d lines", len(lines))
	}
	if lines[1] != "left,Left,198.0,1,198.0,50.00" {
		t.Errorf("unexpected Left row %q", lines[1])
	}
	if lines[3] != "never,Never,0.0,0,0.0,0.00" {
		t.Errorf("unexpected Never row %q", lines[3])
	}
	if !strings.HasPrefix(lines[4], gaze.OutsideAOIsID+","+gaze.OutsideAOIsName+",") {
		t.Errorf("last row should be the outside bucket, got %q", lines[4])
	}
}

func TestFirstFixationCSVRendersNA(t *testing.T) {
	text := FirstFixationCSV(sampleResult(t))
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	if lines[0] != "aoi_id,aoi_name,ttff_ms,first_duration_ms,first_x,first_y,entry_count" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "left,Left,0.0,198.0,0.2500,0.5000,1" {
		t.Errorf("unexpected Left row %q", lines[1])
	}
	if lines[3] != "never,Never,N/A,N/A,N/A,N/A,0" {
		t.Errorf("unvisited AOI should render N/A cells, got %q", lines[3])
	}
}

func TestScanpathCSV(t *testing.T) {
	text := ScanpathCSV(sampleResult(t))
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	want := []string{
		"metric,value",
		"total_length,0.5000",
		"fixation_count,2",
		"total_duration_ms,396.0",
		"mean_fixation_duration_ms,198.0",
		"mean_saccade_amplitude,0.5000",
		"aoi_sequence,Left->Right",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(lines), text)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestTableCSV(t *testing.T) {
	res := sampleResult(t)
	for _, table := range []string{TableFixations, TableDwellTime, TableFirstFixation, TableScanpath} {
		text, err := TableCSV(res, table)
		if err != nil {
			t.Errorf("TableCSV(%q): %v", table, err)
		}
		if !strings.Contains(text, "\n") {
			t.Errorf("TableCSV(%q) produced no rows", table)
		}
	}
	if _, err := TableCSV(res, "bogus"); err == nil {
		t.Error("unknown table should error")
	}
}

func TestExportsAreDeterministic(t *testing.T) {
	// Two independent runs over identical input must produce identical
	// export text, byte for byte.
	first := sampleResult(t)
	second := sampleResult(t)
	for _, table := range []string{TableFixations, TableDwellTime, TableFirstFixation, TableScanpath} {
		a, _ := TableCSV(first, table)
		b, _ := TableCSV(second, table)
		if a != b {
			t.Errorf("table %q differs between runs:\n%s\nvs\n%s", table, a, b)
		}
	}
}
