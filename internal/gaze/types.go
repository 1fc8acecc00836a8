// Package gaze converts a raw stream of gaze samples into fixations and
// computes AOI-based eye-tracking metrics: dwell time, time to first
// fixation and scanpath structure.
//
// The package is purely computational: no I/O, no clock reads, no hidden
// session state. Calling Analyze twice with the same inputs produces
// bit-identical results.
package gaze

// Sentinel labels for fixations that land outside every AOI.
const (
	// OutsideLabel is the per-fixation AOI label used in scanpath
	// sequences, transition matrices and fixation exports.
	OutsideLabel = "outside"
	// OutsideAOIsName names the synthetic dwell-time bucket that collects
	// fixations matched by no AOI.
	OutsideAOIsName = "Outside AOIs"
	// OutsideAOIsID is the aoi_id used for the synthetic dwell-time bucket.
	OutsideAOIsID = "outside"
)

// Default detection parameters. The dispersion threshold is in normalized
// stimulus units, the minimum duration in milliseconds.
const (
	DefaultDispersionThreshold = 0.03
	DefaultMinDurationMs       = 100
)

// GazePoint is one raw observation from the upstream tracker. X and Y are
// normalized stimulus-relative coordinates, conceptually [0,1] but not
// clamped: out-of-range values represent off-stimulus gaze and are
// tolerated. ScreenX/ScreenY are absolute display coordinates carried for
// export only; the analytics never read them.
type GazePoint struct {
	Timestamp   float64 `json:"timestamp"` // seconds, monotonic within a session
	FrameNumber int     `json:"frame_number"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	ScreenX     float64 `json:"screen_x"`
	ScreenY     float64 `json:"screen_y"`
}

// Rect is an axis-aligned rectangle in normalized stimulus coordinates
// with (X, Y) the top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether (x, y) lies inside the rectangle. All four
// edges are inclusive, so a point on the shared edge of two adjacent AOIs
// is inside both.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// AOI is a user-defined area of interest. Color is presentation-only but
// kept so AOI sets survive a CSV round trip. The analytics never mutate
// or create AOIs.
type AOI struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Bounds Rect   `json:"bounds"`
}

// Fixation is a temporally stable gaze cluster derived from a contiguous,
// time-ordered run of gaze points. IDs are sequential and 1-based in
// detection order. Created exclusively by DetectFixations; read-only
// afterward.
type Fixation struct {
	ID         int     `json:"id"`
	StartTime  float64 `json:"start_time"` // seconds, from first point in the run
	EndTime    float64 `json:"end_time"`   // seconds, from last point in the run
	Duration   float64 `json:"duration_ms"`
	X          float64 `json:"x"` // centroid
	Y          float64 `json:"y"`
	PointCount int     `json:"point_count"`

	// Points is the contributing run of gaze points, ascending by
	// timestamp. Omitted from JSON to keep API payloads small.
	Points []GazePoint `json:"-"`
}

// Params are the detection and timing parameters for one analysis run.
type Params struct {
	DispersionThreshold float64 `json:"dispersion_threshold"`
	MinDurationMs       float64 `json:"min_duration_ms"`
	VideoStartTime      float64 `json:"video_start_time"` // seconds
}

// DefaultParams returns the standard I-DT parameters.
func DefaultParams() Params {
	return Params{
		DispersionThreshold: DefaultDispersionThreshold,
		MinDurationMs:       DefaultMinDurationMs,
		VideoStartTime:      0,
	}
}

// DwellTimeStats aggregates fixation time for one AOI (or the synthetic
// outside bucket).
type DwellTimeStats struct {
	AOIID                string  `json:"aoi_id"`
	AOIName              string  `json:"aoi_name"`
	TotalDwellTime       float64 `json:"total_dwell_ms"`
	FixationCount        int     `json:"fixation_count"`
	MeanFixationDuration float64 `json:"mean_duration_ms"`
	PercentOfTotal       float64 `json:"percent_total"`
}

// FirstFixationMetrics reports when and where an AOI was first fixated.
// The pointer fields are nil when the AOI was never matched.
type FirstFixationMetrics struct {
	AOIID                 string   `json:"aoi_id"`
	AOIName               string   `json:"aoi_name"`
	TimeToFirstFixation   *float64 `json:"ttff_ms"`
	FirstFixationDuration *float64 `json:"first_duration_ms"`
	FirstFixationX        *float64 `json:"first_x"`
	FirstFixationY        *float64 `json:"first_y"`
	EntryCount            int      `json:"entry_count"`
}

// ScanpathMetrics summarizes the time-ordered fixation sequence and the
// saccades between consecutive fixations.
type ScanpathMetrics struct {
	TotalLength          float64   `json:"total_length"`
	SaccadeAmplitudes    []float64 `json:"saccade_amplitudes"`
	MeanSaccadeAmplitude float64   `json:"mean_saccade_amplitude"`
	FixationCount        int       `json:"fixation_count"`
	TotalDuration        float64   `json:"total_duration_ms"`
	MeanFixationDuration float64   `json:"mean_fixation_duration_ms"`

	// AOISequence is the visit order with consecutive duplicates
	// collapsed; non-consecutive revisits are kept.
	AOISequence []string `json:"aoi_sequence"`

	// TransitionMatrix counts consecutive fixation pairs keyed by
	// (previous label, current label), built from the uncollapsed
	// per-fixation labels.
	TransitionMatrix map[string]map[string]int `json:"aoi_transition_matrix"`
}

// AnalysisResult is the combined output of one analysis run.
type AnalysisResult struct {
	Params    Params     `json:"params"`
	Fixations []Fixation `json:"fixations"`

	// FixationLabels holds the single-winner AOI name (or OutsideLabel)
	// for each fixation, index-aligned with Fixations.
	FixationLabels []string `json:"fixation_labels"`

	DwellTime     []DwellTimeStats       `json:"dwell_time"`
	FirstFixation []FirstFixationMetrics `json:"first_fixation"`
	Scanpath      ScanpathMetrics        `json:"scanpath"`
}
