// Package report serializes analysis results into tabular text exports
// and plotting-ready scanpath structures.
package report

import (
	"fmt"
	"strings"

	"github.com/fovea-data/gaze.report/internal/gaze"
	"github.com/fovea-data/gaze.report/internal/units"
)

// SequenceSeparator joins AOI visit sequences in the scanpath export.
const SequenceSeparator = "->"

// Export table names, used by the API export endpoint and the CLI.
const (
	TableFixations     = "fixations"
	TableDwellTime     = "dwell_time"
	TableFirstFixation = "first_fixation"
	TableScanpath      = "scanpath"
)

// FixationsCSV renders one row per detected fixation with its
// single-winner AOI label.
func FixationsCSV(res *gaze.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("id,start_time_s,end_time_s,duration_ms,x,y,point_count,aoi\n")
	for i, f := range res.Fixations {
		label := gaze.OutsideLabel
		if i < len(res.FixationLabels) {
			label = res.FixationLabels[i]
		}
		fmt.Fprintf(&b, "%d,%s,%s,%s,%s,%s,%d,%s\n",
			f.ID,
			units.Seconds(f.StartTime),
			units.Seconds(f.EndTime),
			units.Millis(f.Duration),
			units.Coord(f.X),
			units.Coord(f.Y),
			f.PointCount,
			label,
		)
	}
	return b.String()
}

// DwellTimeCSV renders the per-AOI dwell table, outside bucket last.
func DwellTimeCSV(res *gaze.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("aoi_id,aoi_name,total_dwell_ms,fixation_count,mean_duration_ms,percent_total\n")
	for _, d := range res.DwellTime {
		fmt.Fprintf(&b, "%s,%s,%s,%d,%s,%s\n",
			d.AOIID,
			d.AOIName,
			units.Millis(d.TotalDwellTime),
			d.FixationCount,
			units.Millis(d.MeanFixationDuration),
			units.Percent(d.PercentOfTotal),
		)
	}
	return b.String()
}

// FirstFixationCSV renders the per-AOI first-fixation table. AOIs that
// were never fixated render N/A in the numeric columns.
func FirstFixationCSV(res *gaze.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("aoi_id,aoi_name,ttff_ms,first_duration_ms,first_x,first_y,entry_count\n")
	for _, ff := range res.FirstFixation {
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s,%s,%d\n",
			ff.AOIID,
			ff.AOIName,
			units.MillisOrNA(ff.TimeToFirstFixation),
			units.MillisOrNA(ff.FirstFixationDuration),
			units.CoordOrNA(ff.FirstFixationX),
			units.CoordOrNA(ff.FirstFixationY),
			ff.EntryCount,
		)
	}
	return b.String()
}

// ScanpathCSV renders the flat metric/value summary, ending with the
// collapsed AOI sequence joined with the arrow separator.
func ScanpathCSV(res *gaze.AnalysisResult) string {
	sp := res.Scanpath
	var b strings.Builder
	b.WriteString("metric,value\n")
	fmt.Fprintf(&b, "total_length,%s\n", units.Coord(sp.TotalLength))
	fmt.Fprintf(&b, "fixation_count,%d\n", sp.FixationCount)
	fmt.Fprintf(&b, "total_duration_ms,%s\n", units.Millis(sp.TotalDuration))
	fmt.Fprintf(&b, "mean_fixation_duration_ms,%s\n", units.Millis(sp.MeanFixationDuration))
	fmt.Fprintf(&b, "mean_saccade_amplitude,%s\n", units.Coord(sp.MeanSaccadeAmplitude))
	fmt.Fprintf(&b, "aoi_sequence,%s\n", strings.Join(sp.AOISequence, SequenceSeparator))
	return b.String()
}

// TableCSV renders the named export table, for callers that select the
// table by query parameter or flag.
func TableCSV(res *gaze.AnalysisResult, table string) (string, error) {
	switch table {
	case TableFixations:
		return FixationsCSV(res), nil
	case TableDwellTime:
		return DwellTimeCSV(res), nil
	case TableFirstFixation:
		return FirstFixationCSV(res), nil
	case TableScanpath:
		return ScanpathCSV(res), nil
	default:
		return "", fmt.Errorf("unknown export table %q", table)
	}
}
