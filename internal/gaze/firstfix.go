package gaze

import "sort"

// AnalyzeFirstFixations computes time-to-first-fixation and entry counts,
// one record per input AOI in input order. videoStartTime (seconds) is
// the session origin TTFF is measured from.
//
// AOI assignment uses the single-winner rule (MatchFixation): with
// overlapping AOIs a fixation belongs to the first containing AOI only,
// so a later AOI in the list can legitimately report no first fixation
// even though its rectangle covers the centroid.
//
// entryCount counts rising edges of "assigned to this AOI" across the
// time-ordered fixation list. The pre-sequence state is defined as
// outside, so a first fixation already inside the AOI counts as an entry.
func AnalyzeFirstFixations(fixations []Fixation, aois []AOI, videoStartTime float64) []FirstFixationMetrics {
	sorted := make([]Fixation, len(fixations))
	copy(sorted, fixations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	assigned := make([]int, len(sorted))
	for i, f := range sorted {
		assigned[i] = matchIndex(f, aois)
	}

	metrics := make([]FirstFixationMetrics, 0, len(aois))
	for aoiIdx, aoi := range aois {
		entry := FirstFixationMetrics{
			AOIID:   aoi.ID,
			AOIName: aoi.Name,
		}

		wasInAOI := false
		for i, f := range sorted {
			inAOI := assigned[i] == aoiIdx
			if inAOI && !wasInAOI {
				entry.EntryCount++
			}
			if inAOI && entry.TimeToFirstFixation == nil {
				ttff := (f.StartTime - videoStartTime) * 1000
				duration := f.Duration
				x, y := f.X, f.Y
				entry.TimeToFirstFixation = &ttff
				entry.FirstFixationDuration = &duration
				entry.FirstFixationX = &x
				entry.FirstFixationY = &y
			}
			wasInAOI = inAOI
		}

		metrics = append(metrics, entry)
	}

	return metrics
}
