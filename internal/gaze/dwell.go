package gaze

import "gonum.org/v1/gonum/stat"

// AggregateDwellTime computes per-AOI dwell statistics plus a synthetic
// "Outside AOIs" bucket, one entry per input AOI in input order followed
// by the outside entry.
//
// Unlike the single-winner assignment used for scanpath and
// first-fixation metrics, every AOI here receives full credit for each
// fixation whose centroid it contains, regardless of overlap order. With
// overlapping AOIs the per-AOI percentages can therefore sum past 100;
// the outside bucket alone still uses the single-winner rule, so with
// disjoint AOIs everything sums to 100. This asymmetry reproduces the
// established behaviour of the metric and is documented rather than
// unified, since unifying it would silently change dwell totals for
// overlapping AOIs.
func AggregateDwellTime(fixations []Fixation, aois []AOI) []DwellTimeStats {
	var grandTotal float64
	for _, f := range fixations {
		grandTotal += f.Duration
	}

	stats := make([]DwellTimeStats, 0, len(aois)+1)
	for _, aoi := range aois {
		var durations []float64
		for _, f := range fixations {
			if aoi.Bounds.Contains(f.X, f.Y) {
				durations = append(durations, f.Duration)
			}
		}
		stats = append(stats, dwellEntry(aoi.ID, aoi.Name, durations, grandTotal))
	}

	var outside []float64
	for _, f := range fixations {
		if MatchFixation(f, aois) == nil {
			outside = append(outside, f.Duration)
		}
	}
	stats = append(stats, dwellEntry(OutsideAOIsID, OutsideAOIsName, outside, grandTotal))

	return stats
}

func dwellEntry(id, name string, durations []float64, grandTotal float64) DwellTimeStats {
	entry := DwellTimeStats{
		AOIID:         id,
		AOIName:       name,
		FixationCount: len(durations),
	}

	for _, d := range durations {
		entry.TotalDwellTime += d
	}
	if len(durations) > 0 {
		entry.MeanFixationDuration = stat.Mean(durations, nil)
	}
	if grandTotal > 0 {
		entry.PercentOfTotal = entry.TotalDwellTime / grandTotal * 100
	}

	return entry
}
