package gaze

// MatchFixation returns the first AOI in list order whose rectangle
// contains the fixation centroid, or nil if none does. Overlapping AOIs
// are resolved by list order: first match wins. This single-winner
// assignment feeds scanpath sequences, transition matrices and
// first-fixation metrics; dwell-time aggregation instead credits every
// containing AOI independently (see AggregateDwellTime).
func MatchFixation(f Fixation, aois []AOI) *AOI {
	for i := range aois {
		if aois[i].Bounds.Contains(f.X, f.Y) {
			return &aois[i]
		}
	}
	return nil
}

// matchIndex returns the list index of the first containing AOI, or -1.
// Indices rather than names keep assignment unambiguous when two AOIs
// share a name.
func matchIndex(f Fixation, aois []AOI) int {
	for i := range aois {
		if aois[i].Bounds.Contains(f.X, f.Y) {
			return i
		}
	}
	return -1
}

// FixationLabel returns the matched AOI's name, or OutsideLabel when the
// fixation lands outside every AOI.
func FixationLabel(f Fixation, aois []AOI) string {
	if aoi := MatchFixation(f, aois); aoi != nil {
		return aoi.Name
	}
	return OutsideLabel
}

// fixationLabels resolves the single-winner label for each fixation,
// index-aligned with the input.
func fixationLabels(fixations []Fixation, aois []AOI) []string {
	labels := make([]string, len(fixations))
	for i, f := range fixations {
		labels[i] = FixationLabel(f, aois)
	}
	return labels
}
