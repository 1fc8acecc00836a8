package gaze

// Analyze runs the full pipeline: validate inputs, detect fixations,
// then compute dwell-time, first-fixation and scanpath metrics. It is a
// deterministic function of its arguments; re-invocation with identical
// inputs produces bit-identical output.
func Analyze(points []GazePoint, aois []AOI, params Params) (*AnalysisResult, error) {
	if err := ValidateParams(params); err != nil {
		return nil, err
	}
	if err := ValidateAOIs(aois); err != nil {
		return nil, err
	}
	if err := ValidateGazePoints(points); err != nil {
		return nil, err
	}

	fixations := DetectFixations(points, params.DispersionThreshold, params.MinDurationMs)

	return &AnalysisResult{
		Params:         params,
		Fixations:      fixations,
		FixationLabels: fixationLabels(fixations, aois),
		DwellTime:      AggregateDwellTime(fixations, aois),
		FirstFixation:  AnalyzeFirstFixations(fixations, aois, params.VideoStartTime),
		Scanpath:       AnalyzeScanpath(fixations, aois),
	}, nil
}
