// Package config loads analysis parameter presets from JSON files.
//
// Pointer-typed fields distinguish "not set" from an explicit zero, so a
// preset can override a single parameter and leave the rest at their
// defaults. The schema matches the params block accepted by the
// /api/analyze endpoint, so the same JSON works for startup configuration
// and per-request overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fovea-data/gaze.report/internal/gaze"
)

// DefaultPresetPath is the conventional location for a deployment's
// analysis defaults.
const DefaultPresetPath = "config/analysis.defaults.json"

// AnalysisPreset holds optional overrides for the detection parameters.
type AnalysisPreset struct {
	DispersionThreshold *float64 `json:"dispersion_threshold,omitempty"`
	MinDurationMs       *float64 `json:"min_duration_ms,omitempty"`
	VideoStartTime      *float64 `json:"video_start_time,omitempty"`
}

// LoadPreset reads a preset from a JSON file.
func LoadPreset(path string) (*AnalysisPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset %s: %w", path, err)
	}

	var preset AnalysisPreset
	if err := json.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("failed to parse preset %s: %w", path, err)
	}

	return &preset, nil
}

// Apply overlays the preset's set fields onto base and returns the
// result. The base is unchanged.
func (p *AnalysisPreset) Apply(base gaze.Params) gaze.Params {
	merged := base
	if p == nil {
		return merged
	}
	if p.DispersionThreshold != nil {
		merged.DispersionThreshold = *p.DispersionThreshold
	}
	if p.MinDurationMs != nil {
		merged.MinDurationMs = *p.MinDurationMs
	}
	if p.VideoStartTime != nil {
		merged.VideoStartTime = *p.VideoStartTime
	}
	return merged
}

// Validate rejects presets whose set fields could never pass parameter
// validation, so bad config files fail at load rather than per request.
func (p *AnalysisPreset) Validate() error {
	params := p.Apply(gaze.DefaultParams())
	if err := gaze.ValidateParams(params); err != nil {
		return fmt.Errorf("preset produces unusable parameters: %w", err)
	}
	return nil
}
