package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fovea-data/gaze.report/internal/gaze"
)

func writePreset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPresetPartialOverride(t *testing.T) {
	preset, err := LoadPreset(writePreset(t, `{"min_duration_ms": 150}`))
	require.NoError(t, err)

	assert.Nil(t, preset.DispersionThreshold)
	assert.Nil(t, preset.VideoStartTime)

	params := preset.Apply(gaze.DefaultParams())
	assert.Equal(t, 150.0, params.MinDurationMs)
	assert.Equal(t, gaze.DefaultDispersionThreshold, params.DispersionThreshold)
}

func TestLoadPresetExplicitZero(t *testing.T) {
	// An explicit zero is a set field, not an absent one.
	preset, err := LoadPreset(writePreset(t, `{"video_start_time": 0, "dispersion_threshold": 0.05}`))
	require.NoError(t, err)

	require.NotNil(t, preset.VideoStartTime)
	assert.Equal(t, 0.0, *preset.VideoStartTime)
	require.NotNil(t, preset.DispersionThreshold)
	assert.Equal(t, 0.05, *preset.DispersionThreshold)
}

func TestLoadPresetErrors(t *testing.T) {
	_, err := LoadPreset(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadPreset(writePreset(t, `{not json`))
	assert.Error(t, err)
}

func TestApplyNilPreset(t *testing.T) {
	var preset *AnalysisPreset
	assert.Equal(t, gaze.DefaultParams(), preset.Apply(gaze.DefaultParams()))
}

func TestValidate(t *testing.T) {
	bad := 0.0
	assert.Error(t, (&AnalysisPreset{MinDurationMs: &bad}).Validate())

	good := 120.0
	assert.NoError(t, (&AnalysisPreset{MinDurationMs: &good}).Validate())
}
