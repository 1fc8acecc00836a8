// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fovea-data/gaze.report/internal/gaze"
)

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertNear fails the test unless got is within eps of want.
func AssertNear(t *testing.T, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("got %v, want %v (±%v)", got, want, eps)
	}
}

// NewTestRequest creates a test HTTP request.
func NewTestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

// NewTestRecorder creates a test response recorder.
func NewTestRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

// SteadyGaze produces n gaze points at frame-rate spacing that hold a
// fixed position, a ready-made fixation cluster for detector tests.
func SteadyGaze(startTime, x, y float64, n int, intervalS float64) []gaze.GazePoint {
	points := make([]gaze.GazePoint, n)
	for i := range points {
		points[i] = gaze.GazePoint{
			Timestamp:   startTime + float64(i)*intervalS,
			FrameNumber: i,
			X:           x,
			Y:           y,
		}
	}
	return points
}
