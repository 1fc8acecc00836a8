// Package api exposes the gaze analytics over HTTP: ad-hoc analysis,
// session recording, stored runs and their CSV/chart exports.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fovea-data/gaze.report/internal/db"
	"github.com/fovea-data/gaze.report/internal/gaze"
	"github.com/fovea-data/gaze.report/internal/report"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

const defaultListLimit = 20

type Server struct {
	db       *db.DB
	defaults gaze.Params
}

// NewServer wires the API onto a session store. defaults are the
// parameters used when a request omits them.
func NewServer(database *db.DB, defaults gaze.Params) *Server {
	return &Server{
		db:       database,
		defaults: defaults,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", s.analyzeHandler)
	mux.HandleFunc("/api/sessions", s.sessionsHandler)
	mux.HandleFunc("/api/session/points", s.sessionPointsHandler)
	mux.HandleFunc("/api/session/aois", s.sessionAOIsHandler)
	mux.HandleFunc("/api/session/analyze", s.sessionAnalyzeHandler)
	mux.HandleFunc("/api/runs", s.listRunsHandler)
	mux.HandleFunc("/api/run/export", s.runExportHandler)
	mux.HandleFunc("/api/run/scanpath", s.runScanpathHandler)
	return mux
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

// analyzeRequest is the payload for ad-hoc and session analysis. A nil
// params block means server defaults.
type analyzeRequest struct {
	Points []gaze.GazePoint `json:"points"`
	AOIs   []gaze.AOI       `json:"aois"`
	Params *gaze.Params     `json:"params"`
}

func (s *Server) requestParams(p *gaze.Params) gaze.Params {
	if p == nil {
		return s.defaults
	}
	return *p
}

// validationStatus maps the analysis error taxonomy onto HTTP statuses:
// contract violations are the caller's fault, everything else is ours.
func validationStatus(err error) int {
	if errors.Is(err, gaze.ErrInvalidAOI) ||
		errors.Is(err, gaze.ErrInvalidGazeData) ||
		errors.Is(err, gaze.ErrInvalidParameters) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// analyzeHandler runs a one-shot analysis without persisting anything.
func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	res, err := gaze.Analyze(req.Points, req.AOIs, s.requestParams(req.Params))
	if err != nil {
		s.writeJSONError(w, validationStatus(err), err.Error())
		return
	}

	s.writeJSON(w, res)
}

// sessionsHandler lists sessions (GET) or creates one (POST).
func (s *Server) sessionsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit := defaultListLimit
		if l := r.URL.Query().Get("limit"); l != "" {
			parsed, err := strconv.Atoi(l)
			if err != nil || parsed < 1 {
				s.writeJSONError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
				return
			}
			limit = parsed
		}
		sessions, err := s.db.ListSessions(limit)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list sessions: %v", err))
			return
		}
		s.writeJSON(w, sessions)

	case http.MethodPost:
		var req struct {
			Name     string `json:"name"`
			Stimulus string `json:"stimulus"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		if req.Name == "" {
			s.writeJSONError(w, http.StatusBadRequest, "session name is required")
			return
		}
		session, err := s.db.CreateSession(req.Name, req.Stimulus)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to create session: %v", err))
			return
		}
		s.writeJSON(w, session)

	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("session_id")
	if id == "" {
		s.writeJSONError(w, http.StatusBadRequest, "Missing 'session_id' parameter")
		return "", false
	}
	return id, true
}

// sessionPointsHandler appends gaze points (POST) or returns them (GET).
func (s *Server) sessionPointsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPost:
		var points []gaze.GazePoint
		if err := json.NewDecoder(r.Body).Decode(&points); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		if err := gaze.ValidateGazePoints(points); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := s.db.AddGazePoints(id, points); err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to store points: %v", err))
			return
		}
		s.writeJSON(w, map[string]int{"stored": len(points)})

	case http.MethodGet:
		points, err := s.db.GetGazePoints(id)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load points: %v", err))
			return
		}
		s.writeJSON(w, points)

	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// sessionAOIsHandler replaces a session's AOI list (POST) or returns it (GET).
func (s *Server) sessionAOIsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPost:
		var aois []gaze.AOI
		if err := json.NewDecoder(r.Body).Decode(&aois); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		if err := gaze.ValidateAOIs(aois); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := s.db.SaveAOIs(id, aois); err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to store aois: %v", err))
			return
		}
		s.writeJSON(w, map[string]int{"stored": len(aois)})

	case http.MethodGet:
		aois, err := s.db.GetAOIs(id)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load aois: %v", err))
			return
		}
		s.writeJSON(w, aois)

	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// sessionAnalyzeHandler runs an analysis over a stored session and
// persists the run.
func (s *Server) sessionAnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	var params *gaze.Params
	if r.Body != nil && r.ContentLength != 0 {
		params = &gaze.Params{}
		if err := json.NewDecoder(r.Body).Decode(params); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
	}

	points, err := s.db.GetGazePoints(id)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load points: %v", err))
		return
	}
	aois, err := s.db.GetAOIs(id)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load aois: %v", err))
		return
	}

	res, err := gaze.Analyze(points, aois, s.requestParams(params))
	if err != nil {
		s.writeJSONError(w, validationStatus(err), err.Error())
		return
	}

	run, err := s.db.RecordAnalysisRun(id, res)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to record run: %v", err))
		return
	}

	s.writeJSON(w, map[string]interface{}{
		"run":    run,
		"result": res,
	})
}

func (s *Server) listRunsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := defaultListLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
			return
		}
		limit = parsed
	}

	runs, err := s.db.ListRecentRuns(limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list runs: %v", err))
		return
	}
	s.writeJSON(w, runs)
}

// rebuildRunResult re-derives a full AnalysisResult for a stored run
// from the session's points and AOIs. Analysis is deterministic, so the
// rebuild reproduces the recorded run exactly.
func (s *Server) rebuildRunResult(run *db.AnalysisRun) (*gaze.AnalysisResult, error) {
	points, err := s.db.GetGazePoints(run.SessionID)
	if err != nil {
		return nil, err
	}
	aois, err := s.db.GetAOIs(run.SessionID)
	if err != nil {
		return nil, err
	}
	return gaze.Analyze(points, aois, gaze.Params{
		DispersionThreshold: run.DispersionThreshold,
		MinDurationMs:       run.MinDurationMs,
		VideoStartTime:      run.VideoStartTime,
	})
}

// runExportHandler streams one of the four CSV tables for a stored run.
func (s *Server) runExportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	runID := r.URL.Query().Get("run_id")
	if runID == "" {
		s.writeJSONError(w, http.StatusBadRequest, "Missing 'run_id' parameter")
		return
	}
	table := r.URL.Query().Get("table")
	if table == "" {
		table = report.TableFixations
	}

	run, err := s.db.GetAnalysisRun(runID)
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	res, err := s.rebuildRunResult(run)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to rebuild run: %v", err))
		return
	}

	csv, err := report.TableCSV(res, table)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s_%s.csv", table, runID))
	fmt.Fprint(w, csv)
}

// runScanpathHandler renders a stored run's scanpath as an HTML chart.
func (s *Server) runScanpathHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	runID := r.URL.Query().Get("run_id")
	if runID == "" {
		s.writeJSONError(w, http.StatusBadRequest, "Missing 'run_id' parameter")
		return
	}

	run, err := s.db.GetAnalysisRun(runID)
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	res, err := s.rebuildRunResult(run)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to rebuild run: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.RenderScanpathChart(res, fmt.Sprintf("Scanpath %s", runID), w); err != nil {
		log.Printf("failed to render scanpath chart: %v", err)
	}
}
