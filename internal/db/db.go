// Package db persists recorded gaze sessions, their AOI sets and the
// analysis runs computed over them, so captures can be re-analyzed with
// different parameters.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/fovea-data/gaze.report/internal/gaze"
)

type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// applies the connection pragmas. Schema setup is separate; see
// MigrateUp.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps readers (exports, chart endpoints) from blocking batch
	// point inserts.
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return &DB{db}, nil
}

// Session is one recorded viewing of a stimulus.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Stimulus  string    `json:"stimulus"` // video or image identifier
	CreatedAt time.Time `json:"created_at"`
}

// AnalysisRun records the parameters and headline output of one analysis.
type AnalysisRun struct {
	ID                  string    `json:"id"`
	SessionID           string    `json:"session_id"`
	DispersionThreshold float64   `json:"dispersion_threshold"`
	MinDurationMs       float64   `json:"min_duration_ms"`
	VideoStartTime      float64   `json:"video_start_time"`
	FixationCount       int       `json:"fixation_count"`
	CreatedAt           time.Time `json:"created_at"`
}

// CreateSession inserts a new session and assigns it a UUID.
func (db *DB) CreateSession(name, stimulus string) (*Session, error) {
	s := &Session{
		ID:       uuid.New().String(),
		Name:     name,
		Stimulus: stimulus,
	}

	err := db.QueryRow(
		`INSERT INTO sessions (id, name, stimulus) VALUES (?, ?, ?) RETURNING created_at`,
		s.ID, s.Name, s.Stimulus,
	).Scan(&s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s, nil
}

// GetSession retrieves a session by ID.
func (db *DB) GetSession(id string) (*Session, error) {
	var s Session
	err := db.QueryRow(
		`SELECT id, name, stimulus, created_at FROM sessions WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &s.Stimulus, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// ListSessions returns the most recent sessions, newest first.
func (db *DB) ListSessions(limit int) ([]Session, error) {
	rows, err := db.Query(
		`SELECT id, name, stimulus, created_at FROM sessions ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.Name, &s.Stimulus, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// AddGazePoints appends a batch of gaze points to a session in one
// transaction. Sequence numbers continue from the current maximum so
// repeated uploads keep capture order.
func (db *DB) AddGazePoints(sessionID string, points []gaze.GazePoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRow(
		`SELECT COALESCE(MAX(seq), -1) + 1 FROM gaze_points WHERE session_id = ?`, sessionID,
	).Scan(&next); err != nil {
		return fmt.Errorf("failed to read point sequence: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO gaze_points (session_id, seq, timestamp, frame_number, x, y, screen_x, screen_y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare point insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range points {
		if _, err := stmt.Exec(sessionID, next+i, p.Timestamp, p.FrameNumber, p.X, p.Y, p.ScreenX, p.ScreenY); err != nil {
			return fmt.Errorf("failed to insert gaze point %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetGazePoints returns a session's gaze points in capture order.
func (db *DB) GetGazePoints(sessionID string) ([]gaze.GazePoint, error) {
	rows, err := db.Query(`
		SELECT timestamp, frame_number, x, y, screen_x, screen_y
		FROM gaze_points WHERE session_id = ? ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query gaze points: %w", err)
	}
	defer rows.Close()

	var points []gaze.GazePoint
	for rows.Next() {
		var p gaze.GazePoint
		if err := rows.Scan(&p.Timestamp, &p.FrameNumber, &p.X, &p.Y, &p.ScreenX, &p.ScreenY); err != nil {
			return nil, fmt.Errorf("failed to scan gaze point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// SaveAOIs replaces a session's AOI list. Position preserves list order,
// which the matcher's first-match-wins rule depends on.
func (db *DB) SaveAOIs(sessionID string, aois []gaze.AOI) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM aois WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to clear aois: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO aois (session_id, position, aoi_id, name, color, x, y, width, height)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare aoi insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range aois {
		if _, err := stmt.Exec(sessionID, i, a.ID, a.Name, a.Color,
			a.Bounds.X, a.Bounds.Y, a.Bounds.Width, a.Bounds.Height); err != nil {
			return fmt.Errorf("failed to insert aoi %q: %w", a.Name, err)
		}
	}

	return tx.Commit()
}

// GetAOIs returns a session's AOIs in saved list order.
func (db *DB) GetAOIs(sessionID string) ([]gaze.AOI, error) {
	rows, err := db.Query(`
		SELECT aoi_id, name, color, x, y, width, height
		FROM aois WHERE session_id = ? ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query aois: %w", err)
	}
	defer rows.Close()

	var aois []gaze.AOI
	for rows.Next() {
		var a gaze.AOI
		if err := rows.Scan(&a.ID, &a.Name, &a.Color,
			&a.Bounds.X, &a.Bounds.Y, &a.Bounds.Width, &a.Bounds.Height); err != nil {
			return nil, fmt.Errorf("failed to scan aoi: %w", err)
		}
		aois = append(aois, a)
	}
	return aois, rows.Err()
}

// RecordAnalysisRun persists a run's parameters and fixations (with
// their single-winner AOI labels) and returns the stored run.
func (db *DB) RecordAnalysisRun(sessionID string, res *gaze.AnalysisResult) (*AnalysisRun, error) {
	run := &AnalysisRun{
		ID:                  uuid.New().String(),
		SessionID:           sessionID,
		DispersionThreshold: res.Params.DispersionThreshold,
		MinDurationMs:       res.Params.MinDurationMs,
		VideoStartTime:      res.Params.VideoStartTime,
		FixationCount:       len(res.Fixations),
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO analysis_runs (id, session_id, dispersion_threshold, min_duration_ms, video_start_time, fixation_count)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING created_at
	`, run.ID, run.SessionID, run.DispersionThreshold, run.MinDurationMs, run.VideoStartTime, run.FixationCount).Scan(&run.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO run_fixations (run_id, fixation_id, start_time, end_time, duration_ms, x, y, point_count, aoi)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare fixation insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range res.Fixations {
		label := gaze.OutsideLabel
		if i < len(res.FixationLabels) {
			label = res.FixationLabels[i]
		}
		if _, err := stmt.Exec(run.ID, f.ID, f.StartTime, f.EndTime, f.Duration,
			f.X, f.Y, f.PointCount, label); err != nil {
			return nil, fmt.Errorf("failed to insert fixation %d: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit analysis run: %w", err)
	}
	return run, nil
}

// GetAnalysisRun retrieves a run by ID.
func (db *DB) GetAnalysisRun(id string) (*AnalysisRun, error) {
	var run AnalysisRun
	err := db.QueryRow(`
		SELECT id, session_id, dispersion_threshold, min_duration_ms, video_start_time, fixation_count, created_at
		FROM analysis_runs WHERE id = ?
	`, id).Scan(&run.ID, &run.SessionID, &run.DispersionThreshold, &run.MinDurationMs,
		&run.VideoStartTime, &run.FixationCount, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("analysis run not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}
	return &run, nil
}

// ListRecentRuns returns the most recent analysis runs across all
// sessions, newest first.
func (db *DB) ListRecentRuns(limit int) ([]AnalysisRun, error) {
	rows, err := db.Query(`
		SELECT id, session_id, dispersion_threshold, min_duration_ms, video_start_time, fixation_count, created_at
		FROM analysis_runs ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []AnalysisRun
	for rows.Next() {
		var run AnalysisRun
		if err := rows.Scan(&run.ID, &run.SessionID, &run.DispersionThreshold, &run.MinDurationMs,
			&run.VideoStartTime, &run.FixationCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunFixations returns a run's stored fixations and labels in
// detection order. Contributing points are not persisted, so the Points
// field of each fixation is nil.
func (db *DB) GetRunFixations(runID string) ([]gaze.Fixation, []string, error) {
	rows, err := db.Query(`
		SELECT fixation_id, start_time, end_time, duration_ms, x, y, point_count, aoi
		FROM run_fixations WHERE run_id = ? ORDER BY fixation_id
	`, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query fixations: %w", err)
	}
	defer rows.Close()

	var fixations []gaze.Fixation
	var labels []string
	for rows.Next() {
		var f gaze.Fixation
		var label string
		if err := rows.Scan(&f.ID, &f.StartTime, &f.EndTime, &f.Duration,
			&f.X, &f.Y, &f.PointCount, &label); err != nil {
			return nil, nil, fmt.Errorf("failed to scan fixation: %w", err)
		}
		fixations = append(fixations, f)
		labels = append(labels, label)
	}
	return fixations, labels, rows.Err()
}
