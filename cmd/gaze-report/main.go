// Command gaze-report runs an offline analysis over a recorded gaze
// session: a points CSV plus an optional AOI JSON file in, the four
// tabular exports out, with optional scanpath PNG/HTML rendering and
// recording into a session database.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fovea-data/gaze.report/internal/db"
	"github.com/fovea-data/gaze.report/internal/gaze"
	"github.com/fovea-data/gaze.report/internal/report"
)

var (
	pointsFile  = flag.String("points", "", "Gaze points CSV (timestamp,frame_number,x,y,screen_x,screen_y)")
	aoisFile    = flag.String("aois", "", "Optional AOI definitions JSON")
	outDir      = flag.String("out", ".", "Output directory for CSV exports")
	threshold   = flag.Float64("threshold", gaze.DefaultDispersionThreshold, "I-DT dispersion threshold (normalized units)")
	minDuration = flag.Float64("min-duration", gaze.DefaultMinDurationMs, "Minimum fixation duration (ms)")
	videoStart  = flag.Float64("video-start", 0, "Video start offset (seconds)")
	plotFile    = flag.String("plot", "", "Optional scanpath PNG output path")
	chartFile   = flag.String("chart", "", "Optional scanpath HTML chart output path")
	dbFile      = flag.String("db", "", "Optional session database to record the run into")
	sessionName = flag.String("session-name", "gaze-report run", "Session name when recording to a database")
)

func main() {
	flag.Parse()
	if *pointsFile == "" {
		flag.Usage()
		log.Fatal("missing required -points flag")
	}

	points, err := loadPoints(*pointsFile)
	if err != nil {
		log.Fatalf("failed to load points: %v", err)
	}

	var aois []gaze.AOI
	if *aoisFile != "" {
		if aois, err = loadAOIs(*aoisFile); err != nil {
			log.Fatalf("failed to load aois: %v", err)
		}
	}

	params := gaze.Params{
		DispersionThreshold: *threshold,
		MinDurationMs:       *minDuration,
		VideoStartTime:      *videoStart,
	}

	res, err := gaze.Analyze(points, aois, params)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}
	log.Printf("detected %d fixations from %d points", len(res.Fixations), len(points))

	exports := map[string]string{
		"fixations.csv":      report.FixationsCSV(res),
		"dwell_time.csv":     report.DwellTimeCSV(res),
		"first_fixation.csv": report.FirstFixationCSV(res),
		"scanpath.csv":       report.ScanpathCSV(res),
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("failed to create output dir: %v", err)
	}
	for name, content := range exports {
		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			log.Fatalf("failed to write %s: %v", path, err)
		}
		log.Printf("wrote %s", path)
	}

	if *plotFile != "" {
		if err := report.SaveScanpathPNG(res.Fixations, *plotFile); err != nil {
			log.Fatalf("failed to render scanpath png: %v", err)
		}
		log.Printf("wrote %s", *plotFile)
	}

	if *chartFile != "" {
		f, err := os.Create(*chartFile)
		if err != nil {
			log.Fatalf("failed to create chart file: %v", err)
		}
		if err := report.RenderScanpathChart(res, *sessionName, f); err != nil {
			f.Close()
			log.Fatalf("failed to render scanpath chart: %v", err)
		}
		f.Close()
		log.Printf("wrote %s", *chartFile)
	}

	if *dbFile != "" {
		if err := recordRun(*dbFile, *sessionName, points, aois, res); err != nil {
			log.Fatalf("failed to record run: %v", err)
		}
	}
}

// loadPoints reads a gaze points CSV. A header row is detected by a
// non-numeric first field and skipped. screen_x/screen_y are optional
// trailing columns.
func loadPoints(path string) ([]gaze.GazePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	var points []gaze.GazePoint
	for i, rec := range records {
		if len(rec) < 4 {
			return nil, fmt.Errorf("row %d: expected at least 4 columns, got %d", i+1, len(rec))
		}
		ts, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: bad timestamp %q", i+1, rec[0])
		}

		p := gaze.GazePoint{Timestamp: ts}
		if p.FrameNumber, err = strconv.Atoi(rec[1]); err != nil {
			return nil, fmt.Errorf("row %d: bad frame_number %q", i+1, rec[1])
		}
		if p.X, err = strconv.ParseFloat(rec[2], 64); err != nil {
			return nil, fmt.Errorf("row %d: bad x %q", i+1, rec[2])
		}
		if p.Y, err = strconv.ParseFloat(rec[3], 64); err != nil {
			return nil, fmt.Errorf("row %d: bad y %q", i+1, rec[3])
		}
		if len(rec) >= 6 {
			if p.ScreenX, err = strconv.ParseFloat(rec[4], 64); err != nil {
				return nil, fmt.Errorf("row %d: bad screen_x %q", i+1, rec[4])
			}
			if p.ScreenY, err = strconv.ParseFloat(rec[5], 64); err != nil {
				return nil, fmt.Errorf("row %d: bad screen_y %q", i+1, rec[5])
			}
		}
		points = append(points, p)
	}
	return points, nil
}

func loadAOIs(path string) ([]gaze.AOI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var aois []gaze.AOI
	if err := json.Unmarshal(data, &aois); err != nil {
		return nil, fmt.Errorf("failed to parse aoi json: %w", err)
	}
	return aois, nil
}

func recordRun(path, name string, points []gaze.GazePoint, aois []gaze.AOI, res *gaze.AnalysisResult) error {
	database, err := db.Open(path)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.MigrateUp("migrations"); err != nil {
		return err
	}

	session, err := database.CreateSession(name, filepath.Base(*pointsFile))
	if err != nil {
		return err
	}
	if err := database.AddGazePoints(session.ID, points); err != nil {
		return err
	}
	if err := database.SaveAOIs(session.ID, aois); err != nil {
		return err
	}
	run, err := database.RecordAnalysisRun(session.ID, res)
	if err != nil {
		return err
	}
	log.Printf("recorded session %s run %s", session.ID, run.ID)
	return nil
}
