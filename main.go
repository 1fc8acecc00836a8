// Command gazed serves the gaze analytics API: session recording,
// fixation analysis and report exports backed by a SQLite store.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fovea-data/gaze.report/internal/api"
	"github.com/fovea-data/gaze.report/internal/config"
	"github.com/fovea-data/gaze.report/internal/db"
	"github.com/fovea-data/gaze.report/internal/gaze"
	"github.com/fovea-data/gaze.report/internal/monitoring"
)

var (
	listen        = flag.String("listen", ":8080", "Listen address")
	dbFile        = flag.String("db", "gaze_sessions.db", "SQLite database path")
	migrationsDir = flag.String("migrations", "migrations", "Schema migrations directory")
	presetFile    = flag.String("preset", "", "Optional analysis defaults JSON (see config/analysis.defaults.json)")
	debug         = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()
	monitoring.SetDebug(*debug)

	params := gaze.DefaultParams()
	if *presetFile != "" {
		preset, err := config.LoadPreset(*presetFile)
		if err != nil {
			log.Fatalf("failed to load preset: %v", err)
		}
		if err := preset.Validate(); err != nil {
			log.Fatalf("bad preset: %v", err)
		}
		params = preset.Apply(params)
	}

	database, err := db.Open(*dbFile)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := database.MigrateUp(*migrationsDir); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	server := api.NewServer(database, params)
	httpServer := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(server.ServeMux()),
	}

	go func() {
		log.Printf("gazed listening on %s (db=%s)", *listen, *dbFile)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Print("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
