package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"vrp-route-plotter/internal/api"
	"vrp-route-plotter/internal/app"
	"vrp-route-plotter/internal/config"
)

// main is the application composition root.
// It wires concrete adapters (solver, Redis, Postgres, chart storage) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	settings, err := config.Load(config.Get("CONFIG_PATH", ""))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	planner, closeFn, err := app.NewPlanner(ctx, settings)
	cancel()
	if err != nil {
		log.Fatal(err)
	}
	defer closeFn()

	renderOpts, err := app.RenderOptions(settings.Chart)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(planner, api.Options{
		DefaultFormat: settings.Chart.Format,
		DefaultMode:   settings.DistanceMode(),
		Render:        renderOpts,
	})

	// Timeouts allow for remote solver latency on /solve.
	log.Printf("Server listening addr=:%s solver=%s export=%s", settings.Port, settings.Solver.Kind, settings.Export.Backend)
	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
