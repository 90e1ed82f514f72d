package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vrp-route-plotter/internal/api/handlers"
	"vrp-route-plotter/internal/geo"
	"vrp-route-plotter/internal/metrics"
	"vrp-route-plotter/internal/render"
	"vrp-route-plotter/internal/services"
)

// Options carries defaults applied to every request.
type Options struct {
	DefaultFormat string
	DefaultMode   geo.Mode // used when a request leaves "mode" empty
	Render        []render.Option
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.Planner, opts Options) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	matrixHandler := &handlers.MatrixHandler{Planner: planner, DefaultMode: opts.DefaultMode}
	renderHandler := &handlers.RenderHandler{DefaultFormat: opts.DefaultFormat, Options: opts.Render}
	solveHandler := &handlers.SolveHandler{
		Planner:       planner,
		DefaultFormat: opts.DefaultFormat,
		DefaultMode:   opts.DefaultMode,
		Options:       opts.Render,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/matrix", matrixHandler.Matrix)
	mux.HandleFunc("/render", renderHandler.Render)
	mux.HandleFunc("/solve", solveHandler.Solve)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	routes := map[string]bool{"/health": true, "/matrix": true, "/render": true, "/solve": true, "/metrics": true}

	return requestIDMiddleware(loggingMiddleware(routes, mux))
}
