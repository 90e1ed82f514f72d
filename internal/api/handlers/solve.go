package handlers

import (
	"net/http"

	"vrp-route-plotter/internal/api/dto"
	"vrp-route-plotter/internal/domain"
	"vrp-route-plotter/internal/geo"
	"vrp-route-plotter/internal/render"
	"vrp-route-plotter/internal/services"
	"vrp-route-plotter/internal/synth"
)

type SolveHandler struct {
	Planner       *services.Planner
	DefaultFormat string
	DefaultMode   geo.Mode
	Options       []render.Option
}

// Solve runs the full pipeline: matrix, overrides, solver, chart and export.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SolveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	mode, ok := requestMode(w, r, req.Mode, h.DefaultMode)
	if !ok {
		return
	}

	var problem domain.Problem
	if req.Clusters != nil {
		// Cluster problems bring their own fleet and jobs.
		if len(req.Locations) > 0 || len(req.Vehicles) > 0 || len(req.Jobs) > 0 {
			writeError(w, r, http.StatusBadRequest, "clusters cannot be combined with locations, vehicles or jobs")
			return
		}
		problem = synth.Problem(req.Clusters.Seed, synth.Options{})
		mode = geo.Geographic
	} else {
		p, err := req.Problem()
		if err != nil {
			writeFailure(w, r, "plan routes", err)
			return
		}
		problem = p
	}

	format := req.Format
	if format == "" {
		format = h.DefaultFormat
	}

	opts := append([]render.Option(nil), h.Options...)
	if req.Title != "" {
		opts = append(opts, render.WithTitle(req.Title))
	}

	res, err := h.Planner.PlanRoutes(r.Context(), services.PlanRoutesRequest{
		Problem:       problem,
		Mode:          mode,
		Format:        format,
		RenderOptions: opts,
	})
	if err != nil {
		writeFailure(w, r, "plan routes", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SolveResponse{
		RunID:            res.RunID,
		MatrixSource:     res.MatrixSource,
		OverridesApplied: res.OverridesApplied,
		Solution:         dto.FromSolution(res.Solution),
		Summary:          res.Summary,
		ChartFormat:      format,
		ChartLocation:    res.ChartLocation,
	})
}
