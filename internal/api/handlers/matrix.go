package handlers

import (
	"net/http"

	"vrp-route-plotter/internal/api/dto"
	"vrp-route-plotter/internal/geo"
	"vrp-route-plotter/internal/services"
)

type MatrixHandler struct {
	Planner     *services.Planner
	DefaultMode geo.Mode
}

// Matrix builds (or fetches from cache) the cost matrix for the posted points.
func (h *MatrixHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.MatrixRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	mode, ok := requestMode(w, r, req.Mode, h.DefaultMode)
	if !ok {
		return
	}

	points, err := dto.ToPoints(req.Points)
	if err != nil {
		writeFailure(w, r, "build matrix", err)
		return
	}

	m, source, err := h.Planner.Matrix(r.Context(), points, mode)
	if err != nil {
		writeFailure(w, r, "build matrix", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromMatrix(m, mode.String(), source))
}
