package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"vrp-route-plotter/internal/domain"
	"vrp-route-plotter/internal/geo"
	"vrp-route-plotter/internal/platform/obs"
	"vrp-route-plotter/internal/render"
)

const maxBodyBytes = 8 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeFailure maps input errors to 400 with their message and hides
// everything else behind a logged 500.
func writeFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	if isClientError(err) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("req_id=%s %s failed: %v", obs.RequestID(r.Context()), op, err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func isClientError(err error) bool {
	var (
		empty    *domain.EmptyInputError
		dup      *domain.DuplicateIdentifierError
		coord    *domain.InvalidCoordinateError
		series   *domain.UnknownSeriesError
		location *domain.UnknownLocationError
	)
	return errors.As(err, &empty) ||
		errors.As(err, &dup) ||
		errors.As(err, &coord) ||
		errors.As(err, &series) ||
		errors.As(err, &location) ||
		errors.Is(err, domain.ErrInvalidProblem) ||
		errors.Is(err, render.ErrUnsupportedFormat)
}

// requestMode resolves the distance mode of a request; empty falls back to the
// server default. It writes the 400 itself on an unknown mode.
func requestMode(w http.ResponseWriter, r *http.Request, raw string, fallback geo.Mode) (geo.Mode, bool) {
	if raw == "" {
		return fallback, true
	}
	mode, ok := geo.ParseMode(raw)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "mode must be geographic or planar")
		return fallback, false
	}
	return mode, true
}

// decodeJSON reads exactly one JSON object and rejects unknown fields.
// It writes the 400 response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}
