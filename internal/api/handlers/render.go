package handlers

import (
	"bytes"
	"log"
	"net/http"
	"strconv"

	"vrp-route-plotter/internal/api/dto"
	"vrp-route-plotter/internal/metrics"
	"vrp-route-plotter/internal/render"
)

type RenderHandler struct {
	DefaultFormat string
	Options       []render.Option
}

// Render draws a posted solution and streams the chart back.
// Query: format=png|svg|pdf|geojson, title=<text>.
func (h *RenderHandler) Render(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.Solution
	if !decodeJSON(w, r, &req) {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = h.DefaultFormat
	}
	if format == "" {
		format = render.FormatPNG
	}

	opts := append([]render.Option(nil), h.Options...)
	if title := r.URL.Query().Get("title"); title != "" {
		opts = append(opts, render.WithTitle(title))
	}

	solution, err := req.ToDomain()
	if err != nil {
		writeFailure(w, r, "render", err)
		return
	}

	chart, err := render.Render(solution, opts...)
	if err != nil {
		writeFailure(w, r, "render", err)
		return
	}
	metrics.RenderedSeries.Add(float64(len(chart.Series)))

	var buf bytes.Buffer
	if err := chart.Encode(&buf, format); err != nil {
		writeFailure(w, r, "encode chart", err)
		return
	}

	w.Header().Set("Content-Type", render.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("write chart failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}
