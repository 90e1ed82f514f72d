package render

import (
	"fmt"
	"image/color"
	"log"

	"gonum.org/v1/plot/vg"

	"vrp-route-plotter/internal/domain"
)

const (
	DefaultTitle  = "Vehicle Routing Solution"
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

type config struct {
	title   string
	xLabel  string
	yLabel  string
	palette Palette
	width   vg.Length
	height  vg.Length
}

type Option func(*config)

func WithTitle(title string) Option {
	return func(c *config) { c.title = title }
}

func WithAxisLabels(x, y string) Option {
	return func(c *config) { c.xLabel, c.yLabel = x, y }
}

// WithPalette replaces the series colors. An empty palette is ignored.
func WithPalette(p Palette) Option {
	return func(c *config) {
		if len(p) > 0 {
			c.palette = p
		}
	}
}

func WithSize(width, height vg.Length) Option {
	return func(c *config) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}

// SeriesKey names the series for the route at ordinal routeIndex.
// The ordinal keeps keys unique when a vehicle id repeats.
func SeriesKey(vehicleID string, routeIndex int) string {
	return fmt.Sprintf("%s_%d", vehicleID, routeIndex)
}

// Render turns a routing solution into a chart: one series per route, drawn
// start -> stops -> end, each point labelled with its location id.
// Nothing is drawn when the input is invalid.
func Render(solution domain.RoutingSolution, opts ...Option) (*Chart, error) {
	cfg := config{
		title:   DefaultTitle,
		xLabel:  "X",
		yLabel:  "Y",
		palette: DefaultPalette,
		width:   DefaultWidth,
		height:  DefaultHeight,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	chart := &Chart{
		Title:      cfg.title,
		XLabel:     cfg.xLabel,
		YLabel:     cfg.yLabel,
		Width:      cfg.width,
		Height:     cfg.height,
		Series:     make([]Series, 0, len(solution.Routes)),
		LabelColor: color.Black,
		LabelFont:  defaultLabelFont(),
	}

	for i, route := range solution.Routes {
		if err := checkRoute(i, route); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}

		path := route.Path()
		for _, p := range path {
			if !p.Finite() {
				return nil, fmt.Errorf("render: route %d: %w", i,
					&domain.InvalidCoordinateError{ID: p.ID, Lat: p.Lat, Lon: p.Lon, Reason: "coordinate is not finite"})
			}
		}

		chart.Series = append(chart.Series, Series{
			Key:       SeriesKey(route.VehicleID, i),
			VehicleID: route.VehicleID,
			Color:     cfg.palette.At(i),
			Points:    path,
		})
		for _, p := range path {
			chart.Labels = append(chart.Labels, Label{Text: p.ID, X: p.X(), Y: p.Y()})
		}
	}

	if len(solution.Unassigned) > 0 {
		log.Printf("render unassigned_jobs=%d", len(solution.Unassigned))
	}

	return chart, nil
}

func checkRoute(i int, r domain.VehicleRoute) error {
	switch {
	case r.VehicleID == "":
		return &domain.UnknownSeriesError{RouteIndex: i, Reason: "vehicle id is empty"}
	case r.Start.ID == "":
		return &domain.UnknownSeriesError{RouteIndex: i, VehicleID: r.VehicleID, Reason: "route has no start location"}
	case r.End.ID == "":
		return &domain.UnknownSeriesError{RouteIndex: i, VehicleID: r.VehicleID, Reason: "route has no end location"}
	}
	return nil
}
