package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"vrp-route-plotter/internal/domain"
)

// Output formats supported by Chart.Encode.
const (
	FormatPNG     = "png"
	FormatSVG     = "svg"
	FormatPDF     = "pdf"
	FormatGeoJSON = "geojson"
)

// ErrUnsupportedFormat is returned by Chart.Encode for unknown formats.
var ErrUnsupportedFormat = errors.New("unsupported chart format")

// Series is one vehicle route as plotted: start, stops, end.
type Series struct {
	Key       string
	VehicleID string
	Color     color.Color
	Points    []domain.GeoPoint
}

// Label is the id annotation drawn at a plotted point.
type Label struct {
	Text string
	X, Y float64
}

// Chart is a rendered routing solution, independent of where it is displayed.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length

	Series []Series
	Labels []Label

	LabelColor color.Color
	LabelFont  font.Font
}

// ContentType returns the MIME type for a chart format.
// SupportedFormat reports whether Encode can write format.
func SupportedFormat(format string) bool {
	switch format {
	case FormatPNG, FormatSVG, FormatPDF, FormatGeoJSON:
		return true
	}
	return false
}

func ContentType(format string) string {
	switch format {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatGeoJSON:
		return "application/geo+json"
	default:
		return "application/octet-stream"
	}
}

// Plot builds a gonum plot with one line+scatter per series and a bold id label
// at every point.
func (c *Chart) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for _, s := range c.Series {
		xys := make(plotter.XYs, len(s.Points))
		for i, pt := range s.Points {
			xys[i].X = pt.X()
			xys[i].Y = pt.Y()
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("plot series %q: line: %w", s.Key, err)
		}
		line.LineStyle.Color = s.Color
		line.LineStyle.Width = vg.Points(1.5)

		points, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("plot series %q: points: %w", s.Key, err)
		}
		points.GlyphStyle.Color = s.Color
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		points.GlyphStyle.Radius = vg.Points(3)

		p.Add(line, points)
		p.Legend.Add(s.Key, line, points)
	}

	if len(c.Labels) > 0 {
		xys := make(plotter.XYs, len(c.Labels))
		texts := make([]string, len(c.Labels))
		for i, l := range c.Labels {
			xys[i].X, xys[i].Y = l.X, l.Y
			texts[i] = l.Text
		}

		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return nil, fmt.Errorf("plot labels: %w", err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].Font = c.LabelFont
			labels.TextStyle[i].Color = c.LabelColor
		}
		labels.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(4)}
		p.Add(labels)
	}

	return p, nil
}

// Encode writes the chart in the given format.
func (c *Chart) Encode(w io.Writer, format string) error {
	switch format {
	case FormatGeoJSON:
		data, err := c.GeoJSON()
		if err != nil {
			return fmt.Errorf("encode chart: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("encode chart: write geojson: %w", err)
		}
		return nil
	case FormatPNG, FormatSVG, FormatPDF:
	default:
		return fmt.Errorf("encode chart: %w: %q", ErrUnsupportedFormat, format)
	}

	p, err := c.Plot()
	if err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}

	wt, err := p.WriterTo(c.Width, c.Height, format)
	if err != nil {
		return fmt.Errorf("encode chart: %s writer: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("encode chart: write %s: %w", format, err)
	}
	return nil
}

func defaultLabelFont() font.Font {
	return font.Font{
		Typeface: "Liberation",
		Variant:  "Sans",
		Weight:   xfont.WeightBold,
		Size:     vg.Points(12),
	}
}
