package dto

import (
	"fmt"
	"math"

	"vrp-route-plotter/internal/domain"
)

// Point is a location on the wire. Planar requests put x in lon and y in lat.
// Both coordinates are required; a missing one is never read as zero.
type Point struct {
	ID  string   `json:"id"`
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

func (p Point) ToDomain() (domain.GeoPoint, error) {
	if p.Lat == nil || p.Lon == nil {
		return domain.GeoPoint{}, &domain.InvalidCoordinateError{
			ID:     p.ID,
			Lat:    valueOrNaN(p.Lat),
			Lon:    valueOrNaN(p.Lon),
			Reason: "coordinate is missing",
		}
	}
	return domain.NewGeoPoint(p.ID, *p.Lat, *p.Lon), nil
}

func FromPoint(p domain.GeoPoint) Point {
	lat, lon := p.Lat, p.Lon
	return Point{ID: p.ID, Lat: &lat, Lon: &lon}
}

func ToPoints(in []Point) ([]domain.GeoPoint, error) {
	out := make([]domain.GeoPoint, 0, len(in))
	for i, p := range in {
		gp, err := p.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("point #%d: %w", i+1, err)
		}
		out = append(out, gp)
	}
	return out, nil
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

type MatrixRequest struct {
	Mode   string  `json:"mode"`
	Points []Point `json:"points"`
}

type CostEntry struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Cost float64 `json:"cost"`
}

type MatrixResponse struct {
	Mode    string      `json:"mode"`
	Source  string      `json:"source"`
	IDs     []string    `json:"ids"`
	Entries []CostEntry `json:"entries"`
}

func FromMatrix(m *domain.CostMatrix, mode, source string) MatrixResponse {
	entries := m.Entries()
	res := MatrixResponse{
		Mode:    mode,
		Source:  source,
		IDs:     m.IDs(),
		Entries: make([]CostEntry, 0, len(entries)),
	}
	for _, e := range entries {
		res.Entries = append(res.Entries, CostEntry{From: e.FromID, To: e.ToID, Cost: e.Cost})
	}
	return res
}
