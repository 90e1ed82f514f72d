package services

import (
	"fmt"
	"math"

	"vrp-route-plotter/internal/domain"
	"vrp-route-plotter/internal/geo"
)

type matrixConfig struct {
	mode     geo.Mode
	distance geo.DistanceFunc
}

// MatrixOption customizes BuildCostMatrix.
type MatrixOption func(*matrixConfig)

// WithMode selects how coordinates are validated and, unless WithDistance is
// also given, which distance function is used.
func WithMode(m geo.Mode) MatrixOption {
	return func(c *matrixConfig) { c.mode = m }
}

// WithDistance replaces the distance function (e.g. a road-network estimate).
func WithDistance(fn geo.DistanceFunc) MatrixOption {
	return func(c *matrixConfig) { c.distance = fn }
}

// BuildCostMatrix computes the complete pairwise cost table over points.
//
// Every ordered pair is evaluated, self-pairs included, so lookups never miss.
// With the default Haversine distance the result is symmetric and in kilometers.
// The function is pure: identical input yields a bit-identical matrix.
func BuildCostMatrix(points []domain.GeoPoint, opts ...MatrixOption) (*domain.CostMatrix, error) {
	cfg := matrixConfig{mode: geo.Geographic}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.distance == nil {
		cfg.distance = geo.DefaultDistance(cfg.mode)
	}

	if len(points) == 0 {
		return nil, &domain.EmptyInputError{Op: "build cost matrix"}
	}

	ids := make([]string, len(points))
	for i, p := range points {
		if err := domain.CheckPoint(p, cfg.mode == geo.Geographic); err != nil {
			return nil, fmt.Errorf("build cost matrix: %w", err)
		}
		ids[i] = p.ID
	}

	m, err := domain.NewCostMatrix(ids)
	if err != nil {
		return nil, fmt.Errorf("build cost matrix: %w", err)
	}

	for i, from := range points {
		for j, to := range points {
			if i == j {
				continue
			}
			d := cfg.distance(from.Lat, from.Lon, to.Lat, to.Lon)
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
				return nil, fmt.Errorf("build cost matrix: %q -> %q: %w", from.ID, to.ID, &domain.InvalidCoordinateError{
					ID:     to.ID,
					Lat:    to.Lat,
					Lon:    to.Lon,
					Reason: fmt.Sprintf("distance function returned %v", d),
				})
			}
			if err := m.SetAt(i, j, d); err != nil {
				return nil, fmt.Errorf("build cost matrix: %w", err)
			}
		}
	}

	return m, nil
}

// ApplyOverrides writes externally supplied costs on top of a built matrix.
// Entries that reference ids outside the matrix are skipped and counted.
func ApplyOverrides(m *domain.CostMatrix, overrides []domain.CostEntry) (applied, skipped int, err error) {
	for _, o := range overrides {
		if !m.Has(o.FromID) || !m.Has(o.ToID) {
			skipped++
			continue
		}
		if err := m.Override(o.FromID, o.ToID, o.Cost); err != nil {
			return applied, skipped, fmt.Errorf("apply overrides: %w", err)
		}
		applied++
	}
	return applied, skipped, nil
}
