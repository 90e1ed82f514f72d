package render

import (
	"fmt"

	"vrp-route-plotter/internal/domain"
)

// RouteSummary is a printable digest of one route.
type RouteSummary struct {
	Key       string  `json:"key"`
	VehicleID string  `json:"vehicle_id"`
	Stops     int     `json:"stops"`
	Cost      float64 `json:"cost"`
}

// Summarize reports stop counts per route and, when costs is non-nil, the
// travel cost of each path (start -> stops -> end).
func Summarize(solution domain.RoutingSolution, costs *domain.CostMatrix) ([]RouteSummary, error) {
	out := make([]RouteSummary, 0, len(solution.Routes))
	for i, r := range solution.Routes {
		s := RouteSummary{
			Key:       SeriesKey(r.VehicleID, i),
			VehicleID: r.VehicleID,
			Stops:     len(r.Stops),
		}

		if costs != nil {
			path := r.Path()
			for k := 1; k < len(path); k++ {
				c, err := costs.Cost(path[k-1].ID, path[k].ID)
				if err != nil {
					return nil, fmt.Errorf("summarize route %s: %w", s.Key, err)
				}
				s.Cost += c
			}
		}
		out = append(out, s)
	}
	return out, nil
}
