package dto

import (
	"fmt"

	"vrp-route-plotter/internal/domain"
	"vrp-route-plotter/internal/render"
)

type Vehicle struct {
	ID       string `json:"id"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Capacity int    `json:"capacity"`
}

type Job struct {
	ID       string `json:"id"`
	Location string `json:"location"`
	Demand   int    `json:"demand"`
}

// Clusters asks the server to generate a synthetic problem instead of
// supplying locations.
type Clusters struct {
	Seed int64 `json:"seed"`
}

type SolveRequest struct {
	Mode      string    `json:"mode"`
	Locations []Point   `json:"locations"`
	Vehicles  []Vehicle `json:"vehicles"`
	Jobs      []Job     `json:"jobs"`
	Clusters  *Clusters `json:"clusters"`
	Format    string    `json:"format"`
	Title     string    `json:"title"`
}

func (r SolveRequest) Problem() (domain.Problem, error) {
	locations, err := ToPoints(r.Locations)
	if err != nil {
		return domain.Problem{}, fmt.Errorf("locations: %w", err)
	}
	p := domain.Problem{
		Locations: locations,
		Vehicles:  make([]domain.Vehicle, 0, len(r.Vehicles)),
		Jobs:      make([]domain.Job, 0, len(r.Jobs)),
	}
	for _, v := range r.Vehicles {
		p.Vehicles = append(p.Vehicles, domain.Vehicle{ID: v.ID, StartLocationID: v.Start, EndLocationID: v.End, Capacity: v.Capacity})
	}
	for _, j := range r.Jobs {
		p.Jobs = append(p.Jobs, domain.Job{ID: j.ID, LocationID: j.Location, Demand: j.Demand})
	}
	return p, nil
}

type SolveResponse struct {
	RunID            string                `json:"run_id"`
	MatrixSource     string                `json:"matrix_source"`
	OverridesApplied int                   `json:"overrides_applied"`
	Solution         Solution              `json:"solution"`
	Summary          []render.RouteSummary `json:"summary"`
	ChartFormat      string                `json:"chart_format,omitempty"`
	ChartLocation    string                `json:"chart_location,omitempty"`
}
