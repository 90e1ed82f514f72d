package dto

import (
	"fmt"

	"vrp-route-plotter/internal/domain"
)

type Route struct {
	VehicleID string  `json:"vehicle_id"`
	Start     Point   `json:"start"`
	Stops     []Point `json:"stops"`
	End       Point   `json:"end"`
}

type Solution struct {
	Routes     []Route  `json:"routes"`
	Unassigned []string `json:"unassigned,omitempty"`
	Cost       float64  `json:"cost"`
}

// ToDomain converts a posted solution; a point without coordinates fails the
// whole conversion.
func (s Solution) ToDomain() (domain.RoutingSolution, error) {
	out := domain.RoutingSolution{
		Routes:     make([]domain.VehicleRoute, 0, len(s.Routes)),
		Unassigned: s.Unassigned,
		Cost:       s.Cost,
	}
	for ri, r := range s.Routes {
		start, err := r.Start.ToDomain()
		if err != nil {
			return domain.RoutingSolution{}, fmt.Errorf("route #%d start: %w", ri, err)
		}
		end, err := r.End.ToDomain()
		if err != nil {
			return domain.RoutingSolution{}, fmt.Errorf("route #%d end: %w", ri, err)
		}
		vr := domain.VehicleRoute{
			VehicleID: r.VehicleID,
			Start:     start,
			End:       end,
			Stops:     make([]domain.RouteStop, 0, len(r.Stops)),
		}
		for i, p := range r.Stops {
			pt, err := p.ToDomain()
			if err != nil {
				return domain.RoutingSolution{}, fmt.Errorf("route #%d stop #%d: %w", ri, i+1, err)
			}
			vr.Stops = append(vr.Stops, domain.RouteStop{Point: pt, SequenceIndex: i})
		}
		out.Routes = append(out.Routes, vr)
	}
	return out, nil
}

func FromSolution(s domain.RoutingSolution) Solution {
	out := Solution{
		Routes:     make([]Route, 0, len(s.Routes)),
		Unassigned: s.Unassigned,
		Cost:       s.Cost,
	}
	for _, r := range s.Routes {
		route := Route{
			VehicleID: r.VehicleID,
			Start:     FromPoint(r.Start),
			End:       FromPoint(r.End),
			Stops:     make([]Point, 0, len(r.Stops)),
		}
		for _, st := range r.Stops {
			route.Stops = append(route.Stops, FromPoint(st.Point))
		}
		out.Routes = append(out.Routes, route)
	}
	return out
}
