package domain

import (
	"errors"
	"fmt"
)

// A vehicle starting (and by default ending) at a known location.
type Vehicle struct {
	ID              string
	StartLocationID string
	EndLocationID   string
	Capacity        int
}

// EndID returns the location the vehicle returns to.
func (v Vehicle) EndID() string {
	if v.EndLocationID != "" {
		return v.EndLocationID
	}
	return v.StartLocationID
}

// A service visit with a demand against vehicle capacity.
type Job struct {
	ID         string
	LocationID string
	Demand     int
}

// Problem is what a solver receives: locations, fleet, jobs and the cost matrix.
type Problem struct {
	Locations []GeoPoint
	Vehicles  []Vehicle
	Jobs      []Job
	Costs     *CostMatrix
}

// Location looks up a point by id.
func (p Problem) Location(id string) (GeoPoint, bool) {
	for _, l := range p.Locations {
		if l.ID == id {
			return l, true
		}
	}
	return GeoPoint{}, false
}

// ErrInvalidProblem wraps every error returned by Problem.Validate.
var ErrInvalidProblem = errors.New("invalid problem")

// Validate enforces the solver contract: every location referenced by a vehicle
// or a job exists and is covered by the cost matrix.
func (p Problem) Validate() error {
	if err := p.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProblem, err)
	}
	return nil
}

func (p Problem) validate() error {
	if p.Costs == nil {
		return errors.New("cost matrix is nil")
	}
	if len(p.Vehicles) == 0 {
		return errors.New("at least one vehicle is required")
	}

	known := make(map[string]int, len(p.Locations))
	for i, l := range p.Locations {
		if first, ok := known[l.ID]; ok {
			return &DuplicateIdentifierError{ID: l.ID, FirstIndex: first, SecondIndex: i}
		}
		known[l.ID] = i
	}

	check := func(owner, id string) error {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%s references %w", owner, &UnknownLocationError{ID: id})
		}
		if !p.Costs.Has(id) {
			return fmt.Errorf("cost matrix misses %s location: %w", owner, &UnknownLocationError{ID: id})
		}
		return nil
	}

	vehicleIDs := make(map[string]struct{}, len(p.Vehicles))
	for _, v := range p.Vehicles {
		if v.ID == "" {
			return errors.New("vehicle id must be non-empty")
		}
		if _, ok := vehicleIDs[v.ID]; ok {
			return fmt.Errorf("duplicate vehicle id %q", v.ID)
		}
		vehicleIDs[v.ID] = struct{}{}
		if v.Capacity < 0 {
			return fmt.Errorf("vehicle %q has negative capacity %d", v.ID, v.Capacity)
		}
		if err := check("vehicle "+v.ID+" start", v.StartLocationID); err != nil {
			return err
		}
		if err := check("vehicle "+v.ID+" end", v.EndID()); err != nil {
			return err
		}
	}

	jobIDs := make(map[string]struct{}, len(p.Jobs))
	for _, j := range p.Jobs {
		if j.ID == "" {
			return errors.New("job id must be non-empty")
		}
		if _, ok := jobIDs[j.ID]; ok {
			return fmt.Errorf("duplicate job id %q", j.ID)
		}
		jobIDs[j.ID] = struct{}{}
		if j.Demand < 0 {
			return fmt.Errorf("job %q has negative demand %d", j.ID, j.Demand)
		}
		if err := check("job "+j.ID, j.LocationID); err != nil {
			return err
		}
	}

	return nil
}
