package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProblem(t *testing.T) Problem {
	t.Helper()

	locations := []GeoPoint{
		PlanarPoint("depot", 0, 0),
		PlanarPoint("a", 10, 5),
		PlanarPoint("b", 20, 8),
	}
	costs, err := NewCostMatrix([]string{"depot", "a", "b"})
	require.NoError(t, err)

	return Problem{
		Locations: locations,
		Vehicles:  []Vehicle{{ID: "v1", StartLocationID: "depot", Capacity: 10}},
		Jobs: []Job{
			{ID: "service1", LocationID: "a", Demand: 5},
			{ID: "service2", LocationID: "b", Demand: 5},
		},
		Costs: costs,
	}
}

func TestProblemValidate(t *testing.T) {
	p := testProblem(t)
	require.NoError(t, p.Validate())
	assert.Equal(t, "depot", p.Vehicles[0].EndID())
}

func TestProblemValidateMissingMatrixEntry(t *testing.T) {
	p := testProblem(t)
	p.Locations = append(p.Locations, PlanarPoint("c", 1, 1))
	p.Jobs = append(p.Jobs, Job{ID: "service3", LocationID: "c", Demand: 1})

	err := p.Validate()
	var unknown *UnknownLocationError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "c", unknown.ID)
}

func TestProblemValidateRejects(t *testing.T) {
	cases := map[string]func(p *Problem){
		"nil matrix":        func(p *Problem) { p.Costs = nil },
		"no vehicles":       func(p *Problem) { p.Vehicles = nil },
		"duplicate job":     func(p *Problem) { p.Jobs[1].ID = p.Jobs[0].ID },
		"negative demand":   func(p *Problem) { p.Jobs[0].Demand = -1 },
		"unknown start":     func(p *Problem) { p.Vehicles[0].StartLocationID = "hub" },
		"duplicate vehicle": func(p *Problem) { p.Vehicles = append(p.Vehicles, p.Vehicles[0]) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := testProblem(t)
			mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidProblem)
		})
	}
}

func TestCheckPoint(t *testing.T) {
	require.NoError(t, CheckPoint(NewGeoPoint("nyc", 40.7128, -74.0060), true))
	require.NoError(t, CheckPoint(PlanarPoint("far", 500, 500), false))

	var invalid *InvalidCoordinateError
	require.True(t, errors.As(CheckPoint(PlanarPoint("far", 500, 500), true), &invalid))
	assert.Equal(t, "far", invalid.ID)

	assert.Error(t, CheckPoint(NewGeoPoint("nan", math.NaN(), 0), false))
	assert.Error(t, CheckPoint(NewGeoPoint("inf", 0, math.Inf(-1)), false))
}

func TestVehicleRoutePath(t *testing.T) {
	depot := PlanarPoint("depot", 0, 0)
	r := VehicleRoute{
		VehicleID: "v1",
		Start:     depot,
		Stops: []RouteStop{
			{Point: PlanarPoint("a", 10, 5), SequenceIndex: 0},
			{Point: PlanarPoint("b", 20, 8), SequenceIndex: 1},
		},
		End: depot,
	}

	path := r.Path()
	require.Len(t, path, 4)
	assert.Equal(t, []string{"depot", "a", "b", "depot"}, []string{path[0].ID, path[1].ID, path[2].ID, path[3].ID})
}
