package solver

import (
	"context"
	"testing"

	"vrp-route-plotter/internal/domain"
)

type pair struct {
	from, to string
	cost     float64
}

func hubProblem(t *testing.T, vehicles []domain.Vehicle, jobs []domain.Job) domain.Problem {
	t.Helper()

	pairs := []pair{
		{"HUB", "A", 1000}, {"HUB", "B", 2000}, {"HUB", "C", 1500},
		{"A", "B", 800}, {"A", "C", 700}, {"B", "C", 900},
		{"A", "HUB", 1000}, {"B", "HUB", 2000}, {"C", "HUB", 1500},
		{"B", "A", 800}, {"C", "A", 700}, {"C", "B", 900},
	}

	m, err := domain.NewCostMatrix([]string{"HUB", "A", "B", "C"})
	if err != nil {
		t.Fatalf("new cost matrix: %v", err)
	}
	for _, p := range pairs {
		if err := m.Override(p.from, p.to, p.cost); err != nil {
			t.Fatalf("override %s -> %s: %v", p.from, p.to, err)
		}
	}

	return domain.Problem{
		Locations: []domain.GeoPoint{
			domain.PlanarPoint("HUB", 0, 0),
			domain.PlanarPoint("A", 1, 0),
			domain.PlanarPoint("B", 2, 1),
			domain.PlanarPoint("C", 1, 1),
		},
		Vehicles: vehicles,
		Jobs:     jobs,
		Costs:    m,
	}
}

func stopIDs(r domain.VehicleRoute) []string {
	out := make([]string, 0, len(r.Stops))
	for _, s := range r.Stops {
		out = append(out, s.Point.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var threeJobs = []domain.Job{
	{ID: "j1", LocationID: "A", Demand: 1},
	{ID: "j2", LocationID: "B", Demand: 1},
	{ID: "j3", LocationID: "C", Demand: 1},
}

func TestNearestNeighborGreedyOrder(t *testing.T) {
	p := hubProblem(t, []domain.Vehicle{{ID: "v1", StartLocationID: "HUB"}}, threeJobs)

	s := &NearestNeighborSolver{}
	sol, err := s.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sol.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(sol.Routes))
	}
	if got := stopIDs(sol.Routes[0]); !equalIDs(got, []string{"A", "C", "B"}) {
		t.Fatalf("stops = %v, want [A C B]", got)
	}
	if sol.Routes[0].Start.ID != "HUB" || sol.Routes[0].End.ID != "HUB" {
		t.Fatalf("route should start and end at HUB, got %q -> %q", sol.Routes[0].Start.ID, sol.Routes[0].End.ID)
	}
	if sol.Cost != 4600 {
		t.Fatalf("cost = %v, want 4600", sol.Cost)
	}
	for i, st := range sol.Routes[0].Stops {
		if st.SequenceIndex != i {
			t.Fatalf("stop %d has sequence index %d", i, st.SequenceIndex)
		}
	}
}

func TestNearestNeighborTwoOptImproves(t *testing.T) {
	p := hubProblem(t, []domain.Vehicle{{ID: "v1", StartLocationID: "HUB"}}, threeJobs)

	sol, err := NewNearestNeighborSolver().Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := stopIDs(sol.Routes[0]); !equalIDs(got, []string{"A", "B", "C"}) {
		t.Fatalf("stops = %v, want [A B C]", got)
	}
	if sol.Cost != 4200 {
		t.Fatalf("cost = %v, want 4200", sol.Cost)
	}
}

func TestNearestNeighborCapacity(t *testing.T) {
	jobs := append([]domain.Job{{ID: "j4", LocationID: "B", Demand: 5}}, threeJobs...)
	p := hubProblem(t, []domain.Vehicle{
		{ID: "v1", StartLocationID: "HUB", Capacity: 2},
		{ID: "v2", StartLocationID: "HUB", Capacity: 2},
	}, jobs)

	sol, err := (&NearestNeighborSolver{}).Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := stopIDs(sol.Routes[0]); !equalIDs(got, []string{"A", "C"}) {
		t.Fatalf("v1 stops = %v, want [A C]", got)
	}
	if got := stopIDs(sol.Routes[1]); !equalIDs(got, []string{"B"}) {
		t.Fatalf("v2 stops = %v, want [B]", got)
	}
	if !equalIDs(sol.Unassigned, []string{"j4"}) {
		t.Fatalf("unassigned = %v, want [j4]", sol.Unassigned)
	}
}

func TestNearestNeighborIdleVehicleAndTies(t *testing.T) {
	jobs := []domain.Job{
		{ID: "b", LocationID: "A", Demand: 1},
		{ID: "a", LocationID: "A", Demand: 1},
	}
	p := hubProblem(t, []domain.Vehicle{
		{ID: "v1", StartLocationID: "HUB", Capacity: 1},
		{ID: "v2", StartLocationID: "HUB", Capacity: 1},
		{ID: "v3", StartLocationID: "HUB", Capacity: 1},
	}, jobs)

	sol, err := NewNearestNeighborSolver().Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sol.Routes) != 3 {
		t.Fatalf("expected a route per vehicle, got %d", len(sol.Routes))
	}
	if len(sol.Routes[2].Stops) != 0 {
		t.Fatalf("v3 should be idle, got %v", stopIDs(sol.Routes[2]))
	}
	if len(sol.Unassigned) != 0 {
		t.Fatalf("unexpected unassigned jobs: %v", sol.Unassigned)
	}
}

func TestNearestNeighborRejectsInvalidProblem(t *testing.T) {
	p := hubProblem(t, []domain.Vehicle{{ID: "v1", StartLocationID: "NOWHERE"}}, nil)

	if _, err := NewNearestNeighborSolver().Solve(context.Background(), p); err == nil {
		t.Fatal("expected error for unknown start location")
	}
}
