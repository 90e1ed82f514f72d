package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrp-route-plotter/internal/adapters/cache"
	"vrp-route-plotter/internal/adapters/export"
	"vrp-route-plotter/internal/adapters/solver"
	"vrp-route-plotter/internal/domain"
	"vrp-route-plotter/internal/geo"
	"vrp-route-plotter/internal/render"
)

type fakeOverrides struct {
	entries []domain.CostEntry
	err     error
	asked   []string
}

func (f *fakeOverrides) GetMany(_ context.Context, ids []string) ([]domain.CostEntry, error) {
	f.asked = ids
	return f.entries, f.err
}

func (f *fakeOverrides) PutMany(context.Context, []domain.CostEntry) error { return nil }

func demoProblem() domain.Problem {
	return domain.Problem{
		Locations: []domain.GeoPoint{
			domain.PlanarPoint("depot", 0, 0),
			domain.PlanarPoint("location1", 10, 5),
			domain.PlanarPoint("location2", 20, 8),
		},
		Vehicles: []domain.Vehicle{{ID: "v1", StartLocationID: "depot", Capacity: 10}},
		Jobs: []domain.Job{
			{ID: "j1", LocationID: "location1", Demand: 5},
			{ID: "j2", LocationID: "location2", Demand: 5},
		},
	}
}

func newRedisCache(t *testing.T) *cache.RedisMatrixCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisMatrixCache(client, time.Hour)
}

func TestPlanRoutesEndToEnd(t *testing.T) {
	dir := t.TempDir()
	overrides := &fakeOverrides{entries: []domain.CostEntry{{FromID: "depot", ToID: "location1", Cost: 1}}}
	p := &Planner{
		Solver:    solver.NewNearestNeighborSolver(),
		Cache:     newRedisCache(t),
		Overrides: overrides,
		Exporter:  export.NewFileExporter(dir),
	}

	res, err := p.PlanRoutes(context.Background(), PlanRoutesRequest{
		Problem: demoProblem(),
		Mode:    geo.Planar,
		Format:  render.FormatSVG,
		Name:    "demo",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, MatrixBuilt, res.MatrixSource)
	assert.Equal(t, 1, res.OverridesApplied)
	assert.ElementsMatch(t, []string{"depot", "location1", "location2"}, overrides.asked)

	require.Len(t, res.Solution.Routes, 1)
	assert.Len(t, res.Solution.Routes[0].Stops, 2)
	require.Len(t, res.Summary, 1)
	assert.Equal(t, 2, res.Summary[0].Stops)

	require.Len(t, res.Chart.Series, 1)
	assert.Equal(t, "v1_0", res.Chart.Series[0].Key)
	assert.NotEmpty(t, res.ChartBytes)
	assert.Equal(t, filepath.Join(dir, "demo.svg"), res.ChartLocation)
	_, err = os.Stat(res.ChartLocation)
	assert.NoError(t, err)

	again, err := p.PlanRoutes(context.Background(), PlanRoutesRequest{Problem: demoProblem(), Mode: geo.Planar})
	require.NoError(t, err)
	assert.Equal(t, MatrixCached, again.MatrixSource)
	assert.NotEqual(t, res.RunID, again.RunID)
	assert.Empty(t, again.ChartBytes)
	assert.Empty(t, again.ChartLocation)
}

func TestPlanRoutesUsesGivenMatrix(t *testing.T) {
	problem := demoProblem()
	m, err := BuildCostMatrix(problem.Locations, WithMode(geo.Planar))
	require.NoError(t, err)
	problem.Costs = m

	want := domain.RoutingSolution{Routes: []domain.VehicleRoute{{
		VehicleID: "v1",
		Start:     problem.Locations[0],
		End:       problem.Locations[0],
	}}}
	mock := solver.NewMockSolver(want)

	res, err := (&Planner{Solver: mock}).PlanRoutes(context.Background(), PlanRoutesRequest{Problem: problem})
	require.NoError(t, err)
	assert.Equal(t, MatrixGiven, res.MatrixSource)
	assert.Equal(t, want, res.Solution)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Same(t, m, calls[0].Costs)
}

func TestPlanRoutesErrors(t *testing.T) {
	ctx := context.Background()

	_, err := (&Planner{}).PlanRoutes(ctx, PlanRoutesRequest{Problem: demoProblem()})
	assert.Error(t, err)

	failing := solver.NewMockSolver(domain.RoutingSolution{})
	failing.Err = errors.New("engine down")
	_, err = (&Planner{Solver: failing}).PlanRoutes(ctx, PlanRoutesRequest{Problem: demoProblem(), Mode: geo.Planar})
	assert.ErrorContains(t, err, "engine down")

	_, err = (&Planner{
		Solver:    failing,
		Overrides: &fakeOverrides{err: errors.New("db gone")},
	}).PlanRoutes(ctx, PlanRoutesRequest{Problem: demoProblem(), Mode: geo.Planar})
	assert.ErrorContains(t, err, "db gone")

	bad := demoProblem()
	bad.Locations = append(bad.Locations, domain.PlanarPoint("depot", 1, 1))
	_, err = (&Planner{Solver: failing}).PlanRoutes(ctx, PlanRoutesRequest{Problem: bad, Mode: geo.Planar})
	var dup *domain.DuplicateIdentifierError
	assert.True(t, errors.As(err, &dup))

	ok := solver.NewNearestNeighborSolver()
	_, err = (&Planner{Solver: ok}).PlanRoutes(ctx, PlanRoutesRequest{Problem: demoProblem(), Mode: geo.Planar, Format: "bmp"})
	assert.ErrorIs(t, err, render.ErrUnsupportedFormat)
}

func TestMatrixKey(t *testing.T) {
	pts := []domain.GeoPoint{
		domain.NewGeoPoint("depot", 40.7128, -74.0060),
		domain.NewGeoPoint("a", 34.0522, -118.2437),
	}

	base := MatrixKey(pts, geo.Geographic)
	assert.Equal(t, base, MatrixKey(pts, geo.Geographic))
	assert.NotEqual(t, base, MatrixKey(pts, geo.Planar))

	moved := append([]domain.GeoPoint(nil), pts...)
	moved[1].Lat += 1e-9
	assert.NotEqual(t, base, MatrixKey(moved, geo.Geographic))

	swapped := []domain.GeoPoint{pts[1], pts[0]}
	assert.NotEqual(t, base, MatrixKey(swapped, geo.Geographic))
}
