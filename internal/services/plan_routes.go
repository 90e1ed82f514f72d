package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"vrp-route-plotter/internal/domain"
	"vrp-route-plotter/internal/geo"
	"vrp-route-plotter/internal/metrics"
	"vrp-route-plotter/internal/platform/obs"
	"vrp-route-plotter/internal/ports"
	"vrp-route-plotter/internal/render"
)

// Matrix sources reported by Planner.Matrix.
const (
	MatrixBuilt  = "built"
	MatrixCached = "cache"
	MatrixGiven  = "given"
)

// Planner wires the route pipeline: cost matrix (optionally cached), stored
// overrides, solver, chart rendering and export. Only Solver is required.
type Planner struct {
	Solver    ports.Solver
	Cache     ports.MatrixCache
	Overrides ports.CostOverrideRepository
	Exporter  ports.ChartExporter
}

type PlanRoutesRequest struct {
	Problem domain.Problem
	Mode    geo.Mode
	// Format selects the chart encoding; empty skips encoding and export.
	Format        string
	RenderOptions []render.Option
	// Name is the exported chart name; defaults to the run id.
	Name string
}

type PlanRoutesResult struct {
	RunID            string
	MatrixSource     string
	OverridesApplied int
	Solution         domain.RoutingSolution
	Summary          []render.RouteSummary
	Chart            *render.Chart
	ChartBytes       []byte
	ChartLocation    string
}

// Matrix returns the base cost matrix for points, consulting the cache first.
// Cache failures are logged and never fail the request.
func (p *Planner) Matrix(ctx context.Context, points []domain.GeoPoint, mode geo.Mode) (_ *domain.CostMatrix, source string, err error) {
	defer obs.Time(ctx, "planner.Matrix")(&err)

	key := MatrixKey(points, mode)

	if p.Cache != nil {
		m, ok, err := p.Cache.Get(ctx, key)
		if err != nil {
			log.Printf("req_id=%s matrix cache read failed: %v", obs.RequestID(ctx), err)
		} else if ok && m.Len() == len(points) {
			metrics.MatrixBuilds.WithLabelValues(MatrixCached).Inc()
			return m, MatrixCached, nil
		}
	}

	m, err := BuildCostMatrix(points, WithMode(mode))
	if err != nil {
		return nil, "", err
	}
	metrics.MatrixBuilds.WithLabelValues(MatrixBuilt).Inc()
	metrics.MatrixSize.Observe(float64(m.Len()))

	if p.Cache != nil {
		if err := p.Cache.Set(ctx, key, m); err != nil {
			log.Printf("req_id=%s matrix cache write failed: %v", obs.RequestID(ctx), err)
		}
	}
	return m, MatrixBuilt, nil
}

// PlanRoutes runs the full pipeline for one problem.
func (p *Planner) PlanRoutes(ctx context.Context, req PlanRoutesRequest) (_ *PlanRoutesResult, err error) {
	if p.Solver == nil {
		return nil, errors.New("plan routes: solver is nil")
	}

	res := &PlanRoutesResult{RunID: uuid.NewString()}
	if obs.RequestID(ctx) == "" {
		ctx = obs.WithRequestID(ctx, res.RunID)
	}
	defer obs.Time(ctx, "planner.PlanRoutes")(&err)

	problem := req.Problem
	if problem.Costs == nil {
		m, source, err := p.Matrix(ctx, problem.Locations, req.Mode)
		if err != nil {
			return nil, fmt.Errorf("plan routes: %w", err)
		}
		problem.Costs = m
		res.MatrixSource = source

		if p.Overrides != nil {
			overrides, err := p.Overrides.GetMany(ctx, m.IDs())
			if err != nil {
				return nil, fmt.Errorf("plan routes: load overrides: %w", err)
			}
			applied, _, err := ApplyOverrides(m, overrides)
			if err != nil {
				return nil, fmt.Errorf("plan routes: %w", err)
			}
			res.OverridesApplied = applied
		}
	} else {
		res.MatrixSource = MatrixGiven
	}

	if err := problem.Validate(); err != nil {
		return nil, fmt.Errorf("plan routes: %w", err)
	}

	solution, err := p.Solver.Solve(ctx, problem)
	if err != nil {
		return nil, fmt.Errorf("plan routes: solve: %w", err)
	}
	res.Solution = solution

	res.Summary, err = render.Summarize(solution, problem.Costs)
	if err != nil {
		return nil, fmt.Errorf("plan routes: %w", err)
	}

	res.Chart, err = render.Render(solution, req.RenderOptions...)
	if err != nil {
		return nil, fmt.Errorf("plan routes: %w", err)
	}
	metrics.RenderedSeries.Add(float64(len(res.Chart.Series)))

	if req.Format == "" {
		return res, nil
	}

	var buf bytes.Buffer
	if err := res.Chart.Encode(&buf, req.Format); err != nil {
		return nil, fmt.Errorf("plan routes: %w", err)
	}
	res.ChartBytes = buf.Bytes()

	if p.Exporter != nil {
		name := req.Name
		if name == "" {
			name = res.RunID
		}
		res.ChartLocation, err = p.Exporter.Export(ctx, name, req.Format, res.ChartBytes)
		if err != nil {
			return nil, fmt.Errorf("plan routes: export chart: %w", err)
		}
	}

	return res, nil
}
