package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"vrp-route-plotter/internal/domain"
)

// NearestNeighborSolver is a baseline, deterministic solver.
//
// Vehicles are filled one after another: from the current location the
// closest remaining job that still fits the vehicle's capacity is taken next.
// Each route is then polished with 2-opt. It is not an optimizer; it exists so
// the pipeline can run end to end without an external engine.
type NearestNeighborSolver struct {
	// TwoOptPasses bounds the improvement passes per route. Zero disables 2-opt.
	TwoOptPasses int
}

func NewNearestNeighborSolver() *NearestNeighborSolver {
	return &NearestNeighborSolver{TwoOptPasses: 50}
}

func (s *NearestNeighborSolver) Solve(ctx context.Context, problem domain.Problem) (domain.RoutingSolution, error) {
	if err := problem.Validate(); err != nil {
		return domain.RoutingSolution{}, fmt.Errorf("nearest neighbor solve: %w", err)
	}
	costs := problem.Costs

	points := make(map[string]domain.GeoPoint, len(problem.Locations))
	for _, l := range problem.Locations {
		points[l.ID] = l
	}

	remaining := slices.Clone(problem.Jobs)
	// Stable job order makes ties resolve the same way on every run.
	slices.SortFunc(remaining, func(a, b domain.Job) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	solution := domain.RoutingSolution{Routes: make([]domain.VehicleRoute, 0, len(problem.Vehicles))}

	for _, v := range problem.Vehicles {
		if err := ctx.Err(); err != nil {
			return domain.RoutingSolution{}, err
		}

		load := 0
		current := v.StartLocationID
		var picked []domain.Job

		for {
			best := -1
			minCost := math.Inf(1)
			for i, j := range remaining {
				if v.Capacity > 0 && load+j.Demand > v.Capacity {
					continue
				}
				c, err := costs.Cost(current, j.LocationID)
				if err != nil {
					return domain.RoutingSolution{}, fmt.Errorf("nearest neighbor solve: %w", err)
				}
				// Strict comparison keeps the lowest job id on ties.
				if c < minCost {
					minCost = c
					best = i
				}
			}
			if best < 0 {
				break
			}

			j := remaining[best]
			picked = append(picked, j)
			load += j.Demand
			current = j.LocationID
			remaining = slices.Delete(remaining, best, best+1)
		}

		locs := make([]string, 0, len(picked)+2)
		locs = append(locs, v.StartLocationID)
		for _, j := range picked {
			locs = append(locs, j.LocationID)
		}
		locs = append(locs, v.EndID())

		order := make([]int, len(locs))
		for i := range order {
			order[i] = i
		}
		order = improveTwoOpt(costs, locs, order, s.TwoOptPasses)

		route := domain.VehicleRoute{
			VehicleID: v.ID,
			Start:     points[v.StartLocationID],
			End:       points[v.EndID()],
			Stops:     make([]domain.RouteStop, 0, len(picked)),
		}
		for seq, k := range order[1 : len(order)-1] {
			route.Stops = append(route.Stops, domain.RouteStop{
				Point:         points[locs[k]],
				SequenceIndex: seq,
			})
		}

		cost, err := pathCost(costs, locs, order)
		if err != nil {
			return domain.RoutingSolution{}, fmt.Errorf("nearest neighbor solve: %w", err)
		}
		solution.Cost += cost
		solution.Routes = append(solution.Routes, route)
	}

	for _, j := range remaining {
		solution.Unassigned = append(solution.Unassigned, j.ID)
	}

	return solution, nil
}

var errShortPath = errors.New("path needs at least a start and an end")

func pathCost(costs *domain.CostMatrix, locs []string, order []int) (float64, error) {
	if len(order) < 2 {
		return 0, errShortPath
	}
	total := 0.0
	for i := 0; i < len(order)-1; i++ {
		c, err := costs.Cost(locs[order[i]], locs[order[i+1]])
		if err != nil {
			return 0, err
		}
		total += c
	}
	return total, nil
}
