package ports

import (
	"context"

	"vrp-route-plotter/internal/domain"
)

// Solver turns a validated problem into a routing solution.
type Solver interface {
	Solve(ctx context.Context, problem domain.Problem) (domain.RoutingSolution, error)
}
