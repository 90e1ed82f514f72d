package solver

import (
	"context"
	"sync"

	"vrp-route-plotter/internal/domain"
)

// MockSolver returns a canned solution (or error) and records the problems it saw.
type MockSolver struct {
	Solution domain.RoutingSolution
	Err      error

	mu    sync.Mutex
	calls []domain.Problem
}

func NewMockSolver(solution domain.RoutingSolution) *MockSolver {
	return &MockSolver{Solution: solution}
}

func (m *MockSolver) Solve(ctx context.Context, problem domain.Problem) (domain.RoutingSolution, error) {
	m.mu.Lock()
	m.calls = append(m.calls, problem)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.RoutingSolution{}, err
	}
	if m.Err != nil {
		return domain.RoutingSolution{}, m.Err
	}
	return m.Solution, nil
}

// Calls returns the problems passed to Solve, in order.
func (m *MockSolver) Calls() []domain.Problem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Problem(nil), m.calls...)
}
