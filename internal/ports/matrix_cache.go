package ports

import (
	"context"

	"vrp-route-plotter/internal/domain"
)

// Caches built cost matrices by a fingerprint of their inputs.
type MatrixCache interface {
	// Get returns (nil, false, nil) on a miss.
	Get(ctx context.Context, key string) (*domain.CostMatrix, bool, error)
	Set(ctx context.Context, key string, m *domain.CostMatrix) error
}
