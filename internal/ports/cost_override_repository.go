package ports

import (
	"context"

	"vrp-route-plotter/internal/domain"
)

// Port: stored per-direction cost overrides (e.g. measured road costs).
type CostOverrideRepository interface {
	// Return every override whose endpoints are both in ids.
	GetMany(ctx context.Context, ids []string) ([]domain.CostEntry, error)
	PutMany(ctx context.Context, entries []domain.CostEntry) error
}
