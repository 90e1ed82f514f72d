package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"vrp-route-plotter/internal/domain"
	"vrp-route-plotter/internal/platform/obs"
)

// SQLCostOverrideRepository stores per-direction cost overrides in Postgres.
type SQLCostOverrideRepository struct {
	DB *sql.DB
}

func NewSQLCostOverrideRepository(db *sql.DB) *SQLCostOverrideRepository {
	return &SQLCostOverrideRepository{DB: db}
}

// Fetch overrides whose endpoints are both in ids.
func (s *SQLCostOverrideRepository) GetMany(
	ctx context.Context,
	ids []string,
) (_ []domain.CostEntry, err error) {
	defer obs.Time(ctx, "overrides.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("cost overrides: db is nil")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}

	if len(uniq) == 0 {
		return []domain.CostEntry{}, nil
	}

	q := `
	SELECT from_id, to_id, cost
	FROM cost_overrides
	WHERE from_id = ANY($1::text[])
		AND to_id = ANY($1::text[])
	ORDER BY from_id, to_id;
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get cost overrides: query cost_overrides table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.CostEntry, 0)
	for rows.Next() {
		var e domain.CostEntry
		if err := rows.Scan(&e.FromID, &e.ToID, &e.Cost); err != nil {
			return nil, fmt.Errorf("get cost overrides: scan rows: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get cost overrides: row iteration: %w", err)
	}

	return out, nil
}

// Upsert many overrides in a single transaction.
func (s *SQLCostOverrideRepository) PutMany(ctx context.Context, entries []domain.CostEntry) error {
	if len(entries) == 0 {
		return nil
	}

	for _, e := range entries {
		if strings.TrimSpace(e.FromID) == "" || strings.TrimSpace(e.ToID) == "" {
			return errors.New("insert cost overrides: empty location id")
		}
		if err := validCost(e.Cost); err != nil {
			return fmt.Errorf("insert cost overrides %q -> %q: %w", e.FromID, e.ToID, err)
		}
	}

	if s.DB == nil {
		return errors.New("cost overrides: db is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert cost overrides: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO cost_overrides (from_id, to_id, cost)
	VALUES ($1, $2, $3)
	ON CONFLICT (from_id, to_id) DO UPDATE
	SET cost = EXCLUDED.cost,
		updated_at = now();
	`)
	if err != nil {
		return fmt.Errorf("insert cost overrides: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.FromID, e.ToID, e.Cost); err != nil {
			return fmt.Errorf("insert cost overrides from=%q to=%q: %w", e.FromID, e.ToID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert cost overrides commit: %w", err)
	}

	return nil
}

func validCost(c float64) error {
	if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
		return fmt.Errorf("cost must be finite and non-negative (got %v)", c)
	}
	return nil
}
