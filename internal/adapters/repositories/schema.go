package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"vrp-route-plotter/internal/domain"
)

// Initialize the Postgres schema for stored cost overrides.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createOverridesQuery := `
	CREATE TABLE IF NOT EXISTS cost_overrides (
		from_id TEXT NOT NULL,
		to_id TEXT NOT NULL,
		cost DOUBLE PRECISION NOT NULL CHECK (cost >= 0),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (from_id, to_id)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_cost_overrides_to_from
	ON cost_overrides(to_id, from_id);
	`

	statements := []string{
		createOverridesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type OverrideSeed struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Cost float64 `json:"cost"`
}

// LoadOverrideSeeds reads and validates a JSON array of overrides.
func LoadOverrideSeeds(jsonPath string) ([]domain.CostEntry, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed overrides: read %q: %w", jsonPath, err)
	}

	var data []OverrideSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed overrides: parse json: %w", err)
	}

	rows := make([]domain.CostEntry, 0, len(data))
	for i, item := range data {
		from := strings.TrimSpace(item.From)
		to := strings.TrimSpace(item.To)
		if from == "" || to == "" {
			return nil, fmt.Errorf("seed overrides: item at index %d: from and to cannot be empty", i+1)
		}
		if err := validCost(item.Cost); err != nil {
			return nil, fmt.Errorf("seed overrides: item at index %d: %w", i+1, err)
		}
		rows = append(rows, domain.CostEntry{FromID: from, ToID: to, Cost: item.Cost})
	}
	return rows, nil
}

// Populate cost_overrides from a JSON file.
func SeedOverridesFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	rows, err := LoadOverrideSeeds(jsonPath)
	if err != nil {
		return 0, err
	}

	if err := NewSQLCostOverrideRepository(db).PutMany(ctx, rows); err != nil {
		return 0, fmt.Errorf("seed overrides: %w", err)
	}
	return len(rows), nil
}
