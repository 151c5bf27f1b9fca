package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-projections/internal/infrastructure/repository/memory"
)

const seedScoringConfigQuery = `
INSERT INTO scoring_configs (
    name, description,
    pass_yds_per_point, pass_td_points, pass_int_points,
    rush_yds_per_point, rush_td_points,
    rec_yds_per_point, rec_td_points, rec_points,
    fumble_points, is_default
)
VALUES (
    :name, :description,
    :pass_yds_per_point, :pass_td_points, :pass_int_points,
    :rush_yds_per_point, :rush_td_points,
    :rec_yds_per_point, :rec_td_points, :rec_points,
    :fumble_points, :is_default
)
ON CONFLICT ((LOWER(name))) DO NOTHING`

// BootstrapSeed writes the scoring presets into an empty catalog. A catalog
// with any row is left alone so edited presets survive restarts.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) (int, error) {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM scoring_configs`); err != nil {
		return 0, fmt.Errorf("count scoring configs for bootstrap seed: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	seeded := 0
	for _, cfg := range memory.SeedScoringConfigs() {
		sqlQuery, args, err := sqlx.Named(seedScoringConfigQuery, newScoringConfigTableModel(cfg))
		if err != nil {
			return 0, fmt.Errorf("bind seed scoring config %s query: %w", cfg.Name, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		res, err := tx.ExecContext(ctx, sqlQuery, args...)
		if err != nil {
			return 0, fmt.Errorf("seed scoring config %s: %w", cfg.Name, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			seeded += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed tx: %w", err)
	}
	return seeded, nil
}
