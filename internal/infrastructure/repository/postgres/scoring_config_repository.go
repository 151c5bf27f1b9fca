package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-projections/internal/domain/scoringconfig"
	qb "github.com/riskibarqy/fantasy-projections/internal/platform/querybuilder"
)

const scoringConfigsTable = "scoring_configs"

var scoringConfigSelectColumns = []string{
	"id",
	"name",
	"description",
	"pass_yds_per_point",
	"pass_td_points",
	"pass_int_points",
	"rush_yds_per_point",
	"rush_td_points",
	"rec_yds_per_point",
	"rec_td_points",
	"rec_points",
	"fumble_points",
	"is_default",
	"created_at",
	"updated_at",
}

const scoringConfigUpsertSuffix = `ON CONFLICT ((LOWER(name)))
DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    pass_yds_per_point = EXCLUDED.pass_yds_per_point,
    pass_td_points = EXCLUDED.pass_td_points,
    pass_int_points = EXCLUDED.pass_int_points,
    rush_yds_per_point = EXCLUDED.rush_yds_per_point,
    rush_td_points = EXCLUDED.rush_td_points,
    rec_yds_per_point = EXCLUDED.rec_yds_per_point,
    rec_td_points = EXCLUDED.rec_td_points,
    rec_points = EXCLUDED.rec_points,
    fumble_points = EXCLUDED.fumble_points,
    is_default = EXCLUDED.is_default,
    updated_at = NOW()
RETURNING id, created_at, updated_at`

type ScoringConfigRepository struct {
	db *sqlx.DB
}

func NewScoringConfigRepository(db *sqlx.DB) *ScoringConfigRepository {
	return &ScoringConfigRepository{db: db}
}

func (r *ScoringConfigRepository) GetByName(ctx context.Context, name string) (scoringconfig.Config, bool, error) {
	query, args, err := qb.Select(scoringConfigSelectColumns...).From(scoringConfigsTable).
		Where(qb.Expr("LOWER(name) = LOWER(?)", strings.TrimSpace(name))).
		Limit(1).
		ToSQL()
	if err != nil {
		return scoringconfig.Config{}, false, fmt.Errorf("build select scoring config query: %w", err)
	}

	var row scoringConfigTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoringconfig.Config{}, false, nil
		}
		return scoringconfig.Config{}, false, fmt.Errorf("select scoring config name=%s: %w", name, err)
	}
	return row.toDomain(), true, nil
}

func (r *ScoringConfigRepository) List(ctx context.Context) ([]scoringconfig.Config, error) {
	query, args, err := qb.Select(scoringConfigSelectColumns...).From(scoringConfigsTable).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scoring configs query: %w", err)
	}

	var rows []scoringConfigTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select scoring configs: %w", err)
	}

	out := make([]scoringconfig.Config, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Upsert clears the previous default in the same transaction so the partial
// unique index on is_default never sees two defaults.
func (r *ScoringConfigRepository) Upsert(ctx context.Context, cfg scoringconfig.Config) (scoringconfig.Config, error) {
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		return scoringconfig.Config{}, fmt.Errorf("scoring config name is required")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return scoringconfig.Config{}, fmt.Errorf("begin tx upsert scoring config: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if cfg.IsDefault {
		clearQuery, clearArgs, err := qb.Update(scoringConfigsTable).
			Set("is_default", false).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("is_default", true),
				qb.Expr("LOWER(name) <> LOWER(?)", cfg.Name),
			).
			ToSQL()
		if err != nil {
			return scoringconfig.Config{}, fmt.Errorf("build clear default scoring config query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
			return scoringconfig.Config{}, fmt.Errorf("clear default scoring config: %w", err)
		}
	}

	query, args, err := qb.InsertModel(scoringConfigsTable, newScoringConfigTableModel(cfg), scoringConfigUpsertSuffix)
	if err != nil {
		return scoringconfig.Config{}, fmt.Errorf("build upsert scoring config query: %w", err)
	}
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
		return scoringconfig.Config{}, fmt.Errorf("upsert scoring config name=%s: %w", cfg.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return scoringconfig.Config{}, fmt.Errorf("commit upsert scoring config: %w", err)
	}
	return cfg, nil
}
