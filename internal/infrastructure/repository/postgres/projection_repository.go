package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-projections/internal/domain/projection"
	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
	qb "github.com/riskibarqy/fantasy-projections/internal/platform/querybuilder"
)

const projectionsTable = "projections"

var projectionUpsertSuffix = buildProjectionUpsertSuffix()

// buildProjectionUpsertSuffix replaces every stat column so a re-import
// overwrites the row instead of merging into it. xmax is zero only for
// freshly inserted tuples.
func buildProjectionUpsertSuffix() string {
	var b strings.Builder
	b.WriteString("ON CONFLICT (player_id, season, week, source)\nDO UPDATE SET\n")
	for _, name := range projection.StatNames {
		b.WriteString("    ")
		b.WriteString(name)
		b.WriteString(" = EXCLUDED.")
		b.WriteString(name)
		b.WriteString(",\n")
	}
	b.WriteString("    updated_at = NOW()\n")
	b.WriteString("RETURNING id, created_at, updated_at, (xmax = 0) AS inserted")
	return b.String()
}

func projectionJoinColumns() []string {
	cols := []string{
		"pr.id",
		"pr.player_id",
		"pr.season",
		"pr.week",
		"pr.source",
		"pr.created_at",
		"pr.updated_at",
	}
	for _, name := range projection.StatNames {
		cols = append(cols, "pr."+name)
	}
	return append(cols,
		"p.external_id AS player_external_id",
		"p.name AS player_name",
		"p.team AS player_team",
		"p.position AS player_position",
		"p.status AS player_status",
		"p.created_at AS player_created_at",
		"p.updated_at AS player_updated_at",
	)
}

type ProjectionRepository struct {
	db *sqlx.DB
}

func NewProjectionRepository(db *sqlx.DB) *ProjectionRepository {
	return &ProjectionRepository{db: db}
}

func (r *ProjectionRepository) Upsert(ctx context.Context, p projection.Projection) (projection.Projection, projection.Outcome, error) {
	if err := p.Validate(); err != nil {
		return projection.Projection{}, "", err
	}

	model := projectionInsertModel{
		PlayerID:             p.PlayerID,
		Season:               p.Season,
		Week:                 p.Week,
		Source:               string(p.Source),
		projectionStatsModel: newProjectionStatsModel(p.Stats),
	}
	query, args, err := qb.InsertModel(projectionsTable, model, projectionUpsertSuffix)
	if err != nil {
		return projection.Projection{}, "", fmt.Errorf("build upsert projection query: %w", err)
	}

	var inserted bool
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt, &inserted); err != nil {
		return projection.Projection{}, "", fmt.Errorf("upsert projection player=%s season=%d week=%d source=%s: %w", p.PlayerID, p.Season, p.Week, p.Source, err)
	}

	if inserted {
		return p, projection.OutcomeInserted, nil
	}
	return p, projection.OutcomeUpdated, nil
}

func (r *ProjectionRepository) ListWithPlayers(ctx context.Context, filter projection.ListFilter) ([]projection.WithPlayer, error) {
	conditions := make([]qb.Condition, 0, 5)
	if filter.Season != 0 {
		conditions = append(conditions, qb.Eq("pr.season", filter.Season))
	}
	if filter.Week != 0 {
		conditions = append(conditions, qb.Eq("pr.week", filter.Week))
	}
	if filter.Source != "" {
		conditions = append(conditions, qb.Eq("pr.source", string(filter.Source)))
	}
	if filter.Position != "" {
		conditions = append(conditions, qb.Eq("p.position", string(filter.Position)))
	}
	if filter.Team != "" {
		conditions = append(conditions, qb.Eq("p.team", filter.Team))
	}

	query, args, err := qb.Select(projectionJoinColumns()...).
		From(projectionsTable+" pr").
		Join(playersTable+" p", "p.id = pr.player_id").
		Where(conditions...).
		OrderBy("p.name_key", "pr.source").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list projections query: %w", err)
	}

	var rows []projectionWithPlayerModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select projections season=%d week=%d: %w", filter.Season, filter.Week, err)
	}

	out := make([]projection.WithPlayer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ProjectionRepository) ListAvailability(ctx context.Context) ([]projection.AvailabilityEntry, error) {
	query, args, err := qb.Select("season", "week", "source", "COUNT(1) AS row_count").
		From(projectionsTable).
		GroupBy("season", "week", "source").
		OrderBy("season DESC", "week", "source").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build projection availability query: %w", err)
	}

	var rows []availabilityModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select projection availability: %w", err)
	}

	out := make([]projection.AvailabilityEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, projection.AvailabilityEntry{
			Season: row.Season,
			Week:   row.Week,
			Source: source.Name(row.Source),
			Count:  row.Count,
		})
	}
	return out, nil
}
