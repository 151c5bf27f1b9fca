package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-projections/internal/domain/player"
	qb "github.com/riskibarqy/fantasy-projections/internal/platform/querybuilder"
)

const playersTable = "players"

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"external_id",
	"name",
	"name_key",
	"team",
	"position",
	"status",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// UpsertByNaturalKey runs in one transaction: insert when the key is new,
// otherwise lock the stored row and overwrite team and status only when they changed.
func (r *PlayerRepository) UpsertByNaturalKey(ctx context.Context, p player.Player) (player.Player, player.Outcome, error) {
	if err := p.Validate(); err != nil {
		return player.Player{}, "", err
	}
	row := newPlayerTableModel(p)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return player.Player{}, "", fmt.Errorf("begin tx upsert player: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertQuery, insertArgs, err := qb.InsertModel(playersTable, row, `ON CONFLICT (name_key, position) DO NOTHING
RETURNING id, created_at, updated_at`)
	if err != nil {
		return player.Player{}, "", fmt.Errorf("build insert player query: %w", err)
	}
	err = tx.QueryRowxContext(ctx, insertQuery, insertArgs...).Scan(&row.ID, &row.CreatedAt, &row.UpdatedAt)
	switch {
	case err == nil:
		if err := tx.Commit(); err != nil {
			return player.Player{}, "", fmt.Errorf("commit insert player: %w", err)
		}
		return row.toDomain(), player.OutcomeInserted, nil
	case !isNotFound(err):
		return player.Player{}, "", fmt.Errorf("insert player name_key=%s position=%s: %w", row.NameKey, row.Position, err)
	}

	selectQuery, selectArgs, err := qb.Select(playerSelectColumns...).From(playersTable).
		Where(
			qb.Eq("name_key", row.NameKey),
			qb.Eq("position", row.Position),
		).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return player.Player{}, "", fmt.Errorf("build lock player query: %w", err)
	}
	var stored playerTableModel
	if err := tx.GetContext(ctx, &stored, selectQuery, selectArgs...); err != nil {
		return player.Player{}, "", fmt.Errorf("lock player name_key=%s position=%s: %w", row.NameKey, row.Position, err)
	}

	current := stored.toDomain()
	if !player.Changed(current, p) {
		if err := tx.Commit(); err != nil {
			return player.Player{}, "", fmt.Errorf("commit unchanged player: %w", err)
		}
		return current, player.OutcomeUnchanged, nil
	}

	update := qb.Update(playersTable)
	if player.TeamChanged(current.Team, p.Team) {
		update.Set("team", *p.Team)
		current.Team = p.Team
	}
	if player.StatusChanged(current.Status, p.Status) {
		update.Set("status", string(p.Status))
		current.Status = p.Status
	}
	updateQuery, updateArgs, err := update.
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", stored.ID)).
		Suffix("RETURNING updated_at").
		ToSQL()
	if err != nil {
		return player.Player{}, "", fmt.Errorf("build update player query: %w", err)
	}
	if err := tx.QueryRowxContext(ctx, updateQuery, updateArgs...).Scan(&current.UpdatedAt); err != nil {
		return player.Player{}, "", fmt.Errorf("update player id=%s: %w", stored.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return player.Player{}, "", fmt.Errorf("commit update player: %w", err)
	}

	return current, player.OutcomeUpdated, nil
}

func (r *PlayerRepository) GetByNaturalKey(ctx context.Context, name string, position player.Position) (player.Player, bool, error) {
	return r.getOne(ctx,
		qb.Eq("name_key", player.NormalizeName(name)),
		qb.Eq("position", string(position)),
	)
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	if !isUUID(playerID) {
		return player.Player{}, false, nil
	}
	return r.getOne(ctx, qb.Eq("id", playerID))
}

func (r *PlayerRepository) getOne(ctx context.Context, conditions ...qb.Condition) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From(playersTable).
		Where(conditions...).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) List(ctx context.Context, filter player.ListFilter) ([]player.Player, error) {
	conditions := make([]qb.Condition, 0, 2)
	if filter.Position != "" {
		conditions = append(conditions, qb.Eq("position", string(filter.Position)))
	}
	if filter.Team != "" {
		conditions = append(conditions, qb.Eq("team", filter.Team))
	}

	query, args, err := qb.Select(playerSelectColumns...).From(playersTable).
		Where(conditions...).
		OrderBy("name_key", "position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
