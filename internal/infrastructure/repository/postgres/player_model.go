package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fantasy-projections/internal/domain/player"
)

type playerTableModel struct {
	ID         string         `db:"id,readonly"`
	ExternalID sql.NullString `db:"external_id"`
	Name       string         `db:"name"`
	NameKey    string         `db:"name_key"`
	Team       sql.NullString `db:"team"`
	Position   string         `db:"position"`
	Status     string         `db:"status"`
	CreatedAt  time.Time      `db:"created_at,readonly"`
	UpdatedAt  time.Time      `db:"updated_at,readonly"`
}

func newPlayerTableModel(p player.Player) playerTableModel {
	status := p.Status
	if status == "" {
		status = player.StatusActive
	}
	return playerTableModel{
		ExternalID: nullString(optionalString(p.ExternalID)),
		Name:       p.Name,
		NameKey:    p.NameKey(),
		Team:       nullString(p.Team),
		Position:   string(p.Position),
		Status:     string(status),
	}
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:         m.ID,
		ExternalID: m.ExternalID.String,
		Name:       m.Name,
		Team:       stringPtr(m.Team),
		Position:   player.Position(m.Position),
		Status:     player.Status(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
