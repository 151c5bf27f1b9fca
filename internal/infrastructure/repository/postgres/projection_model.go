package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/fantasy-projections/internal/domain/player"
	"github.com/riskibarqy/fantasy-projections/internal/domain/projection"
	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
)

type projectionStatsModel struct {
	PassAtt    decimal.NullDecimal `db:"pass_att"`
	PassCmp    decimal.NullDecimal `db:"pass_cmp"`
	PassYds    decimal.NullDecimal `db:"pass_yds"`
	PassTDs    decimal.NullDecimal `db:"pass_tds"`
	PassInts   decimal.NullDecimal `db:"pass_ints"`
	RushAtt    decimal.NullDecimal `db:"rush_att"`
	RushYds    decimal.NullDecimal `db:"rush_yds"`
	RushTDs    decimal.NullDecimal `db:"rush_tds"`
	Receptions decimal.NullDecimal `db:"receptions"`
	RecYds     decimal.NullDecimal `db:"rec_yds"`
	RecTDs     decimal.NullDecimal `db:"rec_tds"`
	Targets    decimal.NullDecimal `db:"targets"`
	Fumbles    decimal.NullDecimal `db:"fumbles"`
}

type projectionInsertModel struct {
	PlayerID string `db:"player_id"`
	Season   int    `db:"season"`
	Week     int    `db:"week"`
	Source   string `db:"source"`
	projectionStatsModel
}

type projectionTableModel struct {
	ID        string    `db:"id"`
	PlayerID  string    `db:"player_id"`
	Season    int       `db:"season"`
	Week      int       `db:"week"`
	Source    string    `db:"source"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	projectionStatsModel
}

// projectionWithPlayerModel is one row of the projections/players join.
type projectionWithPlayerModel struct {
	projectionTableModel
	PlayerExternalID *string   `db:"player_external_id"`
	PlayerName       string    `db:"player_name"`
	PlayerTeam       *string   `db:"player_team"`
	PlayerPosition   string    `db:"player_position"`
	PlayerStatus     string    `db:"player_status"`
	PlayerCreatedAt  time.Time `db:"player_created_at"`
	PlayerUpdatedAt  time.Time `db:"player_updated_at"`
}

type availabilityModel struct {
	Season int    `db:"season"`
	Week   int    `db:"week"`
	Source string `db:"source"`
	Count  int    `db:"row_count"`
}

func newProjectionStatsModel(stats projection.Stats) projectionStatsModel {
	return projectionStatsModel{
		PassAtt:    nullDecimal(stats.PassAtt),
		PassCmp:    nullDecimal(stats.PassCmp),
		PassYds:    nullDecimal(stats.PassYds),
		PassTDs:    nullDecimal(stats.PassTDs),
		PassInts:   nullDecimal(stats.PassInts),
		RushAtt:    nullDecimal(stats.RushAtt),
		RushYds:    nullDecimal(stats.RushYds),
		RushTDs:    nullDecimal(stats.RushTDs),
		Receptions: nullDecimal(stats.Receptions),
		RecYds:     nullDecimal(stats.RecYds),
		RecTDs:     nullDecimal(stats.RecTDs),
		Targets:    nullDecimal(stats.Targets),
		Fumbles:    nullDecimal(stats.Fumbles),
	}
}

func (m projectionStatsModel) toDomain() projection.Stats {
	return projection.Stats{
		PassAtt:    decimalPtr(m.PassAtt),
		PassCmp:    decimalPtr(m.PassCmp),
		PassYds:    decimalPtr(m.PassYds),
		PassTDs:    decimalPtr(m.PassTDs),
		PassInts:   decimalPtr(m.PassInts),
		RushAtt:    decimalPtr(m.RushAtt),
		RushYds:    decimalPtr(m.RushYds),
		RushTDs:    decimalPtr(m.RushTDs),
		Receptions: decimalPtr(m.Receptions),
		RecYds:     decimalPtr(m.RecYds),
		RecTDs:     decimalPtr(m.RecTDs),
		Targets:    decimalPtr(m.Targets),
		Fumbles:    decimalPtr(m.Fumbles),
	}
}

func (m projectionTableModel) toDomain() projection.Projection {
	return projection.Projection{
		ID:        m.ID,
		PlayerID:  m.PlayerID,
		Season:    m.Season,
		Week:      m.Week,
		Source:    source.Name(m.Source),
		Stats:     m.projectionStatsModel.toDomain(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (m projectionWithPlayerModel) toDomain() projection.WithPlayer {
	externalID := ""
	if m.PlayerExternalID != nil {
		externalID = *m.PlayerExternalID
	}
	return projection.WithPlayer{
		Projection: m.projectionTableModel.toDomain(),
		Player: player.Player{
			ID:         m.PlayerID,
			ExternalID: externalID,
			Name:       m.PlayerName,
			Team:       m.PlayerTeam,
			Position:   player.Position(m.PlayerPosition),
			Status:     player.Status(m.PlayerStatus),
			CreatedAt:  m.PlayerCreatedAt,
			UpdatedAt:  m.PlayerUpdatedAt,
		},
	}
}
