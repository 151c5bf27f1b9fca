package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/fantasy-projections/internal/domain/scoringconfig"
)

type scoringConfigTableModel struct {
	ID              string          `db:"id,readonly"`
	Name            string          `db:"name"`
	Description     string          `db:"description"`
	PassYdsPerPoint decimal.Decimal `db:"pass_yds_per_point"`
	PassTDPoints    decimal.Decimal `db:"pass_td_points"`
	PassIntPoints   decimal.Decimal `db:"pass_int_points"`
	RushYdsPerPoint decimal.Decimal `db:"rush_yds_per_point"`
	RushTDPoints    decimal.Decimal `db:"rush_td_points"`
	RecYdsPerPoint  decimal.Decimal `db:"rec_yds_per_point"`
	RecTDPoints     decimal.Decimal `db:"rec_td_points"`
	RecPoints       decimal.Decimal `db:"rec_points"`
	FumblePoints    decimal.Decimal `db:"fumble_points"`
	IsDefault       bool            `db:"is_default"`
	CreatedAt       time.Time       `db:"created_at,readonly"`
	UpdatedAt       time.Time       `db:"updated_at,readonly"`
}

func newScoringConfigTableModel(cfg scoringconfig.Config) scoringConfigTableModel {
	return scoringConfigTableModel{
		Name:            cfg.Name,
		Description:     cfg.Description,
		PassYdsPerPoint: cfg.PassYdsPerPoint,
		PassTDPoints:    cfg.PassTDPoints,
		PassIntPoints:   cfg.PassIntPoints,
		RushYdsPerPoint: cfg.RushYdsPerPoint,
		RushTDPoints:    cfg.RushTDPoints,
		RecYdsPerPoint:  cfg.RecYdsPerPoint,
		RecTDPoints:     cfg.RecTDPoints,
		RecPoints:       cfg.RecPoints,
		FumblePoints:    cfg.FumblePoints,
		IsDefault:       cfg.IsDefault,
	}
}

func (m scoringConfigTableModel) toDomain() scoringconfig.Config {
	return scoringconfig.Config{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		PassYdsPerPoint: m.PassYdsPerPoint,
		PassTDPoints:    m.PassTDPoints,
		PassIntPoints:   m.PassIntPoints,
		RushYdsPerPoint: m.RushYdsPerPoint,
		RushTDPoints:    m.RushTDPoints,
		RecYdsPerPoint:  m.RecYdsPerPoint,
		RecTDPoints:     m.RecTDPoints,
		RecPoints:       m.RecPoints,
		FumblePoints:    m.FumblePoints,
		IsDefault:       m.IsDefault,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
