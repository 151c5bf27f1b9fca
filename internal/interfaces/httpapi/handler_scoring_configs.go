package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/fantasy-projections/internal/domain/scoringconfig"
	"github.com/riskibarqy/fantasy-projections/internal/usecase"
)

type scoringConfigDTO struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	PassYdsPerPoint string    `json:"pass_yds_per_point"`
	PassTDPoints    string    `json:"pass_td_points"`
	PassIntPoints   string    `json:"pass_int_points"`
	RushYdsPerPoint string    `json:"rush_yds_per_point"`
	RushTDPoints    string    `json:"rush_td_points"`
	RecYdsPerPoint  string    `json:"rec_yds_per_point"`
	RecTDPoints     string    `json:"rec_td_points"`
	RecPoints       string    `json:"rec_points"`
	FumblePoints    string    `json:"fumble_points"`
	IsDefault       bool      `json:"is_default"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// upsertScoringConfigRequest accepts coefficients as JSON numbers or
// quoted decimal strings.
type upsertScoringConfigRequest struct {
	Description     string           `json:"description" validate:"max=255"`
	PassYdsPerPoint *decimal.Decimal `json:"pass_yds_per_point" validate:"required"`
	PassTDPoints    *decimal.Decimal `json:"pass_td_points" validate:"required"`
	PassIntPoints   *decimal.Decimal `json:"pass_int_points" validate:"required"`
	RushYdsPerPoint *decimal.Decimal `json:"rush_yds_per_point" validate:"required"`
	RushTDPoints    *decimal.Decimal `json:"rush_td_points" validate:"required"`
	RecYdsPerPoint  *decimal.Decimal `json:"rec_yds_per_point" validate:"required"`
	RecTDPoints     *decimal.Decimal `json:"rec_td_points" validate:"required"`
	RecPoints       *decimal.Decimal `json:"rec_points" validate:"required"`
	FumblePoints    *decimal.Decimal `json:"fumble_points" validate:"required"`
	IsDefault       bool             `json:"is_default"`
}

func (req upsertScoringConfigRequest) toConfig() scoringconfig.Config {
	return scoringconfig.Config{
		Description:     strings.TrimSpace(req.Description),
		PassYdsPerPoint: *req.PassYdsPerPoint,
		PassTDPoints:    *req.PassTDPoints,
		PassIntPoints:   *req.PassIntPoints,
		RushYdsPerPoint: *req.RushYdsPerPoint,
		RushTDPoints:    *req.RushTDPoints,
		RecYdsPerPoint:  *req.RecYdsPerPoint,
		RecTDPoints:     *req.RecTDPoints,
		RecPoints:       *req.RecPoints,
		FumblePoints:    *req.FumblePoints,
		IsDefault:       req.IsDefault,
	}
}

func scoringConfigToDTO(c scoringconfig.Config) scoringConfigDTO {
	return scoringConfigDTO{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		PassYdsPerPoint: c.PassYdsPerPoint.String(),
		PassTDPoints:    c.PassTDPoints.String(),
		PassIntPoints:   c.PassIntPoints.String(),
		RushYdsPerPoint: c.RushYdsPerPoint.String(),
		RushTDPoints:    c.RushTDPoints.String(),
		RecYdsPerPoint:  c.RecYdsPerPoint.String(),
		RecTDPoints:     c.RecTDPoints.String(),
		RecPoints:       c.RecPoints.String(),
		FumblePoints:    c.FumblePoints.String(),
		IsDefault:       c.IsDefault,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (h *Handler) ListScoringConfigs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScoringConfigs")
	defer span.End()

	if h.scoringService == nil {
		writeError(ctx, w, fmt.Errorf("%w: scoring config service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	items, err := h.scoringService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list scoring configs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]scoringConfigDTO, 0, len(items))
	for _, item := range items {
		out = append(out, scoringConfigToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetScoringConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoringConfig")
	defer span.End()

	if h.scoringService == nil {
		writeError(ctx, w, fmt.Errorf("%w: scoring config service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	name := strings.TrimSpace(r.PathValue("name"))
	item, err := h.scoringService.Get(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "get scoring config failed", "name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringConfigToDTO(item))
}

func (h *Handler) UpsertScoringConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertScoringConfig")
	defer span.End()

	if h.scoringService == nil {
		writeError(ctx, w, fmt.Errorf("%w: scoring config service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	name := strings.TrimSpace(r.PathValue("name"))
	var req upsertScoringConfigRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	stored, err := h.scoringService.Upsert(ctx, name, req.toConfig())
	if err != nil {
		h.logger.WarnContext(ctx, "upsert scoring config failed", "name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringConfigToDTO(stored))
}
