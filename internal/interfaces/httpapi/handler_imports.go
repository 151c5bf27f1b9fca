package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-projections/internal/domain/jobexecution"
	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
	"github.com/riskibarqy/fantasy-projections/internal/usecase"
)

type importWeeklyRequest struct {
	Season        int    `json:"season" validate:"required,gt=0"`
	Week          int    `json:"week" validate:"required,gt=0"`
	Source        string `json:"source" validate:"omitempty,max=32"`
	AllowFallback *bool  `json:"allow_fallback"`
}

type importSeasonRequest struct {
	Season        int    `json:"season" validate:"required,gt=0"`
	Source        string `json:"source" validate:"omitempty,max=32"`
	StartWeek     int    `json:"start_week" validate:"gte=0"`
	EndWeek       int    `json:"end_week" validate:"gte=0"`
	AllowFallback *bool  `json:"allow_fallback"`
}

type sourceStatusDTO struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// fallbackEnabled defaults an omitted allow_fallback to true.
func fallbackEnabled(v *bool) bool {
	return v == nil || *v
}

func sourceOrPrimary(raw string) string {
	if raw == "" {
		return source.AliasPrimary
	}
	return raw
}

// ImportWeekly runs one (season, week) import and records it as a
// manual_import execution.
func (h *Handler) ImportWeekly(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportWeekly")
	defer span.End()

	if h.jobService == nil {
		writeError(ctx, w, fmt.Errorf("%w: job service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req importWeeklyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, execution, err := h.jobService.RunImport(ctx, jobexecution.JobManualImport, usecase.ImportRequest{
		Season:        req.Season,
		Week:          req.Week,
		Source:        sourceOrPrimary(req.Source),
		AllowFallback: fallbackEnabled(req.AllowFallback),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "manual import failed", "season", req.Season, "week", req.Week, "source", req.Source, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "manual import finished",
		"execution_id", execution.ID,
		"status", execution.Status,
		"source_used", result.SourceUsed,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ImportSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportSeason")
	defer span.End()

	if h.importService == nil {
		writeError(ctx, w, fmt.Errorf("%w: import service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req importSeasonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.importService.ImportSeason(ctx, usecase.SeasonImportRequest{
		Season:        req.Season,
		Source:        sourceOrPrimary(req.Source),
		StartWeek:     req.StartWeek,
		EndWeek:       req.EndWeek,
		AllowFallback: fallbackEnabled(req.AllowFallback),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "season import failed", "season", req.Season, "source", req.Source, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListSources(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSources")
	defer span.End()

	if h.importService == nil {
		writeError(ctx, w, fmt.Errorf("%w: import service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	statuses := h.importService.ListSources(ctx)
	out := make([]sourceStatusDTO, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, sourceStatusDTO{
			Name:      string(s.Name),
			Role:      s.Role,
			Available: s.Available,
			Error:     s.Error,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
