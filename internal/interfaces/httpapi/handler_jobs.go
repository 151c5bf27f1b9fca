package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/fantasy-projections/internal/domain/jobexecution"
	"github.com/riskibarqy/fantasy-projections/internal/infrastructure/scheduler"
	"github.com/riskibarqy/fantasy-projections/internal/usecase"
)

type triggerJobRequest struct {
	JobID         string `json:"job_id" validate:"omitempty,oneof=weekly_import"`
	Season        int    `json:"season" validate:"gte=0"`
	Week          int    `json:"week" validate:"gte=0"`
	Source        string `json:"source" validate:"omitempty,max=32"`
	AllowFallback *bool  `json:"allow_fallback"`
}

type jobExecutionDTO struct {
	ID         string                `json:"id"`
	JobID      string                `json:"job_id"`
	Status     string                `json:"status"`
	ExecutedAt time.Time             `json:"executed_at"`
	Season     int                   `json:"season"`
	Week       int                   `json:"week"`
	Result     *usecase.ImportResult `json:"result,omitempty"`
	Error      string                `json:"error,omitempty"`
}

type jobStatusDTO struct {
	SchedulerEnabled bool                `json:"scheduler_enabled"`
	Jobs             []scheduler.JobInfo `json:"jobs"`
	LastExecution    *jobExecutionDTO    `json:"last_execution,omitempty"`
}

type triggerJobDTO struct {
	Execution jobExecutionDTO      `json:"execution"`
	Result    usecase.ImportResult `json:"result"`
}

func jobExecutionToDTO(e jobexecution.Execution) jobExecutionDTO {
	out := jobExecutionDTO{
		ID:         e.ID,
		JobID:      e.JobID,
		Status:     string(e.Status),
		ExecutedAt: e.ExecutedAt,
		Season:     e.Season,
		Week:       e.Week,
		Error:      e.Error,
	}
	if len(e.Result) > 0 {
		var result usecase.ImportResult
		if err := sonic.Unmarshal(e.Result, &result); err == nil {
			out.Result = &result
		}
	}
	return out
}

func (h *Handler) JobStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JobStatus")
	defer span.End()

	out := jobStatusDTO{Jobs: []scheduler.JobInfo{}}
	if h.jobs != nil {
		out.SchedulerEnabled = true
		out.Jobs = h.jobs.Jobs()
	}

	if h.jobService != nil {
		last, err := h.jobService.History(ctx, jobexecution.ListFilter{Limit: 1})
		if err != nil {
			h.logger.WarnContext(ctx, "load last job execution failed", "error", err)
			writeError(ctx, w, err)
			return
		}
		if len(last) > 0 {
			dto := jobExecutionToDTO(last[0])
			out.LastExecution = &dto
		}
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

// TriggerJob runs the weekly import now. Season and week default to the
// current estimate, as the scheduled run would use.
func (h *Handler) TriggerJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerJob")
	defer span.End()

	if h.jobService == nil {
		writeError(ctx, w, fmt.Errorf("%w: job service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req triggerJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	season, week := req.Season, req.Week
	if season == 0 || week == 0 {
		season, week = usecase.CurrentSeasonWeek(h.now(), h.cfg.MaxWeek)
	}
	src := req.Source
	if src == "" {
		src = sourceOrPrimary(h.cfg.TriggerSource)
	}

	result, execution, err := h.jobService.RunImport(ctx, jobexecution.JobWeeklyImport, usecase.ImportRequest{
		Season:        season,
		Week:          week,
		Source:        src,
		AllowFallback: fallbackEnabled(req.AllowFallback),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "triggered job failed", "job_id", jobexecution.JobWeeklyImport, "season", season, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, triggerJobDTO{
		Execution: jobExecutionToDTO(execution),
		Result:    result,
	})
}

func (h *Handler) JobHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JobHistory")
	defer span.End()

	if h.jobService == nil {
		writeError(ctx, w, fmt.Errorf("%w: job service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	values := r.URL.Query()
	limit, err := queryInt(values, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.jobService.History(ctx, jobexecution.ListFilter{
		JobID:  strings.TrimSpace(values.Get("job_id")),
		Status: jobexecution.Status(strings.ToLower(strings.TrimSpace(values.Get("status")))),
		Limit:  limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list job history failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]jobExecutionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, jobExecutionToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) JobExecution(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JobExecution")
	defer span.End()

	if h.jobService == nil {
		writeError(ctx, w, fmt.Errorf("%w: job service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	executionID := strings.TrimSpace(r.PathValue("executionID"))
	item, err := h.jobService.Execution(ctx, executionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get job execution failed", "execution_id", executionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, jobExecutionToDTO(item))
}
