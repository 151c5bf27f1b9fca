package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/fantasy-projections/internal/domain/player"
	"github.com/riskibarqy/fantasy-projections/internal/domain/projection"
	"github.com/riskibarqy/fantasy-projections/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-projections/internal/usecase"
)

type playerDTO struct {
	ID         string  `json:"id"`
	ExternalID string  `json:"external_id,omitempty"`
	Name       string  `json:"name"`
	Team       *string `json:"team"`
	Position   string  `json:"position"`
	Status     string  `json:"status"`
}

type breakdownDTO struct {
	Passing   string `json:"passing"`
	Rushing   string `json:"rushing"`
	Receiving string `json:"receiving"`
	Fumbles   string `json:"fumbles"`
	Total     string `json:"total"`
}

type scoredProjectionDTO struct {
	Player    playerDTO         `json:"player"`
	Season    int               `json:"season"`
	Week      int               `json:"week"`
	Source    string            `json:"source"`
	Stats     map[string]string `json:"stats"`
	Points    string            `json:"points"`
	Breakdown breakdownDTO      `json:"breakdown"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type scoredProjectionPageDTO struct {
	ScoringConfig string                `json:"scoring_config"`
	Total         int                   `json:"total"`
	Limit         int                   `json:"limit"`
	Offset        int                   `json:"offset"`
	Items         []scoredProjectionDTO `json:"items"`
}

// formatPoints renders points with exactly two decimals.
func formatPoints(v decimal.Decimal) string {
	return v.StringFixedBank(scoring.PresentationPlaces)
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:         p.ID,
		ExternalID: p.ExternalID,
		Name:       p.Name,
		Team:       p.Team,
		Position:   string(p.Position),
		Status:     string(p.Status),
	}
}

// statsToDTO keeps only set stats so unset and zero stay distinguishable.
func statsToDTO(s projection.Stats) map[string]string {
	values := s.Values()
	out := make(map[string]string, len(values))
	for name, v := range values {
		out[name] = v.String()
	}
	return out
}

func breakdownToDTO(r scoring.Result) breakdownDTO {
	return breakdownDTO{
		Passing:   formatPoints(r.Passing),
		Rushing:   formatPoints(r.Rushing),
		Receiving: formatPoints(r.Receiving),
		Fumbles:   formatPoints(r.Fumbles),
		Total:     formatPoints(r.Total),
	}
}

func scoredPageToDTO(page usecase.ScoredProjectionPage) scoredProjectionPageDTO {
	items := make([]scoredProjectionDTO, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, scoredProjectionDTO{
			Player:    playerToDTO(item.Player),
			Season:    item.Projection.Season,
			Week:      item.Projection.Week,
			Source:    string(item.Projection.Source),
			Stats:     statsToDTO(item.Projection.Stats),
			Points:    formatPoints(item.Points),
			Breakdown: breakdownToDTO(item.Breakdown),
			UpdatedAt: item.Projection.UpdatedAt,
		})
	}
	return scoredProjectionPageDTO{
		ScoringConfig: page.ScoringConfig,
		Total:         page.Total,
		Limit:         page.Limit,
		Offset:        page.Offset,
		Items:         items,
	}
}

// queryInt reads an optional integer query parameter. Missing values
// return zero so the use case can apply its default.
func queryInt(values url.Values, key string) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

func queryInts(values url.Values, keys ...string) ([]int, error) {
	out := make([]int, 0, len(keys))
	for _, key := range keys {
		v, err := queryInt(values, key)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (h *Handler) ListProjections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListProjections")
	defer span.End()

	if h.projectionService == nil {
		writeError(ctx, w, fmt.Errorf("%w: projection service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	values := r.URL.Query()
	ints, err := queryInts(values, "season", "week", "limit", "offset")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := usecase.ProjectionQuery{
		Season:   ints[0],
		Week:     ints[1],
		Limit:    ints[2],
		Offset:   ints[3],
		Scoring:  strings.TrimSpace(values.Get("scoring")),
		Source:   strings.TrimSpace(values.Get("source")),
		Position: strings.TrimSpace(values.Get("position")),
		Team:     strings.TrimSpace(values.Get("team")),
		SortBy:   strings.TrimSpace(values.Get("sort_by")),
		Order:    strings.TrimSpace(values.Get("order")),
	}
	if raw := strings.TrimSpace(values.Get("min_points")); raw != "" {
		floor, err := decimal.NewFromString(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: min_points must be a decimal number", usecase.ErrInvalidInput))
			return
		}
		query.MinPoints = &floor
	}

	page, err := h.projectionService.GetScoredProjections(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "list projections failed", "season", query.Season, "week", query.Week, "scoring", query.Scoring, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoredPageToDTO(page))
}

func (h *Handler) TopProjectionsByPosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TopProjectionsByPosition")
	defer span.End()

	if h.projectionService == nil {
		writeError(ctx, w, fmt.Errorf("%w: projection service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	values := r.URL.Query()
	ints, err := queryInts(values, "season", "week", "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	position := strings.TrimSpace(r.PathValue("position"))
	scoringName := strings.TrimSpace(values.Get("scoring"))

	page, err := h.projectionService.TopByPosition(ctx, ints[0], ints[1], position, scoringName, ints[2])
	if err != nil {
		h.logger.WarnContext(ctx, "top projections failed", "position", position, "season", ints[0], "week", ints[1], "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoredPageToDTO(page))
}

func (h *Handler) ProjectionAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ProjectionAvailability")
	defer span.End()

	if h.projectionService == nil {
		writeError(ctx, w, fmt.Errorf("%w: projection service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	seasons, err := h.projectionService.Availability(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "projection availability failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if seasons == nil {
		seasons = []usecase.SeasonAvailability{}
	}

	writeSuccess(ctx, w, http.StatusOK, seasons)
}
