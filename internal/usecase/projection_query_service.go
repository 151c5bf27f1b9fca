package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/fantasy-projections/internal/domain/player"
	"github.com/riskibarqy/fantasy-projections/internal/domain/projection"
	"github.com/riskibarqy/fantasy-projections/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-projections/internal/domain/scoringconfig"
	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
)

const (
	defaultQueryLimit = 50
	maxQueryLimit     = 500
	defaultTopLimit   = 10

	SortByPoints = "points"
	SortByName   = "name"
	OrderAsc     = "asc"
	OrderDesc    = "desc"
)

type ProjectionQuery struct {
	Season    int
	Week      int
	Scoring   string
	Source    string
	Position  string
	Team      string
	MinPoints *decimal.Decimal
	SortBy    string
	Order     string
	Limit     int
	Offset    int
}

// ScoredProjection carries points already rounded for presentation.
type ScoredProjection struct {
	Player     player.Player
	Projection projection.Projection
	Points     decimal.Decimal
	Breakdown  scoring.Result
}

type ScoredProjectionPage struct {
	Items         []ScoredProjection
	Total         int
	Limit         int
	Offset        int
	ScoringConfig string
}

type WeekAvailability struct {
	Week    int      `json:"week"`
	Sources []string `json:"sources"`
	Rows    int      `json:"rows"`
}

type SeasonAvailability struct {
	Season int                `json:"season"`
	Weeks  []WeekAvailability `json:"weeks"`
}

type ProjectionQueryService struct {
	projections projection.Repository
	configs     *ScoringConfigService
	maxWeek     int
}

func NewProjectionQueryService(projections projection.Repository, configs *ScoringConfigService, maxWeek int) *ProjectionQueryService {
	if maxWeek <= 0 {
		maxWeek = defaultMaxWeek
	}
	return &ProjectionQueryService{projections: projections, configs: configs, maxWeek: maxWeek}
}

func (s *ProjectionQueryService) normalize(q ProjectionQuery) (ProjectionQuery, projection.ListFilter, error) {
	if q.Season <= 0 {
		return q, projection.ListFilter{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if q.Week < 1 || q.Week > s.maxWeek {
		return q, projection.ListFilter{}, fmt.Errorf("%w: week must be between 1 and %d", ErrInvalidInput, s.maxWeek)
	}

	filter := projection.ListFilter{Season: q.Season, Week: q.Week}
	if strings.TrimSpace(q.Source) != "" {
		name, err := source.ParseName(q.Source)
		if err != nil {
			return q, filter, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Source = name
	}
	if strings.TrimSpace(q.Position) != "" {
		pos, err := player.ParsePosition(q.Position)
		if err != nil {
			return q, filter, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Position = pos
	}
	if strings.TrimSpace(q.Team) != "" {
		team := player.NormalizeTeam(q.Team)
		if team == nil {
			return q, filter, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, q.Team)
		}
		filter.Team = *team
	}

	q.SortBy = strings.ToLower(strings.TrimSpace(q.SortBy))
	switch q.SortBy {
	case "":
		q.SortBy = SortByPoints
	case SortByPoints, SortByName:
	default:
		return q, filter, fmt.Errorf("%w: sort_by must be %q or %q", ErrInvalidInput, SortByPoints, SortByName)
	}

	q.Order = strings.ToLower(strings.TrimSpace(q.Order))
	switch q.Order {
	case "":
		if q.SortBy == SortByName {
			q.Order = OrderAsc
		} else {
			q.Order = OrderDesc
		}
	case OrderAsc, OrderDesc:
	default:
		return q, filter, fmt.Errorf("%w: order must be %q or %q", ErrInvalidInput, OrderAsc, OrderDesc)
	}

	if q.Limit == 0 {
		q.Limit = defaultQueryLimit
	}
	if q.Limit < 1 || q.Limit > maxQueryLimit {
		return q, filter, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxQueryLimit)
	}
	if q.Offset < 0 {
		return q, filter, fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
	}
	return q, filter, nil
}

// GetScoredProjections scores stored rows under the requested config.
// Player filters run in storage. Min points, sorting and paging run after
// scoring since points are not stored.
func (s *ProjectionQueryService) GetScoredProjections(ctx context.Context, q ProjectionQuery) (ScoredProjectionPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProjectionQueryService.GetScoredProjections")
	defer span.End()

	q, filter, err := s.normalize(q)
	if err != nil {
		return ScoredProjectionPage{}, err
	}

	cfg, err := s.configs.Get(ctx, q.Scoring)
	if err != nil {
		return ScoredProjectionPage{}, err
	}

	rows, err := s.projections.ListWithPlayers(ctx, filter)
	if err != nil {
		return ScoredProjectionPage{}, fmt.Errorf("list projections: %w", err)
	}

	scored := make([]ScoredProjection, 0, len(rows))
	for _, row := range rows {
		item, err := scoreRow(row, cfg)
		if err != nil {
			return ScoredProjectionPage{}, err
		}
		if q.MinPoints != nil && item.Points.LessThan(*q.MinPoints) {
			continue
		}
		scored = append(scored, item)
	}

	sortScored(scored, q.SortBy, q.Order)

	page := ScoredProjectionPage{
		Total:         len(scored),
		Limit:         q.Limit,
		Offset:        q.Offset,
		ScoringConfig: cfg.Name,
	}
	if q.Offset < len(scored) {
		end := q.Offset + q.Limit
		if end > len(scored) {
			end = len(scored)
		}
		page.Items = scored[q.Offset:end]
	}
	if page.Items == nil {
		page.Items = []ScoredProjection{}
	}
	return page, nil
}

func scoreRow(row projection.WithPlayer, cfg scoringconfig.Config) (ScoredProjection, error) {
	res, err := scoring.Score(row.Projection.Stats, cfg)
	if err != nil {
		return ScoredProjection{}, err
	}
	rounded := res.Rounded()
	return ScoredProjection{
		Player:     row.Player,
		Projection: row.Projection,
		Points:     rounded.Total,
		Breakdown:  rounded,
	}, nil
}

func sortScored(items []ScoredProjection, sortBy, order string) {
	desc := order == OrderDesc
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if sortBy == SortByPoints {
			if c := a.Points.Cmp(b.Points); c != 0 {
				return (c > 0) == desc
			}
			return a.Player.NameKey() < b.Player.NameKey()
		}
		if ak, bk := a.Player.NameKey(), b.Player.NameKey(); ak != bk {
			return (ak > bk) == desc
		}
		return a.Points.GreaterThan(b.Points)
	})
}

// TopByPosition returns the highest scoring players at one position.
func (s *ProjectionQueryService) TopByPosition(ctx context.Context, season, week int, position, scoringName string, limit int) (ScoredProjectionPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProjectionQueryService.TopByPosition")
	defer span.End()

	if strings.TrimSpace(position) == "" {
		return ScoredProjectionPage{}, fmt.Errorf("%w: position is required", ErrInvalidInput)
	}
	if limit == 0 {
		limit = defaultTopLimit
	}
	return s.GetScoredProjections(ctx, ProjectionQuery{
		Season:   season,
		Week:     week,
		Scoring:  scoringName,
		Position: position,
		SortBy:   SortByPoints,
		Order:    OrderDesc,
		Limit:    limit,
	})
}

// Availability groups stored rows by season then week, newest season first.
func (s *ProjectionQueryService) Availability(ctx context.Context) ([]SeasonAvailability, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProjectionQueryService.Availability")
	defer span.End()

	entries, err := s.projections.ListAvailability(ctx)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}

	bySeason := make(map[int]map[int]*WeekAvailability)
	for _, e := range entries {
		weeks, ok := bySeason[e.Season]
		if !ok {
			weeks = make(map[int]*WeekAvailability)
			bySeason[e.Season] = weeks
		}
		w, ok := weeks[e.Week]
		if !ok {
			w = &WeekAvailability{Week: e.Week}
			weeks[e.Week] = w
		}
		w.Sources = append(w.Sources, string(e.Source))
		w.Rows += e.Count
	}

	out := make([]SeasonAvailability, 0, len(bySeason))
	for season, weeks := range bySeason {
		item := SeasonAvailability{Season: season, Weeks: make([]WeekAvailability, 0, len(weeks))}
		for _, w := range weeks {
			sort.Strings(w.Sources)
			item.Weeks = append(item.Weeks, *w)
		}
		sort.Slice(item.Weeks, func(i, j int) bool { return item.Weeks[i].Week < item.Weeks[j].Week })
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Season > out[j].Season })
	return out, nil
}
