package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/iter"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fantasy-projections/internal/domain/player"
	"github.com/riskibarqy/fantasy-projections/internal/domain/projection"
	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
	"github.com/riskibarqy/fantasy-projections/internal/ingest/fieldmap"
	"github.com/riskibarqy/fantasy-projections/internal/platform/logging"
)

const (
	defaultFirstSeason   = 1999
	defaultMaxWeek       = 18
	defaultSeasonWorkers = 4
	probeTimeout         = 5 * time.Second
)

type ImportConfig struct {
	FirstSeason   int
	MaxWeek       int
	SeasonWorkers int
}

type ImportRequest struct {
	Season        int
	Week          int
	Source        string
	AllowFallback bool
}

// ImportResult is the aggregate outcome of one (season, week) import.
// Source is the requested source, SourceUsed the one whose rows were stored.
type ImportResult struct {
	PlayersImported     int       `json:"players_imported"`
	PlayersUpdated      int       `json:"players_updated"`
	ProjectionsImported int       `json:"projections_imported"`
	ProjectionsUpdated  int       `json:"projections_updated"`
	Source              string    `json:"source"`
	SourceUsed          string    `json:"source_used,omitempty"`
	FallbackUsed        bool      `json:"fallback_used"`
	Season              int       `json:"season"`
	Week                int       `json:"week"`
	RecordsFetched      int       `json:"records_fetched"`
	Errors              []string  `json:"errors"`
	StartedAt           time.Time `json:"started_at"`
	CompletedAt         time.Time `json:"completed_at"`
}

// Success reports whether some source produced records.
func (r ImportResult) Success() bool {
	return r.SourceUsed != ""
}

type SeasonImportRequest struct {
	Season        int
	Source        string
	StartWeek     int
	EndWeek       int
	AllowFallback bool
}

type WeekImportResult struct {
	Week   int           `json:"week"`
	Result *ImportResult `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

type SeasonImportResult struct {
	Season              int                `json:"season"`
	Source              string             `json:"source"`
	Weeks               []WeekImportResult `json:"weeks"`
	PlayersImported     int                `json:"players_imported"`
	PlayersUpdated      int                `json:"players_updated"`
	ProjectionsImported int                `json:"projections_imported"`
	ProjectionsUpdated  int                `json:"projections_updated"`
	FailedWeeks         int                `json:"failed_weeks"`
}

// ImportService drives adapter, field mapper and repositories for one
// (season, week, source) at a time.
type ImportService struct {
	sources     *source.Registry
	players     player.Repository
	projections projection.Repository
	cfg         ImportConfig
	logger      *logging.Logger
	now         func() time.Time
}

func NewImportService(
	sources *source.Registry,
	players player.Repository,
	projections projection.Repository,
	cfg ImportConfig,
	logger *logging.Logger,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FirstSeason <= 0 {
		cfg.FirstSeason = defaultFirstSeason
	}
	if cfg.MaxWeek <= 0 {
		cfg.MaxWeek = defaultMaxWeek
	}
	if cfg.SeasonWorkers <= 0 {
		cfg.SeasonWorkers = defaultSeasonWorkers
	}

	return &ImportService{
		sources:     sources,
		players:     players,
		projections: projections,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *ImportService) validate(season, week int, rawSource string) (source.Name, error) {
	maxSeason := s.now().Year() + 1
	if season < s.cfg.FirstSeason || season > maxSeason {
		return "", fmt.Errorf("%w: season must be between %d and %d, got %d", ErrInvalidInput, s.cfg.FirstSeason, maxSeason, season)
	}
	if week < 1 || week > s.cfg.MaxWeek {
		return "", fmt.Errorf("%w: week must be between 1 and %d, got %d", ErrInvalidInput, s.cfg.MaxWeek, week)
	}
	name, err := source.ParseName(rawSource)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, ok := s.sources.Get(name); !ok {
		return "", fmt.Errorf("%w: source %s is not configured", ErrInvalidInput, name)
	}
	return name, nil
}

// Import runs one batch. Source failures and per-record mapping failures
// land in ImportResult.Errors; only invalid input, cancellation and
// persistence failures are returned as errors.
func (s *ImportService) Import(ctx context.Context, req ImportRequest) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.Import")
	defer span.End()

	result := ImportResult{
		Source:    strings.ToLower(strings.TrimSpace(req.Source)),
		Season:    req.Season,
		Week:      req.Week,
		Errors:    []string{},
		StartedAt: s.now().UTC(),
	}

	name, err := s.validate(req.Season, req.Week, req.Source)
	if err != nil {
		return result, err
	}
	result.Source = string(name)
	span.SetAttributes(
		attribute.Int("import.season", req.Season),
		attribute.Int("import.week", req.Week),
		attribute.String("import.source", string(name)),
	)

	records, used, err := s.fetchWithFallback(ctx, name, req, &result)
	if err != nil {
		return result, err
	}
	if used == "" {
		result.CompletedAt = s.now().UTC()
		s.logger.WarnContext(ctx, "import produced no records",
			"season", req.Season,
			"week", req.Week,
			"source", name,
			"errors", result.Errors,
		)
		return result, nil
	}
	result.SourceUsed = string(used)
	result.RecordsFetched = len(records)

	for i, raw := range records {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("import cancelled after %d records: %w", i, err)
		}

		rec, err := fieldmap.Map(used, raw)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: %v", i+1, err))
			continue
		}
		if err := s.persist(ctx, used, req.Season, req.Week, rec, &result); err != nil {
			result.CompletedAt = s.now().UTC()
			return result, err
		}
	}

	result.CompletedAt = s.now().UTC()
	s.logger.InfoContext(ctx, "import completed",
		"season", result.Season,
		"week", result.Week,
		"source", result.Source,
		"source_used", result.SourceUsed,
		"fallback_used", result.FallbackUsed,
		"players_imported", result.PlayersImported,
		"players_updated", result.PlayersUpdated,
		"projections_imported", result.ProjectionsImported,
		"projections_updated", result.ProjectionsUpdated,
		"errors", len(result.Errors),
	)
	return result, nil
}

// fetchWithFallback returns the records and the source that produced them.
// An empty source name means neither source produced records.
func (s *ImportService) fetchWithFallback(
	ctx context.Context,
	name source.Name,
	req ImportRequest,
	result *ImportResult,
) ([]source.RawRecord, source.Name, error) {
	adapter, _ := s.sources.Get(name)
	records, primaryErr := s.fetch(ctx, adapter, req.Season, req.Week)
	if primaryErr == nil {
		return records, name, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", name, err)
	}

	if !req.AllowFallback || !s.sources.IsPrimary(name) {
		result.Errors = append(result.Errors, primaryErr.Error())
		return nil, "", nil
	}

	backup := s.sources.Backup()
	s.logger.WarnContext(ctx, "primary source failed, trying backup",
		"season", req.Season,
		"week", req.Week,
		"primary", name,
		"backup", backup.Name(),
		"error", primaryErr,
	)

	records, backupErr := s.fetch(ctx, backup, req.Season, req.Week)
	if backupErr == nil {
		result.FallbackUsed = true
		return records, backup.Name(), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", backup.Name(), err)
	}

	result.Errors = append(result.Errors, primaryErr.Error(), backupErr.Error())
	return nil, "", nil
}

// fetch folds "zero usable records" into an error so both outcomes take the
// same fallback path. Unreadable rows alongside good ones are kept and
// reported per record by the mapper.
func (s *ImportService) fetch(ctx context.Context, adapter source.Adapter, season, week int) ([]source.RawRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.fetch")
	defer span.End()

	records, err := adapter.Fetch(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", adapter.Name(), err)
	}
	if source.CountUsable(records) == 0 {
		return nil, crerr.Mark(
			fmt.Errorf("%s: no usable records for season %d week %d (%d unreadable)", adapter.Name(), season, week, len(records)),
			source.ErrUnavailable,
		)
	}
	return records, nil
}

func (s *ImportService) persist(
	ctx context.Context,
	used source.Name,
	season, week int,
	rec fieldmap.Record,
	result *ImportResult,
) error {
	stored, outcome, err := s.players.UpsertByNaturalKey(ctx, rec.Player)
	if err != nil {
		return crerr.Mark(
			crerr.Wrapf(err, "upsert player %q %s", rec.Player.Name, rec.Player.Position),
			ErrPersistenceFailure,
		)
	}
	switch outcome {
	case player.OutcomeInserted:
		result.PlayersImported++
	case player.OutcomeUpdated:
		result.PlayersUpdated++
	}

	_, projOutcome, err := s.projections.Upsert(ctx, projection.Projection{
		PlayerID: stored.ID,
		Season:   season,
		Week:     week,
		Source:   used,
		Stats:    rec.Stats,
	})
	if err != nil {
		return crerr.Mark(
			crerr.Wrapf(err, "upsert projection player=%s season=%d week=%d", stored.ID, season, week),
			ErrPersistenceFailure,
		)
	}
	switch projOutcome {
	case projection.OutcomeInserted:
		result.ProjectionsImported++
	case projection.OutcomeUpdated:
		result.ProjectionsUpdated++
	}
	return nil
}

// ImportSeason imports a week range. Weeks touch disjoint projection rows,
// so they run on a bounded worker pool.
func (s *ImportService) ImportSeason(ctx context.Context, req SeasonImportRequest) (SeasonImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportSeason")
	defer span.End()

	if req.StartWeek == 0 {
		req.StartWeek = 1
	}
	if req.EndWeek == 0 {
		req.EndWeek = s.cfg.MaxWeek
	}
	name, err := s.validate(req.Season, req.StartWeek, req.Source)
	if err != nil {
		return SeasonImportResult{}, err
	}
	if req.EndWeek < req.StartWeek || req.EndWeek > s.cfg.MaxWeek {
		return SeasonImportResult{}, fmt.Errorf("%w: end week must be between %d and %d, got %d", ErrInvalidInput, req.StartWeek, s.cfg.MaxWeek, req.EndWeek)
	}

	weeks := req.EndWeek - req.StartWeek + 1
	workers := s.cfg.SeasonWorkers
	if workers > weeks {
		workers = weeks
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return SeasonImportResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]WeekImportResult, 0, weeks)
	)
	for week := req.StartWeek; week <= req.EndWeek; week++ {
		week := week
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			row := WeekImportResult{Week: week}
			res, err := s.Import(ctx, ImportRequest{
				Season:        req.Season,
				Week:          week,
				Source:        string(name),
				AllowFallback: req.AllowFallback,
			})
			if err != nil {
				row.Error = err.Error()
			} else {
				row.Result = &res
			}

			mu.Lock()
			results = append(results, row)
			mu.Unlock()
		}); err != nil {
			wg.Done()
			wg.Wait()
			return SeasonImportResult{}, fmt.Errorf("submit week %d to worker pool: %w", week, err)
		}
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Week < results[j].Week })

	out := SeasonImportResult{Season: req.Season, Source: string(name), Weeks: results}
	for _, row := range results {
		if row.Result == nil || !row.Result.Success() {
			out.FailedWeeks++
		}
		if row.Result == nil {
			continue
		}
		out.PlayersImported += row.Result.PlayersImported
		out.PlayersUpdated += row.Result.PlayersUpdated
		out.ProjectionsImported += row.Result.ProjectionsImported
		out.ProjectionsUpdated += row.Result.ProjectionsUpdated
	}

	s.logger.InfoContext(ctx, "season import completed",
		"season", req.Season,
		"source", name,
		"weeks", weeks,
		"failed_weeks", out.FailedWeeks,
	)
	return out, nil
}

// ListSources probes every configured adapter concurrently.
func (s *ImportService) ListSources(ctx context.Context) []source.Status {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ListSources")
	defer span.End()

	adapters := s.sources.All()
	return iter.Map(adapters, func(a *source.Adapter) source.Status {
		adapter := *a
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()

		status := source.Status{
			Name:      adapter.Name(),
			Role:      s.sources.Role(adapter.Name()),
			Available: true,
		}
		if err := adapter.Probe(probeCtx); err != nil {
			status.Available = false
			status.Error = err.Error()
		}
		return status
	})
}
