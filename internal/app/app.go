package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/fantasy-projections/external/ffdp"
	"github.com/riskibarqy/fantasy-projections/external/nflverse"
	"github.com/riskibarqy/fantasy-projections/internal/config"
	"github.com/riskibarqy/fantasy-projections/internal/domain/jobexecution"
	"github.com/riskibarqy/fantasy-projections/internal/domain/player"
	"github.com/riskibarqy/fantasy-projections/internal/domain/projection"
	"github.com/riskibarqy/fantasy-projections/internal/domain/scoringconfig"
	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
	"github.com/riskibarqy/fantasy-projections/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-projections/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-projections/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-projections/internal/infrastructure/scheduler"
	"github.com/riskibarqy/fantasy-projections/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-projections/internal/platform/id"
	"github.com/riskibarqy/fantasy-projections/internal/platform/logging"
	"github.com/riskibarqy/fantasy-projections/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-projections/internal/usecase"
)

// App holds the long-lived pieces of the API process.
type App struct {
	Server    *http.Server
	Scheduler *scheduler.Scheduler

	logger *logging.Logger
	db     *sqlx.DB
}

type repositories struct {
	players        player.Repository
	projections    projection.Repository
	scoringConfigs scoringconfig.Repository
	jobExecutions  jobexecution.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	app := &App{logger: logger}
	ids := id.NewUUIDGenerator()

	repos, err := app.openRepositories(ctx, cfg, ids)
	if err != nil {
		return nil, err
	}
	if cfg.CacheEnabled {
		repos.scoringConfigs = cache.NewScoringConfigRepository(repos.scoringConfigs, cfg.CacheTTL)
	}

	registry, err := source.NewRegistry(
		nflverse.NewClient(nflverse.ClientConfig{
			HTTPClient:     newSourceHTTPClient(cfg.NFLVerse),
			BaseURL:        cfg.NFLVerse.BaseURL,
			Timeout:        cfg.NFLVerse.Timeout,
			Logger:         logger,
			CircuitBreaker: circuitConfig(cfg.NFLVerse),
		}),
		ffdp.NewClient(ffdp.ClientConfig{
			HTTPClient:     newSourceHTTPClient(cfg.FFDP),
			BaseURL:        cfg.FFDP.BaseURL,
			Timeout:        cfg.FFDP.Timeout,
			Logger:         logger,
			CircuitBreaker: circuitConfig(cfg.FFDP),
		}),
	)
	if err != nil {
		app.closeDB()
		return nil, fmt.Errorf("build source registry: %w", err)
	}

	importSvc := usecase.NewImportService(registry, repos.players, repos.projections, usecase.ImportConfig{
		FirstSeason:   cfg.IngestFirstSeason,
		MaxWeek:       cfg.IngestMaxWeek,
		SeasonWorkers: cfg.IngestSeasonWorkers,
	}, logger)
	scoringSvc := usecase.NewScoringConfigService(repos.scoringConfigs, logger)
	projectionSvc := usecase.NewProjectionQueryService(repos.projections, scoringSvc, cfg.IngestMaxWeek)
	jobSvc := usecase.NewJobService(importSvc, repos.jobExecutions, ids, logger)

	var jobs httpapi.JobLister
	if cfg.SchedulerEnabled {
		sched, err := scheduler.New(scheduler.Config{
			Spec:       cfg.SchedulerCron,
			Timezone:   cfg.SchedulerTimezone,
			RunTimeout: cfg.SchedulerRunTimeout,
			Source:     cfg.SchedulerSource,
			MaxWeek:    cfg.IngestMaxWeek,
		}, jobSvc, logger)
		if err != nil {
			app.closeDB()
			return nil, fmt.Errorf("build scheduler: %w", err)
		}
		app.Scheduler = sched
		jobs = sched
	}

	handler := httpapi.NewHandler(importSvc, projectionSvc, scoringSvc, jobSvc, jobs, httpapi.HandlerConfig{
		MaxWeek:       cfg.IngestMaxWeek,
		TriggerSource: cfg.SchedulerSource,
	}, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	})

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return app, nil
}

func (a *App) openRepositories(ctx context.Context, cfg config.Config, ids id.Generator) (repositories, error) {
	if cfg.StorageDriver == config.StorageMemory {
		a.logger.Info("storage driver selected", "driver", config.StorageMemory)
		mem := memory.NewRepositories(ids)
		return repositories{
			players:        mem.Players,
			projections:    mem.Projections,
			scoringConfigs: mem.ScoringConfigs,
			jobExecutions:  mem.JobExecutions,
		}, nil
	}

	db, err := OpenDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	a.db = db

	seeded, err := postgres.BootstrapSeed(ctx, db)
	if err != nil {
		a.closeDB()
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}
	a.logger.Info("storage driver selected",
		"driver", config.StoragePostgres,
		"db_name", dbNameFromURL(cfg.DBURL),
		"seeded_scoring_configs", seeded,
	)

	return repositories{
		players:        postgres.NewPlayerRepository(db),
		projections:    postgres.NewProjectionRepository(db),
		scoringConfigs: postgres.NewScoringConfigRepository(db),
		jobExecutions:  postgres.NewJobExecutionRepository(db),
	}, nil
}

func newSourceHTTPClient(cfg config.SourceConfig) *http.Client {
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func circuitConfig(cfg config.SourceConfig) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          cfg.CircuitEnabled,
		FailureThreshold: cfg.CircuitFailureCount,
		OpenTimeout:      cfg.CircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
	}
}

// Start begins scheduled jobs. The HTTP server is started by the caller.
func (a *App) Start() {
	if a.Scheduler != nil {
		a.Scheduler.Start()
	}
}

// Shutdown stops the HTTP server, waits for scheduled runs and closes the
// database pool.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error
	if err := a.Server.Shutdown(ctx); err != nil {
		firstErr = fmt.Errorf("shutdown http server: %w", err)
	}
	if a.Scheduler != nil {
		if err := a.Scheduler.Stop(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("stop scheduler: %w", err)
		}
	}
	a.closeDB()
	return firstErr
}

func (a *App) closeDB() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("close database failed", "error", err)
	}
	a.db = nil
}
