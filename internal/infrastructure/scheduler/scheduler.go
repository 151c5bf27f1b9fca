package scheduler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/riskibarqy/fantasy-projections/internal/domain/jobexecution"
	"github.com/riskibarqy/fantasy-projections/internal/platform/logging"
	"github.com/riskibarqy/fantasy-projections/internal/usecase"
)

const (
	DefaultSpec       = "0 8 * * TUE"
	defaultRunTimeout = 5 * time.Minute
)

// Runner is the slice of usecase.JobService the scheduler drives.
type Runner interface {
	RunImport(ctx context.Context, jobID string, req usecase.ImportRequest) (usecase.ImportResult, jobexecution.Execution, error)
}

type Config struct {
	Spec       string
	Timezone   string
	RunTimeout time.Duration
	Source     string
	MaxWeek    int
}

type JobInfo struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Spec     string    `json:"spec"`
	Timezone string    `json:"timezone"`
	NextRun  time.Time `json:"next_run"`
	PrevRun  time.Time `json:"prev_run,omitempty"`
}

type registeredJob struct {
	entryID cron.EntryID
	name    string
	spec    string
}

type Scheduler struct {
	cron     *cron.Cron
	cfg      Config
	location *time.Location
	runner   Runner
	logger   *logging.Logger
	now      func() time.Time

	mu      sync.Mutex
	jobs    map[string]registeredJob
	started bool
}

func New(cfg Config, runner Runner, logger *logging.Logger) (*Scheduler, error) {
	if runner == nil {
		return nil, fmt.Errorf("scheduler runner is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("scheduler")

	cfg.Spec = strings.TrimSpace(cfg.Spec)
	if cfg.Spec == "" {
		cfg.Spec = DefaultSpec
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = defaultRunTimeout
	}
	if strings.TrimSpace(cfg.Timezone) == "" {
		cfg.Timezone = "UTC"
	}
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load scheduler timezone %q: %w", cfg.Timezone, err)
	}

	cronLog := cronLogger{logger: logger}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		cfg:      cfg,
		location: location,
		runner:   runner,
		logger:   logger,
		now:      time.Now,
		jobs:     make(map[string]registeredJob),
	}

	if err := s.register(jobexecution.JobWeeklyImport, "Weekly projection import", cfg.Spec, s.runWeeklyImport); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) register(id, name, spec string, fn func()) error {
	entryID, err := s.cron.AddJob(spec, cron.FuncJob(fn))
	if err != nil {
		return fmt.Errorf("register job %s with spec %q: %w", id, spec, err)
	}
	s.mu.Lock()
	s.jobs[id] = registeredJob{entryID: entryID, name: name, spec: spec}
	s.mu.Unlock()
	return nil
}

// runWeeklyImport imports the current week. Its outcome lands in the job
// log through the runner, so errors are only logged here.
func (s *Scheduler) runWeeklyImport() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RunTimeout)
	defer cancel()

	season, week := usecase.CurrentSeasonWeek(s.now().In(s.location), s.cfg.MaxWeek)
	res, execution, err := s.runner.RunImport(ctx, jobexecution.JobWeeklyImport, usecase.ImportRequest{
		Season:        season,
		Week:          week,
		Source:        s.cfg.Source,
		AllowFallback: true,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled import failed",
			"job_id", jobexecution.JobWeeklyImport,
			"season", season,
			"week", week,
			"error", err,
		)
		return
	}
	s.logger.InfoContext(ctx, "scheduled import finished",
		"job_id", jobexecution.JobWeeklyImport,
		"execution_id", execution.ID,
		"status", execution.Status,
		"season", season,
		"week", week,
		"source_used", res.SourceUsed,
	)
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.cron.Start()
	s.started = true
	s.logger.Info("scheduler started", "jobs", len(s.jobs), "timezone", s.location.String())
}

// Stop halts new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	s.mu.Unlock()

	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for running jobs: %w", ctx.Err())
	}
}

// Jobs lists registered jobs. Before Start the next run is computed from
// the schedule since cron only fills it in once running.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().In(s.location)
	out := make([]JobInfo, 0, len(s.jobs))
	for id, job := range s.jobs {
		entry := s.cron.Entry(job.entryID)
		info := JobInfo{
			ID:       id,
			Name:     job.name,
			Spec:     job.spec,
			Timezone: s.location.String(),
			NextRun:  entry.Next,
			PrevRun:  entry.Prev,
		}
		if info.NextRun.IsZero() && entry.Schedule != nil {
			info.NextRun = entry.Schedule.Next(now)
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// cronLogger routes cron's own logging through the service logger.
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
