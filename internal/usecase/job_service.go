package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/fantasy-projections/internal/domain/jobexecution"
	"github.com/riskibarqy/fantasy-projections/internal/platform/id"
	"github.com/riskibarqy/fantasy-projections/internal/platform/logging"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// Importer is the slice of ImportService the job runner needs.
type Importer interface {
	Import(ctx context.Context, req ImportRequest) (ImportResult, error)
}

// JobService runs imports on behalf of the scheduler and manual triggers
// and appends one execution record per run.
type JobService struct {
	importer Importer
	repo     jobexecution.Repository
	ids      id.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewJobService(importer Importer, repo jobexecution.Repository, ids id.Generator, logger *logging.Logger) *JobService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &JobService{
		importer: importer,
		repo:     repo,
		ids:      ids,
		logger:   logger,
		now:      time.Now,
	}
}

// RunImport calls Import and records the outcome. The import result and
// error are returned unchanged; a failure to record is logged only.
func (s *JobService) RunImport(ctx context.Context, jobID string, req ImportRequest) (ImportResult, jobexecution.Execution, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		jobID = jobexecution.JobManualImport
	}

	ctx, span := startJobSpan(ctx, "usecase.JobService.RunImport", jobID)
	defer span.End()

	executedAt := s.now().UTC()
	result, importErr := s.importer.Import(ctx, req)

	execution := jobexecution.Execution{
		JobID:      jobID,
		ExecutedAt: executedAt,
		Season:     req.Season,
		Week:       req.Week,
	}
	switch {
	case importErr != nil:
		execution.Status = jobexecution.StatusError
		execution.Error = importErr.Error()
	case !result.Success():
		execution.Status = jobexecution.StatusFailed
		execution.Error = strings.Join(result.Errors, "; ")
	default:
		execution.Status = jobexecution.StatusSuccess
	}
	if importErr == nil {
		payload, err := sonic.Marshal(result)
		if err != nil {
			s.logger.WarnContext(ctx, "encode import result for job log failed", "job_id", jobID, "error", err)
		} else {
			execution.Result = payload
		}
	}

	recorded, err := s.record(ctx, execution)
	if err != nil {
		s.logger.ErrorContext(ctx, "append job execution failed",
			"job_id", jobID,
			"status", execution.Status,
			"error", err,
		)
	} else {
		execution = recorded
	}

	s.logger.InfoContext(ctx, "job executed",
		"job_id", jobID,
		"execution_id", execution.ID,
		"status", execution.Status,
		"season", req.Season,
		"week", req.Week,
	)
	return result, execution, importErr
}

func (s *JobService) record(ctx context.Context, execution jobexecution.Execution) (jobexecution.Execution, error) {
	if execution.ID == "" {
		newID, err := s.ids.NewID()
		if err != nil {
			return execution, fmt.Errorf("generate execution id: %w", err)
		}
		execution.ID = newID
	}
	if err := execution.Validate(); err != nil {
		return execution, err
	}
	return s.repo.Append(ctx, execution)
}

func (s *JobService) History(ctx context.Context, filter jobexecution.ListFilter) ([]jobexecution.Execution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.History")
	defer span.End()

	if filter.Limit == 0 {
		filter.Limit = defaultHistoryLimit
	}
	if filter.Limit < 1 || filter.Limit > maxHistoryLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxHistoryLimit)
	}
	switch filter.Status {
	case "", jobexecution.StatusSuccess, jobexecution.StatusFailed, jobexecution.StatusError:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list job executions: %w", err)
	}
	return items, nil
}

func (s *JobService) Execution(ctx context.Context, executionID string) (jobexecution.Execution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.Execution")
	defer span.End()

	executionID = strings.TrimSpace(executionID)
	if executionID == "" {
		return jobexecution.Execution{}, fmt.Errorf("%w: execution id is required", ErrInvalidInput)
	}
	item, ok, err := s.repo.GetByID(ctx, executionID)
	if err != nil {
		return jobexecution.Execution{}, fmt.Errorf("get job execution: %w", err)
	}
	if !ok {
		return jobexecution.Execution{}, fmt.Errorf("%w: job execution %s", ErrNotFound, executionID)
	}
	return item, nil
}

// CurrentSeasonWeek estimates the NFL week for now. Before September it
// points at the last regular-season week of the previous season.
func CurrentSeasonWeek(now time.Time, maxWeek int) (int, int) {
	if maxWeek <= 0 {
		maxWeek = defaultMaxWeek
	}
	month := int(now.Month())
	if month < int(time.September) {
		return now.Year() - 1, maxWeek
	}
	week := (month-int(time.September))*4 + 1
	if week > maxWeek {
		week = maxWeek
	}
	return now.Year(), week
}
