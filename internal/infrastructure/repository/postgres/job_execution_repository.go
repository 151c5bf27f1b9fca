package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-projections/internal/domain/jobexecution"
	qb "github.com/riskibarqy/fantasy-projections/internal/platform/querybuilder"
)

const jobExecutionsTable = "job_executions"

var jobExecutionSelectColumns = []string{
	"id",
	"job_id",
	"status",
	"executed_at",
	"season",
	"week",
	"result::text AS result",
	"error",
}

type JobExecutionRepository struct {
	db *sqlx.DB
}

func NewJobExecutionRepository(db *sqlx.DB) *JobExecutionRepository {
	return &JobExecutionRepository{db: db}
}

func (r *JobExecutionRepository) Append(ctx context.Context, execution jobexecution.Execution) (jobexecution.Execution, error) {
	if err := execution.Validate(); err != nil {
		return jobexecution.Execution{}, err
	}

	model := newJobExecutionTableModel(execution)
	suffix := "RETURNING id"
	if execution.ID != "" {
		// Caller-assigned ids are kept so logs and records agree.
		query, args, err := qb.InsertInto(jobExecutionsTable).
			Columns("id", "job_id", "status", "executed_at", "season", "week", "result", "error").
			Values(execution.ID, model.JobID, model.Status, model.ExecutedAt, model.Season, model.Week, model.Result, model.Error).
			Suffix(suffix).
			ToSQL()
		if err != nil {
			return jobexecution.Execution{}, fmt.Errorf("build insert job execution query: %w", err)
		}
		return r.insert(ctx, execution, query, args)
	}

	query, args, err := qb.InsertModel(jobExecutionsTable, model, suffix)
	if err != nil {
		return jobexecution.Execution{}, fmt.Errorf("build insert job execution query: %w", err)
	}
	return r.insert(ctx, execution, query, args)
}

func (r *JobExecutionRepository) insert(ctx context.Context, execution jobexecution.Execution, query string, args []any) (jobexecution.Execution, error) {
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&execution.ID); err != nil {
		return jobexecution.Execution{}, fmt.Errorf("insert job execution job_id=%s status=%s: %w", execution.JobID, execution.Status, err)
	}
	return execution, nil
}

// List returns newest first.
func (r *JobExecutionRepository) List(ctx context.Context, filter jobexecution.ListFilter) ([]jobexecution.Execution, error) {
	conditions := make([]qb.Condition, 0, 2)
	if filter.JobID != "" {
		conditions = append(conditions, qb.Eq("job_id", filter.JobID))
	}
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("status", string(filter.Status)))
	}

	query, args, err := qb.Select(jobExecutionSelectColumns...).From(jobExecutionsTable).
		Where(conditions...).
		OrderBy("executed_at DESC", "id DESC").
		Limit(filter.Limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list job executions query: %w", err)
	}

	var rows []jobExecutionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select job executions: %w", err)
	}

	out := make([]jobexecution.Execution, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *JobExecutionRepository) GetByID(ctx context.Context, executionID string) (jobexecution.Execution, bool, error) {
	if !isUUID(executionID) {
		return jobexecution.Execution{}, false, nil
	}
	query, args, err := qb.Select(jobExecutionSelectColumns...).From(jobExecutionsTable).
		Where(qb.Eq("id", executionID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return jobexecution.Execution{}, false, fmt.Errorf("build select job execution query: %w", err)
	}

	var row jobExecutionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return jobexecution.Execution{}, false, nil
		}
		return jobexecution.Execution{}, false, fmt.Errorf("select job execution id=%s: %w", executionID, err)
	}
	return row.toDomain(), true, nil
}
