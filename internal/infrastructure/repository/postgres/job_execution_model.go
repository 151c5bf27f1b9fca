package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fantasy-projections/internal/domain/jobexecution"
)

type jobExecutionTableModel struct {
	ID         string         `db:"id,readonly"`
	JobID      string         `db:"job_id"`
	Status     string         `db:"status"`
	ExecutedAt time.Time      `db:"executed_at"`
	Season     int            `db:"season"`
	Week       int            `db:"week"`
	Result     sql.NullString `db:"result"`
	Error      sql.NullString `db:"error"`
}

func newJobExecutionTableModel(execution jobexecution.Execution) jobExecutionTableModel {
	model := jobExecutionTableModel{
		JobID:      execution.JobID,
		Status:     string(execution.Status),
		ExecutedAt: execution.ExecutedAt.UTC(),
		Season:     execution.Season,
		Week:       execution.Week,
		Error:      nullString(optionalString(execution.Error)),
	}
	// lib/pq encodes []byte as bytea, so the JSONB payload travels as text.
	if len(execution.Result) > 0 {
		model.Result = sql.NullString{String: string(execution.Result), Valid: true}
	}
	return model
}

func (m jobExecutionTableModel) toDomain() jobexecution.Execution {
	execution := jobexecution.Execution{
		ID:         m.ID,
		JobID:      m.JobID,
		Status:     jobexecution.Status(m.Status),
		ExecutedAt: m.ExecutedAt,
		Season:     m.Season,
		Week:       m.Week,
		Error:      m.Error.String,
	}
	if m.Result.Valid {
		execution.Result = []byte(m.Result.String)
	}
	return execution
}
