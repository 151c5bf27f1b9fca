package jobexecution

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusError   Status = "error"
)

const (
	JobWeeklyImport = "weekly_import"
	JobManualImport = "manual_import"
)

// Execution is one append-only record of a triggered import.
type Execution struct {
	ID         string
	JobID      string
	Status     Status
	ExecutedAt time.Time
	Season     int
	Week       int
	// Result is the JSON-encoded import result, empty when the run errored.
	Result []byte
	Error  string
}

func (e Execution) Validate() error {
	if e.JobID == "" {
		return fmt.Errorf("job id is required")
	}
	switch e.Status {
	case StatusSuccess, StatusFailed, StatusError:
	default:
		return fmt.Errorf("invalid execution status: %s", e.Status)
	}
	if e.ExecutedAt.IsZero() {
		return fmt.Errorf("executed at is required")
	}
	return nil
}

type ListFilter struct {
	JobID  string
	Status Status
	Limit  int
}
