package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/fantasy-projections/internal/domain/jobexecution"
	"github.com/riskibarqy/fantasy-projections/internal/platform/id"
)

// JobExecutionRepository keeps executions in insertion order.
type JobExecutionRepository struct {
	mu    sync.RWMutex
	items []jobexecution.Execution
	ids   id.Generator
}

func NewJobExecutionRepository(ids id.Generator) *JobExecutionRepository {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &JobExecutionRepository{ids: ids}
}

func (r *JobExecutionRepository) Append(_ context.Context, execution jobexecution.Execution) (jobexecution.Execution, error) {
	if execution.ID == "" {
		newID, err := r.ids.NewID()
		if err != nil {
			return jobexecution.Execution{}, fmt.Errorf("generate execution id: %w", err)
		}
		execution.ID = newID
	}
	execution.Result = append([]byte(nil), execution.Result...)

	r.mu.Lock()
	r.items = append(r.items, execution)
	r.mu.Unlock()
	return execution, nil
}

// List returns newest first.
func (r *JobExecutionRepository) List(_ context.Context, filter jobexecution.ListFilter) ([]jobexecution.Execution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]jobexecution.Execution, 0)
	for i := len(r.items) - 1; i >= 0; i-- {
		item := r.items[i]
		if filter.JobID != "" && item.JobID != filter.JobID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		out = append(out, item)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *JobExecutionRepository) GetByID(_ context.Context, executionID string) (jobexecution.Execution, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == executionID {
			return item, true, nil
		}
	}
	return jobexecution.Execution{}, false, nil
}
