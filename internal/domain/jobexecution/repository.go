package jobexecution

import "context"

// Repository is append-only. Executions are never updated.
type Repository interface {
	Append(ctx context.Context, execution Execution) (Execution, error)
	List(ctx context.Context, filter ListFilter) ([]Execution, error)
	GetByID(ctx context.Context, id string) (Execution, bool, error)
}
