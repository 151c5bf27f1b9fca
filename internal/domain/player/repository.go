package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	// UpsertByNaturalKey inserts p when (name key, position) is new, otherwise
	// updates the stored team when it differs. The returned player carries the
	// stored id.
	UpsertByNaturalKey(ctx context.Context, p Player) (Player, Outcome, error)
	GetByNaturalKey(ctx context.Context, name string, position Position) (Player, bool, error)
	GetByID(ctx context.Context, id string) (Player, bool, error)
	List(ctx context.Context, filter ListFilter) ([]Player, error)
}

type ListFilter struct {
	Position Position
	Team     string
}
