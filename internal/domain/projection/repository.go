package projection

import "context"

type Repository interface {
	// Upsert inserts or fully replaces the stat line keyed by
	// (player, season, week, source).
	Upsert(ctx context.Context, p Projection) (Projection, Outcome, error)
	ListWithPlayers(ctx context.Context, filter ListFilter) ([]WithPlayer, error)
	ListAvailability(ctx context.Context) ([]AvailabilityEntry, error)
}
