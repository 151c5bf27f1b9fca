package scoringconfig

import "context"

type Repository interface {
	GetByName(ctx context.Context, name string) (Config, bool, error)
	List(ctx context.Context) ([]Config, error)
	// Upsert inserts or replaces the coefficients of the config with the
	// same name.
	Upsert(ctx context.Context, cfg Config) (Config, error)
}
