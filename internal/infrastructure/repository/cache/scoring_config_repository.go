package cache

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-projections/internal/domain/scoringconfig"
	basecache "github.com/riskibarqy/fantasy-projections/internal/platform/cache"
)

const scoringConfigListKey = "scoring_config:list"

type cachedScoringConfig struct {
	value  scoringconfig.Config
	exists bool
}

// ScoringConfigRepository caches the config catalog, which every projection
// query reads and only admin writes change.
type ScoringConfigRepository struct {
	next   scoringconfig.Repository
	list   *basecache.Store[[]scoringconfig.Config]
	byName *basecache.Store[cachedScoringConfig]
}

func NewScoringConfigRepository(next scoringconfig.Repository, ttl time.Duration) *ScoringConfigRepository {
	return &ScoringConfigRepository{
		next:   next,
		list:   basecache.NewStore[[]scoringconfig.Config](ttl),
		byName: basecache.NewStore[cachedScoringConfig](ttl),
	}
}

func (r *ScoringConfigRepository) GetByName(ctx context.Context, name string) (scoringconfig.Config, bool, error) {
	cached, err := r.byName.GetOrLoad(ctx, scoringConfigKey(name), func(ctx context.Context) (cachedScoringConfig, error) {
		item, exists, err := r.next.GetByName(ctx, name)
		if err != nil {
			return cachedScoringConfig{}, err
		}
		return cachedScoringConfig{value: item, exists: exists}, nil
	})
	if err != nil {
		return scoringconfig.Config{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *ScoringConfigRepository) List(ctx context.Context) ([]scoringconfig.Config, error) {
	items, err := r.list.GetOrLoad(ctx, scoringConfigListKey, func(ctx context.Context) ([]scoringconfig.Config, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]scoringconfig.Config(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]scoringconfig.Config(nil), items...), nil
}

// Upsert drops every cached entry since a new default flips the flag on
// other configs too.
func (r *ScoringConfigRepository) Upsert(ctx context.Context, cfg scoringconfig.Config) (scoringconfig.Config, error) {
	stored, err := r.next.Upsert(ctx, cfg)
	if err != nil {
		return scoringconfig.Config{}, err
	}
	r.list.Purge(ctx)
	r.byName.Purge(ctx)
	return stored, nil
}

func scoringConfigKey(name string) string {
	return "scoring_config:name:" + strings.ToLower(strings.TrimSpace(name))
}
