package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-projections/internal/domain/scoringconfig"
	"github.com/riskibarqy/fantasy-projections/internal/platform/id"
)

type ScoringConfigRepository struct {
	mu      sync.RWMutex
	byName  map[string]scoringconfig.Config
	ids     id.Generator
	nowFunc func() time.Time
}

func NewScoringConfigRepository(ids id.Generator, seed []scoringconfig.Config) *ScoringConfigRepository {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	r := &ScoringConfigRepository{
		byName:  make(map[string]scoringconfig.Config),
		ids:     ids,
		nowFunc: time.Now,
	}
	for _, cfg := range seed {
		_, _ = r.Upsert(context.Background(), cfg)
	}
	return r
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *ScoringConfigRepository) GetByName(_ context.Context, name string) (scoringconfig.Config, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.byName[nameKey(name)]
	return cfg, ok, nil
}

func (r *ScoringConfigRepository) List(_ context.Context) ([]scoringconfig.Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoringconfig.Config, 0, len(r.byName))
	for _, cfg := range r.byName {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Upsert keeps a single default: saving a default config clears the flag
// on every other config.
func (r *ScoringConfigRepository) Upsert(_ context.Context, cfg scoringconfig.Config) (scoringconfig.Config, error) {
	key := nameKey(cfg.Name)
	if key == "" {
		return scoringconfig.Config{}, fmt.Errorf("scoring config name is required")
	}
	now := r.nowFunc().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[key]; ok {
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
	} else {
		newID, err := r.ids.NewID()
		if err != nil {
			return scoringconfig.Config{}, fmt.Errorf("generate scoring config id: %w", err)
		}
		cfg.ID = newID
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	if cfg.IsDefault {
		for k, other := range r.byName {
			if other.IsDefault && k != key {
				other.IsDefault = false
				r.byName[k] = other
			}
		}
	}
	r.byName[key] = cfg
	return cfg, nil
}
