package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-projections/internal/domain/projection"
	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
	"github.com/riskibarqy/fantasy-projections/internal/platform/id"
)

type projectionKey struct {
	playerID string
	season   int
	week     int
	source   source.Name
}

type ProjectionRepository struct {
	mu      sync.RWMutex
	rows    map[projectionKey]projection.Projection
	players *PlayerRepository
	ids     id.Generator
	nowFunc func() time.Time
}

// NewProjectionRepository joins against players for ListWithPlayers.
func NewProjectionRepository(players *PlayerRepository, ids id.Generator) *ProjectionRepository {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &ProjectionRepository{
		rows:    make(map[projectionKey]projection.Projection),
		players: players,
		ids:     ids,
		nowFunc: time.Now,
	}
}

func (r *ProjectionRepository) Upsert(_ context.Context, p projection.Projection) (projection.Projection, projection.Outcome, error) {
	if err := p.Validate(); err != nil {
		return projection.Projection{}, "", err
	}

	key := projectionKey{playerID: p.PlayerID, season: p.Season, week: p.Week, source: p.Source}
	now := r.nowFunc().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.rows[key]; ok {
		existing.Stats = p.Stats
		existing.UpdatedAt = now
		r.rows[key] = existing
		return existing, projection.OutcomeUpdated, nil
	}

	newID, err := r.ids.NewID()
	if err != nil {
		return projection.Projection{}, "", fmt.Errorf("generate projection id: %w", err)
	}
	p.ID = newID
	p.CreatedAt = now
	p.UpdatedAt = now
	r.rows[key] = p
	return p, projection.OutcomeInserted, nil
}

func (r *ProjectionRepository) ListWithPlayers(ctx context.Context, filter projection.ListFilter) ([]projection.WithPlayer, error) {
	r.mu.RLock()
	rows := make([]projection.Projection, 0, len(r.rows))
	for key, row := range r.rows {
		if filter.Season != 0 && key.season != filter.Season {
			continue
		}
		if filter.Week != 0 && key.week != filter.Week {
			continue
		}
		if filter.Source != "" && key.source != filter.Source {
			continue
		}
		rows = append(rows, row)
	}
	r.mu.RUnlock()

	out := make([]projection.WithPlayer, 0, len(rows))
	for _, row := range rows {
		p, ok, err := r.players.GetByID(ctx, row.PlayerID)
		if err != nil {
			return nil, err
		}
		if !ok || !matchesPlayer(p, filter.Position, filter.Team) {
			continue
		}
		out = append(out, projection.WithPlayer{Projection: row, Player: p})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Player.NameKey() != out[j].Player.NameKey() {
			return out[i].Player.NameKey() < out[j].Player.NameKey()
		}
		return out[i].Projection.Source < out[j].Projection.Source
	})
	return out, nil
}

func (r *ProjectionRepository) ListAvailability(_ context.Context) ([]projection.AvailabilityEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[projectionKey]int)
	for key := range r.rows {
		counts[projectionKey{season: key.season, week: key.week, source: key.source}]++
	}

	out := make([]projection.AvailabilityEntry, 0, len(counts))
	for key, count := range counts {
		out = append(out, projection.AvailabilityEntry{Season: key.season, Week: key.week, Source: key.source, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season > out[j].Season
		}
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		return out[i].Source < out[j].Source
	})
	return out, nil
}

func (r *ProjectionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}
