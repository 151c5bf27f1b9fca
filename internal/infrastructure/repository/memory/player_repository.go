package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-projections/internal/domain/player"
	"github.com/riskibarqy/fantasy-projections/internal/platform/id"
)

type naturalKey struct {
	name     string
	position player.Position
}

type PlayerRepository struct {
	mu      sync.RWMutex
	byID    map[string]player.Player
	byKey   map[naturalKey]string
	ids     id.Generator
	nowFunc func() time.Time
}

func NewPlayerRepository(ids id.Generator) *PlayerRepository {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &PlayerRepository{
		byID:    make(map[string]player.Player),
		byKey:   make(map[naturalKey]string),
		ids:     ids,
		nowFunc: time.Now,
	}
}

func (r *PlayerRepository) UpsertByNaturalKey(_ context.Context, p player.Player) (player.Player, player.Outcome, error) {
	if err := p.Validate(); err != nil {
		return player.Player{}, "", err
	}

	key := naturalKey{name: p.NameKey(), position: p.Position}
	now := r.nowFunc().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existingID, ok := r.byKey[key]; ok {
		stored := r.byID[existingID]
		if !player.Changed(stored, p) {
			return stored, player.OutcomeUnchanged, nil
		}
		if player.TeamChanged(stored.Team, p.Team) {
			team := *p.Team
			stored.Team = &team
		}
		if player.StatusChanged(stored.Status, p.Status) {
			stored.Status = p.Status
		}
		stored.UpdatedAt = now
		r.byID[existingID] = stored
		return stored, player.OutcomeUpdated, nil
	}

	newID, err := r.ids.NewID()
	if err != nil {
		return player.Player{}, "", fmt.Errorf("generate player id: %w", err)
	}
	p.ID = newID
	if p.Status == "" {
		p.Status = player.StatusActive
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	r.byID[newID] = p
	r.byKey[key] = newID
	return p, player.OutcomeInserted, nil
}

func (r *PlayerRepository) GetByNaturalKey(_ context.Context, name string, position player.Position) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	playerID, ok := r.byKey[naturalKey{name: player.NormalizeName(name), position: position}]
	if !ok {
		return player.Player{}, false, nil
	}
	return r.byID[playerID], true, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) List(_ context.Context, filter player.ListFilter) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.byID))
	for _, p := range r.byID {
		if matchesPlayer(p, filter.Position, filter.Team) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NameKey() < out[j].NameKey() })
	return out, nil
}

func (r *PlayerRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func matchesPlayer(p player.Player, position player.Position, team string) bool {
	if position != "" && p.Position != position {
		return false
	}
	if team != "" && p.TeamCode() != team {
		return false
	}
	return true
}
