package memory

import (
	"github.com/riskibarqy/fantasy-projections/internal/domain/scoringconfig"
	"github.com/riskibarqy/fantasy-projections/internal/platform/id"
)

// Repositories bundles the in-memory stores used when STORAGE_DRIVER=memory.
type Repositories struct {
	Players        *PlayerRepository
	Projections    *ProjectionRepository
	ScoringConfigs *ScoringConfigRepository
	JobExecutions  *JobExecutionRepository
}

// NewRepositories returns empty stores with the scoring presets seeded.
func NewRepositories(ids id.Generator) Repositories {
	players := NewPlayerRepository(ids)
	return Repositories{
		Players:        players,
		Projections:    NewProjectionRepository(players, ids),
		ScoringConfigs: NewScoringConfigRepository(ids, SeedScoringConfigs()),
		JobExecutions:  NewJobExecutionRepository(ids),
	}
}

func SeedScoringConfigs() []scoringconfig.Config {
	return scoringconfig.Presets()
}
