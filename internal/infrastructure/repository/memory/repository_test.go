package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fantasy-projections/internal/domain/jobexecution"
	"github.com/riskibarqy/fantasy-projections/internal/domain/player"
	"github.com/riskibarqy/fantasy-projections/internal/domain/projection"
	"github.com/riskibarqy/fantasy-projections/internal/domain/scoringconfig"
	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
)

func team(code string) *string { return &code }

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestPlayerRepository_UpsertByNaturalKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPlayerRepository(nil)

	first, outcome, err := repo.UpsertByNaturalKey(ctx, player.Player{Name: "Mike Evans", Position: player.PositionWR, Team: team("TB")})
	require.NoError(t, err)
	assert.Equal(t, player.OutcomeInserted, outcome)
	assert.NotEmpty(t, first.ID)

	again, outcome, err := repo.UpsertByNaturalKey(ctx, player.Player{Name: "mike evans ", Position: player.PositionWR, Team: team("TB")})
	require.NoError(t, err)
	assert.Equal(t, player.OutcomeUnchanged, outcome)
	assert.Equal(t, first.ID, again.ID)

	moved, outcome, err := repo.UpsertByNaturalKey(ctx, player.Player{Name: "MIKE EVANS", Position: player.PositionWR, Team: team("KC")})
	require.NoError(t, err)
	assert.Equal(t, player.OutcomeUpdated, outcome)
	assert.Equal(t, "KC", moved.TeamCode())

	_, outcome, err = repo.UpsertByNaturalKey(ctx, player.Player{Name: "Mike Evans", Position: player.PositionWR})
	require.NoError(t, err)
	assert.Equal(t, player.OutcomeUnchanged, outcome, "unset team keeps the stored team")

	_, outcome, err = repo.UpsertByNaturalKey(ctx, player.Player{Name: "Mike Evans", Position: player.PositionTE})
	require.NoError(t, err)
	assert.Equal(t, player.OutcomeInserted, outcome, "position is part of the key")
	assert.Equal(t, 2, repo.Count())

	got, ok, err := repo.GetByNaturalKey(ctx, " Mike  Evans", player.PositionWR)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.ID, got.ID)
}

func TestPlayerRepository_UpsertReconcilesStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPlayerRepository(nil)

	inserted, _, err := repo.UpsertByNaturalKey(ctx, player.Player{Name: "Tom Brady", Position: player.PositionQB, Team: team("TB")})
	require.NoError(t, err)
	assert.Equal(t, player.StatusActive, inserted.Status, "unset status defaults to active on insert")

	retired, outcome, err := repo.UpsertByNaturalKey(ctx, player.Player{Name: "Tom Brady", Position: player.PositionQB, Team: team("TB"), Status: player.StatusInactive})
	require.NoError(t, err)
	assert.Equal(t, player.OutcomeUpdated, outcome)
	assert.Equal(t, player.StatusInactive, retired.Status)
	assert.Equal(t, "TB", retired.TeamCode())

	kept, outcome, err := repo.UpsertByNaturalKey(ctx, player.Player{Name: "Tom Brady", Position: player.PositionQB, Team: team("TB")})
	require.NoError(t, err)
	assert.Equal(t, player.OutcomeUnchanged, outcome, "unset status keeps the stored status")
	assert.Equal(t, player.StatusInactive, kept.Status)
}

func TestProjectionRepository_UpsertReplacesStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	players := NewPlayerRepository(nil)
	repo := NewProjectionRepository(players, nil)

	p, _, err := players.UpsertByNaturalKey(ctx, player.Player{Name: "Josh Allen", Position: player.PositionQB, Team: team("BUF")})
	require.NoError(t, err)

	row := projection.Projection{
		PlayerID: p.ID, Season: 2023, Week: 1, Source: source.NameNFLVerse,
		Stats: projection.Stats{PassYds: dec("236"), RushYds: dec("26")},
	}
	_, outcome, err := repo.Upsert(ctx, row)
	require.NoError(t, err)
	assert.Equal(t, projection.OutcomeInserted, outcome)

	row.Stats = projection.Stats{PassYds: dec("240")}
	_, outcome, err = repo.Upsert(ctx, row)
	require.NoError(t, err)
	assert.Equal(t, projection.OutcomeUpdated, outcome)
	assert.Equal(t, 1, repo.Count())

	rows, err := repo.ListWithPlayers(ctx, projection.ListFilter{Season: 2023, Week: 1, Position: player.PositionQB, Team: "BUF"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "240", rows[0].Projection.Stats.PassYds.String())
	assert.Nil(t, rows[0].Projection.Stats.RushYds, "full replace drops stats missing from the new row")
	assert.Equal(t, "Josh Allen", rows[0].Player.Name)

	rows, err = repo.ListWithPlayers(ctx, projection.ListFilter{Season: 2023, Week: 1, Position: player.PositionRB})
	require.NoError(t, err)
	assert.Empty(t, rows)

	avail, err := repo.ListAvailability(ctx)
	require.NoError(t, err)
	assert.Equal(t, []projection.AvailabilityEntry{{Season: 2023, Week: 1, Source: source.NameNFLVerse, Count: 1}}, avail)
}

func TestScoringConfigRepository_SingleDefault(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewScoringConfigRepository(nil, SeedScoringConfigs())

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	custom, _ := scoringconfig.Preset(scoringconfig.NameStandard)
	custom.Name = "Dynasty"
	custom.IsDefault = true
	stored, err := repo.Upsert(ctx, custom)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)

	items, err = repo.List(ctx)
	require.NoError(t, err)
	defaults := 0
	for _, item := range items {
		if item.IsDefault {
			defaults++
			assert.Equal(t, "Dynasty", item.Name)
		}
	}
	assert.Equal(t, 1, defaults)

	ppr, ok, err := repo.GetByName(ctx, "ppr")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, scoringconfig.NamePPR, ppr.Name)
}

func TestJobExecutionRepository_ListNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewJobExecutionRepository(nil)
	for _, status := range []jobexecution.Status{jobexecution.StatusSuccess, jobexecution.StatusFailed, jobexecution.StatusSuccess} {
		_, err := repo.Append(ctx, jobexecution.Execution{JobID: jobexecution.JobWeeklyImport, Status: status})
		require.NoError(t, err)
	}

	items, err := repo.List(ctx, jobexecution.ListFilter{Status: jobexecution.StatusSuccess, Limit: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)

	all, err := repo.List(ctx, jobexecution.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, items[0].ID, all[0].ID)
	assert.Equal(t, jobexecution.StatusFailed, all[1].Status)

	got, ok, err := repo.GetByID(ctx, all[1].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, all[1].ID, got.ID)
}
