package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fantasy-projections/internal/domain/player"
	"github.com/riskibarqy/fantasy-projections/internal/domain/projection"
	"github.com/riskibarqy/fantasy-projections/internal/domain/scoringconfig"
	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
	"github.com/riskibarqy/fantasy-projections/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-projections/internal/platform/logging"
)

func d(v string) *decimal.Decimal {
	out := decimal.RequireFromString(v)
	return &out
}

func strPtr(v string) *string { return &v }

type seedRow struct {
	name   string
	pos    player.Position
	team   string
	season int
	week   int
	source source.Name
	stats  projection.Stats
}

func newQueryFixture(t *testing.T, rows []seedRow) (*ProjectionQueryService, memory.Repositories) {
	t.Helper()

	ctx := context.Background()
	repos := memory.NewRepositories(nil)
	for _, row := range rows {
		p, _, err := repos.Players.UpsertByNaturalKey(ctx, player.Player{
			Name:     row.name,
			Position: row.pos,
			Team:     strPtr(row.team),
			Status:   player.StatusActive,
		})
		require.NoError(t, err)
		_, _, err = repos.Projections.Upsert(ctx, projection.Projection{
			PlayerID: p.ID,
			Season:   row.season,
			Week:     row.week,
			Source:   row.source,
			Stats:    row.stats,
		})
		require.NoError(t, err)
	}

	configs := NewScoringConfigService(repos.ScoringConfigs, logging.NewNop())
	return NewProjectionQueryService(repos.Projections, configs, 18), repos
}

func week1Rows() []seedRow {
	return []seedRow{
		{name: "Josh Allen", pos: player.PositionQB, team: "BUF", season: 2023, week: 1, source: source.NameNFLVerse, stats: projection.Stats{
			PassYds: d("300"), PassTDs: d("2"), PassInts: d("1"), RushYds: d("40"), RushTDs: d("1"),
		}},
		{name: "Mike Evans", pos: player.PositionWR, team: "TB", season: 2023, week: 1, source: source.NameNFLVerse, stats: projection.Stats{
			Receptions: d("6"), RecYds: d("90"), RecTDs: d("1"),
		}},
		{name: "Christian McCaffrey", pos: player.PositionRB, team: "SF", season: 2023, week: 1, source: source.NameNFLVerse, stats: projection.Stats{
			RushYds: d("100"), RushTDs: d("1"), Receptions: d("4"), RecYds: d("30"), Fumbles: d("1"),
		}},
		{name: "Travis Kelce", pos: player.PositionTE, team: "KC", season: 2023, week: 1, source: source.NameNFLVerse, stats: projection.Stats{
			Receptions: d("7"), RecYds: d("70"),
		}},
	}
}

func names(items []ScoredProjection) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Player.Name)
	}
	return out
}

func TestProjectionQueryService_DefaultsToPPR(t *testing.T) {
	t.Parallel()

	svc, _ := newQueryFixture(t, week1Rows())
	page, err := svc.GetScoredProjections(context.Background(), ProjectionQuery{Season: 2023, Week: 1})
	require.NoError(t, err)

	assert.Equal(t, scoringconfig.NamePPR, page.ScoringConfig)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, []string{"Josh Allen", "Christian McCaffrey", "Mike Evans", "Travis Kelce"}, names(page.Items))
	assert.Equal(t, "28.00", page.Items[0].Points.StringFixedBank(2))
	assert.Equal(t, "21.00", page.Items[2].Breakdown.Receiving.StringFixedBank(2))
}

func TestProjectionQueryService_ScoringChangesRanking(t *testing.T) {
	t.Parallel()

	svc, _ := newQueryFixture(t, week1Rows())
	page, err := svc.GetScoredProjections(context.Background(), ProjectionQuery{Season: 2023, Week: 1, Scoring: "standard"})
	require.NoError(t, err)

	assert.Equal(t, scoringconfig.NameStandard, page.ScoringConfig)
	assert.Equal(t, []string{"Josh Allen", "Christian McCaffrey", "Mike Evans", "Travis Kelce"}, names(page.Items))
	assert.Equal(t, "17.00", page.Items[1].Points.StringFixedBank(2))
	assert.Equal(t, "15.00", page.Items[2].Points.StringFixedBank(2))

	half, err := svc.GetScoredProjections(context.Background(), ProjectionQuery{Season: 2023, Week: 1, Scoring: "Half-PPR", Position: "wr"})
	require.NoError(t, err)
	require.Len(t, half.Items, 1)
	assert.Equal(t, "18.00", half.Items[0].Points.StringFixedBank(2))
}

func TestProjectionQueryService_FiltersAndPaging(t *testing.T) {
	t.Parallel()

	svc, _ := newQueryFixture(t, week1Rows())
	ctx := context.Background()

	byTeam, err := svc.GetScoredProjections(ctx, ProjectionQuery{Season: 2023, Week: 1, Team: "kc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Travis Kelce"}, names(byTeam.Items))

	floor := decimal.RequireFromString("21")
	above, err := svc.GetScoredProjections(ctx, ProjectionQuery{Season: 2023, Week: 1, MinPoints: &floor})
	require.NoError(t, err)
	assert.Equal(t, 3, above.Total)

	paged, err := svc.GetScoredProjections(ctx, ProjectionQuery{Season: 2023, Week: 1, Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, paged.Total)
	assert.Equal(t, []string{"Mike Evans", "Travis Kelce"}, names(paged.Items))

	past, err := svc.GetScoredProjections(ctx, ProjectionQuery{Season: 2023, Week: 1, Offset: 10})
	require.NoError(t, err)
	assert.NotNil(t, past.Items)
	assert.Empty(t, past.Items)

	byName, err := svc.GetScoredProjections(ctx, ProjectionQuery{Season: 2023, Week: 1, SortBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Christian McCaffrey", "Josh Allen", "Mike Evans", "Travis Kelce"}, names(byName.Items))

	other, err := svc.GetScoredProjections(ctx, ProjectionQuery{Season: 2023, Week: 2})
	require.NoError(t, err)
	assert.Zero(t, other.Total)
}

func TestProjectionQueryService_InvalidQueries(t *testing.T) {
	t.Parallel()

	svc, _ := newQueryFixture(t, week1Rows())
	cases := map[string]ProjectionQuery{
		"missing season": {Week: 1},
		"week zero":      {Season: 2023},
		"week too high":  {Season: 2023, Week: 19},
		"limit too high": {Season: 2023, Week: 1, Limit: 501},
		"negative page":  {Season: 2023, Week: 1, Offset: -1},
		"unknown sort":   {Season: 2023, Week: 1, SortBy: "targets"},
		"unknown order":  {Season: 2023, Week: 1, Order: "up"},
		"bad position":   {Season: 2023, Week: 1, Position: "LB"},
		"bad team":       {Season: 2023, Week: 1, Team: "XYZ"},
		"bad source":     {Season: 2023, Week: 1, Source: "espn"},
	}
	for name, q := range cases {
		if _, err := svc.GetScoredProjections(context.Background(), q); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}

	_, err := svc.GetScoredProjections(context.Background(), ProjectionQuery{Season: 2023, Week: 1, Scoring: "superflex"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectionQueryService_ZeroDivisorConfigFails(t *testing.T) {
	t.Parallel()

	svc, repos := newQueryFixture(t, week1Rows())
	broken, _ := scoringconfig.Preset(scoringconfig.NameStandard)
	broken.Name = "Broken"
	broken.IsDefault = false
	broken.RecYdsPerPoint = decimal.Zero
	_, err := repos.ScoringConfigs.Upsert(context.Background(), broken)
	require.NoError(t, err)

	_, err = svc.GetScoredProjections(context.Background(), ProjectionQuery{Season: 2023, Week: 1, Scoring: "broken"})
	assert.ErrorIs(t, err, scoringconfig.ErrInvalidScoringConfig)
}

func TestProjectionQueryService_TopByPosition(t *testing.T) {
	t.Parallel()

	svc, _ := newQueryFixture(t, week1Rows())
	page, err := svc.TopByPosition(context.Background(), 2023, 1, "rb", "", 0)
	require.NoError(t, err)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, []string{"Christian McCaffrey"}, names(page.Items))

	_, err = svc.TopByPosition(context.Background(), 2023, 1, "", "", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProjectionQueryService_Availability(t *testing.T) {
	t.Parallel()

	rows := append(week1Rows(),
		seedRow{name: "Mike Evans", pos: player.PositionWR, team: "TB", season: 2023, week: 2, source: source.NameFFDP, stats: projection.Stats{Receptions: d("5")}},
		seedRow{name: "Mike Evans", pos: player.PositionWR, team: "TB", season: 2022, week: 1, source: source.NameNFLVerse, stats: projection.Stats{Receptions: d("4")}},
		seedRow{name: "Mike Evans", pos: player.PositionWR, team: "TB", season: 2022, week: 1, source: source.NameFFDP, stats: projection.Stats{Receptions: d("4")}},
	)
	svc, _ := newQueryFixture(t, rows)

	got, err := svc.Availability(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 2023, got[0].Season)
	assert.Equal(t, []WeekAvailability{
		{Week: 1, Sources: []string{"nflverse"}, Rows: 4},
		{Week: 2, Sources: []string{"ffdp"}, Rows: 1},
	}, got[0].Weeks)

	assert.Equal(t, 2022, got[1].Season)
	assert.Equal(t, []WeekAvailability{
		{Week: 1, Sources: []string{"ffdp", "nflverse"}, Rows: 2},
	}, got[1].Weeks)
}
