package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("p.id", "p.name").
		From("players p").
		Join("projections pr", "pr.player_id = p.id").
		Where(Eq("pr.season", 2024), Eq("pr.week", 3)).
		OrderBy("p.name").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT p.id, p.name FROM players p JOIN projections pr ON pr.player_id = p.id WHERE pr.season = $1 AND pr.week = $2 ORDER BY p.name LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 2024 || args[1] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderExprAndSuffix(t *testing.T) {
	query, args, err := Select("id", "team").
		From("players").
		Where(Expr("name_key = ? AND position = ?", "josh allen", "QB"), Eq("status", "active")).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, team FROM players WHERE name_key = $1 AND position = $2 AND status = $3 FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "josh allen" || args[1] != "QB" || args[2] != "active" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderGroupBy(t *testing.T) {
	query, args, err := Select("season", "week", "source", "COUNT(1) AS row_count").
		From("projections").
		GroupBy("season", "week", "source").
		OrderBy("season DESC", "week").
		Limit(0).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT season, week, source, COUNT(1) AS row_count FROM projections GROUP BY season, week, source ORDER BY season DESC, week"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderRequiresTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("players").
		Columns("name", "position").
		Values("Josh Allen", "QB").
		Suffix("ON CONFLICT (name_key, position) DO NOTHING RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO players (name, position) VALUES ($1, $2) ON CONFLICT (name_key, position) DO NOTHING RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Josh Allen" || args[1] != "QB" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderValueCountMismatch(t *testing.T) {
	if _, _, err := InsertInto("players").Columns("name", "position").Values("Josh Allen").ToSQL(); err == nil {
		t.Fatalf("expected error for value count mismatch")
	}
}

func TestInsertModelSkipsReadonly(t *testing.T) {
	type row struct {
		ID       string `db:"id,readonly"`
		Name     string `db:"name"`
		Position string `db:"position"`
		internal string
	}

	query, args, err := InsertModel("players", &row{ID: "ignored", Name: "Josh Allen", Position: "QB"}, "RETURNING id")
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}

	wantQuery := "INSERT INTO players (name, position) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Josh Allen" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModelFlattensEmbeddedColumns(t *testing.T) {
	type statColumns struct {
		RushYds float64 `db:"rush_yds"`
		RushTDs float64 `db:"rush_tds"`
	}
	type row struct {
		PlayerID string `db:"player_id"`
		statColumns
	}

	query, args, err := InsertModel("projections", row{PlayerID: "p1", statColumns: statColumns{RushYds: 88, RushTDs: 1}}, "")
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}

	wantQuery := "INSERT INTO projections (player_id, rush_yds, rush_tds) VALUES ($1, $2, $3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[1] != float64(88) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilderExprArgs(t *testing.T) {
	query, args, err := Update("scoring_configs").
		Set("is_default", false).
		Where(Eq("is_default", true), Expr("LOWER(name) <> LOWER(?)", "PPR")).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE scoring_configs SET is_default = $1 WHERE is_default = $2 AND LOWER(name) <> LOWER($3) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != "PPR" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("players").
		Set("team", "KC").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "p1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE players SET team = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "KC" || args[1] != "p1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
