package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("event_id", "minute").
		From("events").
		Where(
			In("match_id", []string{"m1", "m2"}),
			Eq("team_id", "t1"),
			Or(Eq("event_type", "pass"), Eq("event_type", "shot")),
		).
		OrderBy("minute", "second", "seq").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT event_id, minute FROM events WHERE match_id IN ($1, $2) AND team_id = $3 AND (event_type = $4 OR event_type = $5) ORDER BY minute, second, seq LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 5 || args[0] != "m1" || args[4] != "shot" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ExprAndEmptyIn(t *testing.T) {
	query, args, err := Select("*").
		From("matches").
		Where(
			Expr("(home_team_id = ? OR away_team_id = ?)", "t1", "t1"),
			In("match_id", []string{}),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM matches WHERE (home_team_id = $1 OR away_team_id = $2) AND 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		ID      string `db:"team_id"`
		Name    string `db:"team_name"`
		ignored string
		Skip    string `db:"-"`
	}

	query, args, err := InsertModels("teams", []row{{ID: "t1", Name: "Arsenal"}, {ID: "t2", Name: "Leeds"}}, "ON CONFLICT DO NOTHING")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (team_id, team_name) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "t2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("teams").Columns("a", "b").Values("x").ToSQL()
	if err == nil {
		t.Fatalf("expected row width error")
	}
}
