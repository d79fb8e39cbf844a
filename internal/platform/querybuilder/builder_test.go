package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "home_team").
		From("games").
		Where(Eq("season", 2025), Lte("week", 3), IsNull("winner_team")).
		OrderBy("start_time ASC", "id ASC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, home_team FROM games WHERE season = $1 AND week <= $2 AND winner_team IS NULL ORDER BY start_time ASC, id ASC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 2025 || args[1] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderGroupByAndIn(t *testing.T) {
	query, args, err := Select("week", "MIN(start_time) AS first_kickoff").
		From("games").
		Where(Eq("season", 2025), In("week", []int{1, 2})).
		GroupBy("week").
		OrderBy("week").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT week, MIN(start_time) AS first_kickoff FROM games WHERE season = $1 AND week IN ($2, $3) GROUP BY week ORDER BY week"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInEmptyMatchesNothing(t *testing.T) {
	query, args, err := Select("*").From("picks").Where(In("game_id", []int64{})).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT * FROM picks WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertBuilderWithConflictSuffix(t *testing.T) {
	query, args, err := InsertInto("users").
		Columns("name").
		Values("Victor").
		Values("Mihir").
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO users (name) VALUES ($1), ($2) ON CONFLICT (name) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Victor" || args[1] != "Mihir" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type pickRow struct {
	UserID     int64     `db:"user_id"`
	GameID     int64     `db:"game_id"`
	PickedTeam string    `db:"picked_team"`
	CreatedAt  time.Time `db:"created_at,readonly"`
	internal   string
}

func TestInsertModelsSkipsReadonlyAndUnexported(t *testing.T) {
	rows := []any{
		pickRow{UserID: 1, GameID: 10, PickedTeam: "Chiefs", internal: "x"},
		&pickRow{UserID: 1, GameID: 11, PickedTeam: "Eagles"},
	}
	query, args, err := InsertModels("picks", rows, "RETURNING created_at")
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}

	wantQuery := "INSERT INTO picks (user_id, game_id, picked_team) VALUES ($1, $2, $3), ($4, $5, $6) RETURNING created_at"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[5] != "Eagles" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModelsRejectsEmptyAndNonStruct(t *testing.T) {
	if _, _, err := InsertModels("picks", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
	if _, _, err := InsertModel("picks", 42, ""); err == nil {
		t.Fatalf("expected error for non struct model")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("games").
		Set("status", "final").
		Set("winner_team", "Chiefs").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(1))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE games SET status = $1, winner_team = $2, updated_at = NOW() WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != int64(1) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("picks").
		Where(Eq("season", 2025), Eq("week", 1), Expr("user_id = ?", int64(7))).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM picks WHERE season = $1 AND week = $2 AND user_id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUnconditionalWritesAreRejected(t *testing.T) {
	if _, _, err := DeleteFrom("picks").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without where")
	}
	if _, _, err := Update("games").Set("status", "final").ToSQL(); err == nil {
		t.Fatalf("expected error for update without where")
	}
}
