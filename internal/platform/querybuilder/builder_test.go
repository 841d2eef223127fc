package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("leagues").
		Where(Eq("is_public", true), Any("participants", int64(7))).
		OrderBy("created_at DESC", "id DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM leagues WHERE is_public = $1 AND $2 = ANY(participants) ORDER BY created_at DESC, id DESC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != true || args[1] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderForUpdate(t *testing.T) {
	query, args, err := Select("id").From("leagues").Where(Eq("id", int64(3))).ForUpdate().ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM leagues WHERE id = $1 FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderRequiresColumnsAndTable(t *testing.T) {
	if _, _, err := Select().From("leagues").ToSQL(); err == nil {
		t.Fatalf("expected error without columns")
	}
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("league_invitations").
		Columns("league_id", "invitee_id").
		Values(int64(1), int64(5)).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO league_invitations (league_id, invitee_id) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(1) || args[1] != int64(5) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Name      string    `db:"name"`
		MaxTeams  int       `db:"max_teams"`
		Ignored   string    `db:"-"`
		CreatedAt time.Time `db:"created_at"`
		internal  string
	}

	query, args, err := InsertModel("leagues", row{Name: "cup", MaxTeams: 8, internal: "x"}, "RETURNING id")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO leagues (name, max_teams, created_at) VALUES ($1, $2, $3) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "cup" || args[1] != 8 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("league_invitations").
		Set("status", "invalidated").
		SetExpr("updated_at", "GREATEST(updated_at, ?)", "2026-01-01").
		Where(Eq("league_id", int64(1)), Eq("status", "accepted")).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE league_invitations SET status = $1, updated_at = GREATEST(updated_at, $2) WHERE league_id = $3 AND status = $4 RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "invalidated" || args[3] != "accepted" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("leagues").Where(Eq("id", int64(9))).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM leagues WHERE id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != int64(9) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("leagues").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}
