package postgres

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/efantasy/league-service/internal/domain/league"
)

const testDBURLEnv = "LEAGUE_TEST_DB_URL"

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dbURL := strings.TrimSpace(os.Getenv(testDBURLEnv))
	if dbURL == "" {
		t.Skipf("%s is not set", testDBURLEnv)
	}

	dir, err := filepath.Abs(filepath.Join("..", "..", "..", "..", "db", "migrations"))
	if err != nil {
		t.Fatalf("resolve migrations dir: %v", err)
	}
	m, err := migrate.New("file://"+filepath.ToSlash(dir), dbURL)
	if err != nil {
		t.Fatalf("create migrator: %v", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("apply migrations: %v", err)
	}
	_, _ = m.Close()

	db, err := sqlx.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec("TRUNCATE league_invitations, leagues RESTART IDENTITY"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	return db
}

func TestLeagueRepository_Integration(t *testing.T) {
	db := openTestDB(t)
	repo := NewLeagueRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, league.League{
		Name:         "Sunday Cup",
		AdminID:      1,
		MaxTeams:     4,
		IsPublic:     false,
		DraftTime:    now.Add(48 * time.Hour),
		ScoringType:  "standard",
		Participants: []int64{1},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	if created.ID == 0 || len(created.Participants) != 1 {
		t.Fatalf("unexpected created league: %+v", created)
	}

	t.Run("update participants and list by participant", func(t *testing.T) {
		err := repo.WithinTx(ctx, func(ctx context.Context, tx league.Tx) error {
			current, found, err := tx.GetForUpdate(ctx, created.ID)
			if err != nil || !found {
				t.Fatalf("lock league: found=%v err=%v", found, err)
			}
			current.Participants = append(current.Participants, 2)
			current.UpdatedAt = now.Add(time.Minute)
			_, err = tx.Update(ctx, current)
			return err
		})
		if err != nil {
			t.Fatalf("update league: %v", err)
		}

		mine, err := repo.ListByParticipant(ctx, 2)
		if err != nil {
			t.Fatalf("list by participant: %v", err)
		}
		if len(mine) != 1 || mine[0].ID != created.ID {
			t.Fatalf("unexpected leagues for participant 2: %+v", mine)
		}
	})

	t.Run("rollback discards writes", func(t *testing.T) {
		boom := errors.New("boom")
		err := repo.WithinTx(ctx, func(ctx context.Context, tx league.Tx) error {
			if err := tx.Delete(ctx, created.ID); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected callback error, got %v", err)
		}

		err = repo.WithinTx(ctx, func(ctx context.Context, tx league.Tx) error {
			_, found, err := tx.GetForUpdate(ctx, created.ID)
			if err != nil {
				return err
			}
			if !found {
				t.Fatalf("league should survive rolled back delete")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("reload league: %v", err)
		}
	})

	t.Run("pending invitation is unique per league and invitee", func(t *testing.T) {
		invite := league.Invitation{
			LeagueID:  created.ID,
			InviteeID: 5,
			InviterID: 1,
			Status:    league.InvitationPending,
			CreatedAt: now,
			UpdatedAt: now,
		}

		var first league.Invitation
		err := repo.WithinTx(ctx, func(ctx context.Context, tx league.Tx) error {
			var err error
			first, err = tx.CreateInvitation(ctx, invite)
			return err
		})
		if err != nil {
			t.Fatalf("create invitation: %v", err)
		}

		err = repo.WithinTx(ctx, func(ctx context.Context, tx league.Tx) error {
			_, err := tx.CreateInvitation(ctx, invite)
			return err
		})
		if !errors.Is(err, league.ErrAlreadyInvited) {
			t.Fatalf("expected ErrAlreadyInvited, got %v", err)
		}

		pending, err := repo.ListPendingInvitationsByInvitee(ctx, 5)
		if err != nil {
			t.Fatalf("list pending: %v", err)
		}
		if len(pending) != 1 || pending[0].ID != first.ID {
			t.Fatalf("unexpected pending invitations: %+v", pending)
		}

		err = repo.WithinTx(ctx, func(ctx context.Context, tx league.Tx) error {
			if _, err := tx.UpdateInvitationStatus(ctx, first.ID, league.InvitationAccepted, now.Add(time.Hour)); err != nil {
				return err
			}
			accepted, err := tx.HasInvitation(ctx, created.ID, 5, league.InvitationAccepted)
			if err != nil {
				return err
			}
			if !accepted {
				t.Fatalf("expected accepted invitation")
			}
			return tx.InvalidateAcceptedInvitations(ctx, created.ID, 5, now.Add(2*time.Hour))
		})
		if err != nil {
			t.Fatalf("accept and invalidate: %v", err)
		}

		err = repo.WithinTx(ctx, func(ctx context.Context, tx league.Tx) error {
			got, found, err := tx.GetInvitation(ctx, first.ID)
			if err != nil || !found {
				t.Fatalf("get invitation: found=%v err=%v", found, err)
			}
			if got.Status != league.InvitationInvalidated {
				t.Fatalf("expected invalidated, got %s", got.Status)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("reload invitation: %v", err)
		}
	})

	t.Run("delete removes league and invitations", func(t *testing.T) {
		err := repo.WithinTx(ctx, func(ctx context.Context, tx league.Tx) error {
			if err := tx.DeleteInvitationsByLeague(ctx, created.ID); err != nil {
				return err
			}
			return tx.Delete(ctx, created.ID)
		})
		if err != nil {
			t.Fatalf("delete league: %v", err)
		}

		mine, err := repo.ListByParticipant(ctx, 1)
		if err != nil {
			t.Fatalf("list by participant: %v", err)
		}
		if len(mine) != 0 {
			t.Fatalf("expected no leagues, got %+v", mine)
		}
	})
}
