package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/efantasy/league-service/internal/domain/league"
	qb "github.com/efantasy/league-service/internal/platform/querybuilder"
)

const (
	leaguesTable     = "leagues"
	invitationsTable = "league_invitations"
)

var newestFirst = []string{"created_at DESC", "id DESC"}

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) (league.League, error) {
	query, args, err := qb.InsertModel(leaguesTable, leagueInsertFromDomain(item), returning(leagueColumns))
	if err != nil {
		return league.League{}, fmt.Errorf("build create league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return league.League{}, storageError(err, "create league")
	}
	return leagueFromRow(row), nil
}

func (r *LeagueRepository) ListPublic(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select(leagueColumns...).From(leaguesTable).
		Where(qb.Eq("is_public", true)).
		OrderBy(newestFirst...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list public leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storageError(err, "list public leagues")
	}
	return leaguesFromRows(rows), nil
}

func (r *LeagueRepository) ListByParticipant(ctx context.Context, userID int64) ([]league.League, error) {
	query, args, err := qb.Select(leagueColumns...).From(leaguesTable).
		Where(qb.Any("participants", userID)).
		OrderBy(newestFirst...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues by participant query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storageError(err, "list leagues by participant=%d", userID)
	}
	return leaguesFromRows(rows), nil
}

func (r *LeagueRepository) ListPendingInvitationsByInvitee(ctx context.Context, inviteeID int64) ([]league.Invitation, error) {
	query, args, err := qb.Select(invitationColumns...).From(invitationsTable).
		Where(
			qb.Eq("invitee_id", inviteeID),
			qb.Eq("status", string(league.InvitationPending)),
		).
		OrderBy(newestFirst...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pending invitations query: %w", err)
	}

	var rows []invitationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storageError(err, "list pending invitations invitee=%d", inviteeID)
	}

	out := make([]league.Invitation, 0, len(rows))
	for _, row := range rows {
		out = append(out, invitationFromRow(row))
	}
	return out, nil
}

// WithinTx runs fn at READ COMMITTED. Row locks taken through the Tx
// getters serialise concurrent writers on the same league.
func (r *LeagueRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx league.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return storageError(err, "begin league tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, &leagueTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageError(err, "commit league tx")
	}
	return nil
}

type leagueTx struct {
	tx *sqlx.Tx
}

func (t *leagueTx) GetForUpdate(ctx context.Context, leagueID int64) (league.League, bool, error) {
	query, args, err := qb.Select(leagueColumns...).From(leaguesTable).
		Where(qb.Eq("id", leagueID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build lock league query: %w", err)
	}

	var row leagueTableModel
	if err := t.tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, storageError(err, "lock league=%d", leagueID)
	}
	return leagueFromRow(row), true, nil
}

func (t *leagueTx) Update(ctx context.Context, item league.League) (league.League, error) {
	query, args, err := qb.Update(leaguesTable).
		Set("name", item.Name).
		Set("admin_id", item.AdminID).
		Set("max_teams", item.MaxTeams).
		Set("is_public", item.IsPublic).
		Set("draft_time", item.DraftTime.UTC()).
		Set("scoring_type", item.ScoringType).
		Set("participants", pq.Int64Array(item.Participants)).
		Set("draft_order", pq.Int64Array(item.DraftOrder)).
		Set("updated_at", item.UpdatedAt.UTC()).
		Where(qb.Eq("id", item.ID)).
		Suffix(returning(leagueColumns)).
		ToSQL()
	if err != nil {
		return league.League{}, fmt.Errorf("build update league query: %w", err)
	}

	var row leagueTableModel
	if err := t.tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, fmt.Errorf("%w: league=%d", league.ErrNotFound, item.ID)
		}
		return league.League{}, storageError(err, "update league=%d", item.ID)
	}
	return leagueFromRow(row), nil
}

func (t *leagueTx) Delete(ctx context.Context, leagueID int64) error {
	query, args, err := qb.DeleteFrom(leaguesTable).Where(qb.Eq("id", leagueID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete league query: %w", err)
	}
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return storageError(err, "delete league=%d", leagueID)
	}
	return nil
}

func (t *leagueTx) GetInvitation(ctx context.Context, invitationID int64) (league.Invitation, bool, error) {
	return t.getInvitation(ctx, invitationID, false)
}

func (t *leagueTx) GetInvitationForUpdate(ctx context.Context, invitationID int64) (league.Invitation, bool, error) {
	return t.getInvitation(ctx, invitationID, true)
}

func (t *leagueTx) getInvitation(ctx context.Context, invitationID int64, lock bool) (league.Invitation, bool, error) {
	builder := qb.Select(invitationColumns...).From(invitationsTable).Where(qb.Eq("id", invitationID))
	if lock {
		builder = builder.ForUpdate()
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return league.Invitation{}, false, fmt.Errorf("build get invitation query: %w", err)
	}

	var row invitationTableModel
	if err := t.tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Invitation{}, false, nil
		}
		return league.Invitation{}, false, storageError(err, "get invitation=%d", invitationID)
	}
	return invitationFromRow(row), true, nil
}

func (t *leagueTx) HasInvitation(ctx context.Context, leagueID, inviteeID int64, status league.InvitationStatus) (bool, error) {
	inner, args, err := qb.Select("1").From(invitationsTable).
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("invitee_id", inviteeID),
			qb.Eq("status", string(status)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build has invitation query: %w", err)
	}

	var exists bool
	if err := t.tx.GetContext(ctx, &exists, "SELECT EXISTS ("+inner+")", args...); err != nil {
		return false, storageError(err, "check invitation league=%d invitee=%d", leagueID, inviteeID)
	}
	return exists, nil
}

func (t *leagueTx) CreateInvitation(ctx context.Context, item league.Invitation) (league.Invitation, error) {
	query, args, err := qb.InsertModel(invitationsTable, invitationInsertFromDomain(item), returning(invitationColumns))
	if err != nil {
		return league.Invitation{}, fmt.Errorf("build create invitation query: %w", err)
	}

	var row invitationTableModel
	if err := t.tx.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err, pendingInvitationIndex) {
			return league.Invitation{}, fmt.Errorf("%w: league=%d user=%d", league.ErrAlreadyInvited, item.LeagueID, item.InviteeID)
		}
		return league.Invitation{}, storageError(err, "create invitation league=%d", item.LeagueID)
	}
	return invitationFromRow(row), nil
}

func (t *leagueTx) UpdateInvitationStatus(ctx context.Context, invitationID int64, status league.InvitationStatus, updatedAt time.Time) (league.Invitation, error) {
	query, args, err := qb.Update(invitationsTable).
		Set("status", string(status)).
		Set("updated_at", updatedAt.UTC()).
		Where(qb.Eq("id", invitationID)).
		Suffix(returning(invitationColumns)).
		ToSQL()
	if err != nil {
		return league.Invitation{}, fmt.Errorf("build update invitation status query: %w", err)
	}

	var row invitationTableModel
	if err := t.tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Invitation{}, fmt.Errorf("%w: invitation=%d", league.ErrInvitationNotFound, invitationID)
		}
		return league.Invitation{}, storageError(err, "update invitation=%d", invitationID)
	}
	return invitationFromRow(row), nil
}

func (t *leagueTx) InvalidateAcceptedInvitations(ctx context.Context, leagueID, inviteeID int64, updatedAt time.Time) error {
	query, args, err := qb.Update(invitationsTable).
		Set("status", string(league.InvitationInvalidated)).
		Set("updated_at", updatedAt.UTC()).
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("invitee_id", inviteeID),
			qb.Eq("status", string(league.InvitationAccepted)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build invalidate invitations query: %w", err)
	}
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return storageError(err, "invalidate invitations league=%d invitee=%d", leagueID, inviteeID)
	}
	return nil
}

func (t *leagueTx) DeleteInvitationsByLeague(ctx context.Context, leagueID int64) error {
	query, args, err := qb.DeleteFrom(invitationsTable).Where(qb.Eq("league_id", leagueID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete invitations query: %w", err)
	}
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return storageError(err, "delete invitations league=%d", leagueID)
	}
	return nil
}
