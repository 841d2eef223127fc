package league

import (
	"context"
	"time"
)

// Repository persists leagues and invitations. Reads outside a transaction
// are plain snapshots; every read-check-write sequence goes through WithinTx.
type Repository interface {
	Create(ctx context.Context, league League) (League, error)
	ListPublic(ctx context.Context) ([]League, error)
	ListByParticipant(ctx context.Context, userID int64) ([]League, error)
	ListPendingInvitationsByInvitee(ctx context.Context, inviteeID int64) ([]Invitation, error)

	// WithinTx runs fn in one transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx is the transactional view of the store. Getters ending in ForUpdate
// hold the row until the transaction ends. Lock the league row before the
// invitation row.
type Tx interface {
	GetForUpdate(ctx context.Context, leagueID int64) (League, bool, error)
	Update(ctx context.Context, league League) (League, error)
	Delete(ctx context.Context, leagueID int64) error

	GetInvitation(ctx context.Context, invitationID int64) (Invitation, bool, error)
	GetInvitationForUpdate(ctx context.Context, invitationID int64) (Invitation, bool, error)
	HasInvitation(ctx context.Context, leagueID, inviteeID int64, status InvitationStatus) (bool, error)
	CreateInvitation(ctx context.Context, invitation Invitation) (Invitation, error)
	UpdateInvitationStatus(ctx context.Context, invitationID int64, status InvitationStatus, updatedAt time.Time) (Invitation, error)
	InvalidateAcceptedInvitations(ctx context.Context, leagueID, inviteeID int64, updatedAt time.Time) error
	DeleteInvitationsByLeague(ctx context.Context, leagueID int64) error
}
