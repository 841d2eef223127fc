package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/efantasy/league-service/internal/domain/league"
)

// LeagueRepository keeps leagues and invitations in process. Transactions
// run one at a time against a copy of the state that replaces the live
// state only when the callback succeeds.
type LeagueRepository struct {
	mu    sync.RWMutex
	state leagueState
}

type leagueState struct {
	leagues          map[int64]league.League
	invitations      map[int64]league.Invitation
	nextLeagueID     int64
	nextInvitationID int64
}

func NewLeagueRepository(seed []league.League) *LeagueRepository {
	state := leagueState{
		leagues:     make(map[int64]league.League, len(seed)),
		invitations: make(map[int64]league.Invitation),
	}
	for _, item := range seed {
		if item.ID == 0 {
			item.ID = state.nextLeagueID + 1
		}
		state.leagues[item.ID] = item.Clone()
		state.nextLeagueID = max(state.nextLeagueID, item.ID)
	}
	return &LeagueRepository{state: state}
}

func (r *LeagueRepository) Create(_ context.Context, item league.League) (league.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.nextLeagueID++
	item.ID = r.state.nextLeagueID
	r.state.leagues[item.ID] = item.Clone()
	return item.Clone(), nil
}

func (r *LeagueRepository) ListPublic(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state.filterLeagues(func(item league.League) bool { return item.IsPublic }), nil
}

func (r *LeagueRepository) ListByParticipant(_ context.Context, userID int64) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state.filterLeagues(func(item league.League) bool { return item.HasParticipant(userID) }), nil
}

func (r *LeagueRepository) ListPendingInvitationsByInvitee(_ context.Context, inviteeID int64) ([]league.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.Invitation, 0)
	for _, item := range r.state.invitations {
		if item.InviteeID == inviteeID && item.Status == league.InvitationPending {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, func(a, b league.Invitation) int {
		return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})
	return out, nil
}

func (r *LeagueRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx league.Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	working := r.state.clone()
	if err := fn(ctx, &leagueTx{state: &working}); err != nil {
		return err
	}
	r.state = working
	return nil
}

func (s leagueState) clone() leagueState {
	out := s
	out.leagues = make(map[int64]league.League, len(s.leagues))
	for id, item := range s.leagues {
		out.leagues[id] = item.Clone()
	}
	out.invitations = maps.Clone(s.invitations)
	return out
}

func (s leagueState) filterLeagues(keep func(league.League) bool) []league.League {
	out := make([]league.League, 0)
	for _, item := range s.leagues {
		if keep(item) {
			out = append(out, item.Clone())
		}
	}
	slices.SortFunc(out, func(a, b league.League) int {
		return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})
	return out
}

func newestFirst(aTime time.Time, aID int64, bTime time.Time, bID int64) int {
	if c := bTime.Compare(aTime); c != 0 {
		return c
	}
	return cmp.Compare(bID, aID)
}

type leagueTx struct {
	state *leagueState
}

func (t *leagueTx) GetForUpdate(_ context.Context, leagueID int64) (league.League, bool, error) {
	item, ok := t.state.leagues[leagueID]
	if !ok {
		return league.League{}, false, nil
	}
	return item.Clone(), true, nil
}

func (t *leagueTx) Update(_ context.Context, item league.League) (league.League, error) {
	if _, ok := t.state.leagues[item.ID]; !ok {
		return league.League{}, league.ErrNotFound
	}
	t.state.leagues[item.ID] = item.Clone()
	return item.Clone(), nil
}

func (t *leagueTx) Delete(_ context.Context, leagueID int64) error {
	delete(t.state.leagues, leagueID)
	return nil
}

func (t *leagueTx) GetInvitation(_ context.Context, invitationID int64) (league.Invitation, bool, error) {
	item, ok := t.state.invitations[invitationID]
	return item, ok, nil
}

func (t *leagueTx) GetInvitationForUpdate(ctx context.Context, invitationID int64) (league.Invitation, bool, error) {
	return t.GetInvitation(ctx, invitationID)
}

func (t *leagueTx) HasInvitation(_ context.Context, leagueID, inviteeID int64, status league.InvitationStatus) (bool, error) {
	for _, item := range t.state.invitations {
		if item.LeagueID == leagueID && item.InviteeID == inviteeID && item.Status == status {
			return true, nil
		}
	}
	return false, nil
}

func (t *leagueTx) CreateInvitation(_ context.Context, item league.Invitation) (league.Invitation, error) {
	t.state.nextInvitationID++
	item.ID = t.state.nextInvitationID
	t.state.invitations[item.ID] = item
	return item, nil
}

func (t *leagueTx) UpdateInvitationStatus(_ context.Context, invitationID int64, status league.InvitationStatus, updatedAt time.Time) (league.Invitation, error) {
	item, ok := t.state.invitations[invitationID]
	if !ok {
		return league.Invitation{}, league.ErrInvitationNotFound
	}
	item.Status = status
	item.UpdatedAt = updatedAt
	t.state.invitations[invitationID] = item
	return item, nil
}

func (t *leagueTx) InvalidateAcceptedInvitations(_ context.Context, leagueID, inviteeID int64, updatedAt time.Time) error {
	for id, item := range t.state.invitations {
		if item.LeagueID == leagueID && item.InviteeID == inviteeID && item.Status == league.InvitationAccepted {
			item.Status = league.InvitationInvalidated
			item.UpdatedAt = updatedAt
			t.state.invitations[id] = item
		}
	}
	return nil
}

func (t *leagueTx) DeleteInvitationsByLeague(_ context.Context, leagueID int64) error {
	maps.DeleteFunc(t.state.invitations, func(_ int64, item league.Invitation) bool {
		return item.LeagueID == leagueID
	})
	return nil
}
