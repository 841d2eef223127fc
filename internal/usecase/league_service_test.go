package usecase

import (
	"errors"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sourcegraph/conc"

	"github.com/efantasy/league-service/internal/domain/league"
	"github.com/efantasy/league-service/internal/infrastructure/repository/memory"
)

var serviceNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func newTestLeagueService(t *testing.T) (*LeagueService, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(serviceNow)
	return NewLeagueService(memory.NewLeagueRepository(nil), clock, nil), clock
}

func createLeague(t *testing.T, svc *LeagueService, creatorID int64, maxTeams int, public bool) league.League {
	t.Helper()
	created, err := svc.Create(t.Context(), creatorID, league.NewLeague{
		Name:        "Friends",
		MaxTeams:    maxTeams,
		IsPublic:    public,
		DraftTime:   serviceNow.Add(48 * time.Hour),
		ScoringType: "standard",
	})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	return created
}

func TestLeagueService_CreateAndJoinUntilFull(t *testing.T) {
	svc, _ := newTestLeagueService(t)

	created := createLeague(t, svc, 1, 2, true)
	if created.ID == 0 || created.AdminID != 1 || !slices.Equal(created.Participants, []int64{1}) {
		t.Fatalf("unexpected created league: %+v", created)
	}

	joined, err := svc.Join(t.Context(), created.ID, 2)
	if err != nil {
		t.Fatalf("join user 2: %v", err)
	}
	if !slices.Equal(joined.Participants, []int64{1, 2}) {
		t.Fatalf("unexpected participants: %v", joined.Participants)
	}

	if _, err := svc.Join(t.Context(), created.ID, 3); !errors.Is(err, league.ErrLeagueFull) {
		t.Fatalf("expected ErrLeagueFull, got %v", err)
	}
	if _, err := svc.Join(t.Context(), created.ID, 2); !errors.Is(err, league.ErrAlreadyJoined) {
		t.Fatalf("expected ErrAlreadyJoined, got %v", err)
	}
	if _, err := svc.Join(t.Context(), 999, 2); !errors.Is(err, league.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeagueService_PrivateLeagueInvitationFlow(t *testing.T) {
	svc, _ := newTestLeagueService(t)
	private := createLeague(t, svc, 1, 4, false)

	invitation, err := svc.CreateInvitation(t.Context(), private.ID, 5, 1)
	if err != nil {
		t.Fatalf("create invitation: %v", err)
	}
	if invitation.Status != league.InvitationPending || invitation.ID == 0 {
		t.Fatalf("unexpected invitation: %+v", invitation)
	}

	if _, err := svc.CreateInvitation(t.Context(), private.ID, 5, 1); !errors.Is(err, league.ErrAlreadyInvited) {
		t.Fatalf("expected ErrAlreadyInvited, got %v", err)
	}

	if _, err := svc.Join(t.Context(), private.ID, 5); !errors.Is(err, league.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized before acceptance, got %v", err)
	}

	pending, err := svc.ListPendingInvitations(t.Context(), 5)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != invitation.ID {
		t.Fatalf("unexpected pending invitations: %+v", pending)
	}

	if _, err := svc.AcceptInvitation(t.Context(), invitation.ID, 6); !errors.Is(err, league.ErrInvitationNotFound) {
		t.Fatalf("expected ErrInvitationNotFound for other user, got %v", err)
	}

	accepted, err := svc.AcceptInvitation(t.Context(), invitation.ID, 5)
	if err != nil {
		t.Fatalf("accept invitation: %v", err)
	}
	if !slices.Equal(accepted.Participants, []int64{1, 5}) {
		t.Fatalf("unexpected participants after accept: %v", accepted.Participants)
	}

	if _, err := svc.Join(t.Context(), private.ID, 5); !errors.Is(err, league.ErrAlreadyJoined) {
		t.Fatalf("expected ErrAlreadyJoined after accept, got %v", err)
	}
	if _, err := svc.AcceptInvitation(t.Context(), invitation.ID, 5); !errors.Is(err, league.ErrInvitationNotPending) {
		t.Fatalf("expected ErrInvitationNotPending, got %v", err)
	}

	pending, err = svc.ListPendingInvitations(t.Context(), 5)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending invitations, got %d", len(pending))
	}

	mine, err := svc.ListUserLeagues(t.Context(), 5)
	if err != nil {
		t.Fatalf("list user leagues: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != private.ID {
		t.Fatalf("unexpected user leagues: %+v", mine)
	}
}

func TestLeagueService_LeaveInvalidatesInvitation(t *testing.T) {
	svc, _ := newTestLeagueService(t)
	private := createLeague(t, svc, 1, 4, false)

	invitation, err := svc.CreateInvitation(t.Context(), private.ID, 5, 1)
	if err != nil {
		t.Fatalf("create invitation: %v", err)
	}
	if _, err := svc.AcceptInvitation(t.Context(), invitation.ID, 5); err != nil {
		t.Fatalf("accept invitation: %v", err)
	}

	left, err := svc.Leave(t.Context(), private.ID, 5)
	if err != nil {
		t.Fatalf("leave: %v", err)
	}
	if left.HasParticipant(5) {
		t.Fatalf("user 5 still in league: %v", left.Participants)
	}

	if _, err := svc.Join(t.Context(), private.ID, 5); !errors.Is(err, league.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized once the invitation is invalidated, got %v", err)
	}

	if _, err := svc.CreateInvitation(t.Context(), private.ID, 5, 1); err != nil {
		t.Fatalf("re-invite after leave: %v", err)
	}
}

func TestLeagueService_LeaveReassignsAdmin(t *testing.T) {
	svc, _ := newTestLeagueService(t)
	created := createLeague(t, svc, 1, 4, true)
	for _, userID := range []int64{3, 2} {
		if _, err := svc.Join(t.Context(), created.ID, userID); err != nil {
			t.Fatalf("join %d: %v", userID, err)
		}
	}

	left, err := svc.Leave(t.Context(), created.ID, 1)
	if err != nil {
		t.Fatalf("leave: %v", err)
	}
	if left.AdminID != 3 {
		t.Fatalf("expected earliest remaining participant 3 as admin, got %d", left.AdminID)
	}

	if _, err := svc.Leave(t.Context(), created.ID, 1); !errors.Is(err, league.ErrNotInLeague) {
		t.Fatalf("expected ErrNotInLeague, got %v", err)
	}
}

func TestLeagueService_LastMemberCannotLeave(t *testing.T) {
	svc, _ := newTestLeagueService(t)
	created := createLeague(t, svc, 1, 4, true)

	if _, err := svc.Leave(t.Context(), created.ID, 1); !errors.Is(err, league.ErrLastMember) {
		t.Fatalf("expected ErrLastMember, got %v", err)
	}
}

func TestLeagueService_DraftStartedFreezesMembership(t *testing.T) {
	svc, clock := newTestLeagueService(t)
	created := createLeague(t, svc, 1, 4, true)
	if _, err := svc.Join(t.Context(), created.ID, 2); err != nil {
		t.Fatalf("join: %v", err)
	}

	clock.Advance(72 * time.Hour)

	if _, err := svc.Leave(t.Context(), created.ID, 2); !errors.Is(err, league.ErrDraftAlreadyStarted) {
		t.Fatalf("expected ErrDraftAlreadyStarted, got %v", err)
	}
	if err := svc.Delete(t.Context(), created.ID, 2); !errors.Is(err, league.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if err := svc.Delete(t.Context(), created.ID, 1); !errors.Is(err, league.ErrDraftAlreadyStarted) {
		t.Fatalf("expected ErrDraftAlreadyStarted, got %v", err)
	}
	if _, err := svc.UpdateSettings(t.Context(), created.ID, 1, league.Settings{Participants: []int64{1}}); !errors.Is(err, league.ErrDraftAlreadyStarted) {
		t.Fatalf("expected ErrDraftAlreadyStarted, got %v", err)
	}
}

func TestLeagueService_UpdateSettings(t *testing.T) {
	svc, _ := newTestLeagueService(t)
	created := createLeague(t, svc, 1, 4, true)
	for _, userID := range []int64{2, 3} {
		if _, err := svc.Join(t.Context(), created.ID, userID); err != nil {
			t.Fatalf("join %d: %v", userID, err)
		}
	}

	newDraft := serviceNow.Add(96 * time.Hour)
	updated, err := svc.UpdateSettings(t.Context(), created.ID, 1, league.Settings{
		Name:         "Renamed",
		MaxTeams:     6,
		IsPublic:     false,
		DraftTime:    newDraft,
		ScoringType:  "points",
		Participants: []int64{1, 2},
	})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if updated.Name != "Renamed" || updated.MaxTeams != 6 || updated.IsPublic || !updated.DraftTime.Equal(newDraft) {
		t.Fatalf("settings not applied: %+v", updated)
	}
	if !slices.Equal(updated.Participants, []int64{1, 2}) || updated.AdminID != 1 {
		t.Fatalf("unexpected membership: %v admin=%d", updated.Participants, updated.AdminID)
	}

	if _, err := svc.UpdateSettings(t.Context(), created.ID, 2, league.Settings{Participants: []int64{1}}); !errors.Is(err, league.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if _, err := svc.UpdateSettings(t.Context(), created.ID, 1, league.Settings{Participants: []int64{1, 3}}); !errors.Is(err, league.ErrCannotAddParticipants) {
		t.Fatalf("expected ErrCannotAddParticipants, got %v", err)
	}
	if _, err := svc.UpdateSettings(t.Context(), created.ID, 1, league.Settings{}); !errors.Is(err, league.ErrNoParticipantsLeft) {
		t.Fatalf("expected ErrNoParticipantsLeft, got %v", err)
	}

	exited, err := svc.UpdateSettings(t.Context(), created.ID, 1, league.Settings{
		Name:         "Smuggled",
		MaxTeams:     20,
		Participants: []int64{2},
	})
	if err != nil {
		t.Fatalf("self removal: %v", err)
	}
	if exited.AdminID != 2 || !slices.Equal(exited.Participants, []int64{2}) {
		t.Fatalf("unexpected membership after self removal: %v admin=%d", exited.Participants, exited.AdminID)
	}
	if exited.Name != "Renamed" || exited.MaxTeams != 6 {
		t.Fatalf("self removal must not change settings: %+v", exited)
	}
}

func TestLeagueService_DeleteRemovesLeagueAndInvitations(t *testing.T) {
	svc, _ := newTestLeagueService(t)
	private := createLeague(t, svc, 1, 4, false)
	if _, err := svc.CreateInvitation(t.Context(), private.ID, 5, 1); err != nil {
		t.Fatalf("create invitation: %v", err)
	}

	if err := svc.Delete(t.Context(), private.ID, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	pending, err := svc.ListPendingInvitations(t.Context(), 5)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected invitations removed with league, got %d", len(pending))
	}
	if _, err := svc.Join(t.Context(), private.ID, 5); !errors.Is(err, league.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(t.Context(), private.ID, 1); !errors.Is(err, league.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestLeagueService_InvitationPreconditions(t *testing.T) {
	svc, _ := newTestLeagueService(t)
	public := createLeague(t, svc, 1, 4, true)
	private := createLeague(t, svc, 1, 2, false)

	if _, err := svc.CreateInvitation(t.Context(), 999, 5, 1); !errors.Is(err, league.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.CreateInvitation(t.Context(), public.ID, 5, 1); !errors.Is(err, league.ErrLeagueIsPublic) {
		t.Fatalf("expected ErrLeagueIsPublic, got %v", err)
	}
	if _, err := svc.CreateInvitation(t.Context(), private.ID, 5, 2); !errors.Is(err, league.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if _, err := svc.CreateInvitation(t.Context(), private.ID, 1, 1); !errors.Is(err, league.ErrAlreadyJoined) {
		t.Fatalf("expected ErrAlreadyJoined, got %v", err)
	}

	first, err := svc.CreateInvitation(t.Context(), private.ID, 5, 1)
	if err != nil {
		t.Fatalf("invite 5: %v", err)
	}
	second, err := svc.CreateInvitation(t.Context(), private.ID, 6, 1)
	if err != nil {
		t.Fatalf("invite 6: %v", err)
	}
	if _, err := svc.AcceptInvitation(t.Context(), first.ID, 5); err != nil {
		t.Fatalf("accept first: %v", err)
	}
	if _, err := svc.AcceptInvitation(t.Context(), second.ID, 6); !errors.Is(err, league.ErrLeagueFull) {
		t.Fatalf("expected ErrLeagueFull on accept past capacity, got %v", err)
	}

	pending, err := svc.ListPendingInvitations(t.Context(), 6)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("rejected accept must leave the invitation pending, got %d", len(pending))
	}
}

func TestLeagueService_DeclineInvitation(t *testing.T) {
	svc, _ := newTestLeagueService(t)
	private := createLeague(t, svc, 1, 4, false)
	invitation, err := svc.CreateInvitation(t.Context(), private.ID, 5, 1)
	if err != nil {
		t.Fatalf("create invitation: %v", err)
	}

	if err := svc.DeclineInvitation(t.Context(), 999, 5); !errors.Is(err, league.ErrInvitationNotFound) {
		t.Fatalf("expected ErrInvitationNotFound, got %v", err)
	}
	if err := svc.DeclineInvitation(t.Context(), invitation.ID, 6); !errors.Is(err, league.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if err := svc.DeclineInvitation(t.Context(), invitation.ID, 5); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if err := svc.DeclineInvitation(t.Context(), invitation.ID, 5); !errors.Is(err, league.ErrInvitationNotPending) {
		t.Fatalf("expected ErrInvitationNotPending on second decline, got %v", err)
	}
	if _, err := svc.AcceptInvitation(t.Context(), invitation.ID, 5); !errors.Is(err, league.ErrInvitationNotPending) {
		t.Fatalf("expected ErrInvitationNotPending on accept after decline, got %v", err)
	}
}

func TestLeagueService_ListPublicNewestFirst(t *testing.T) {
	svc, clock := newTestLeagueService(t)
	older := createLeague(t, svc, 1, 4, true)
	clock.Advance(time.Minute)
	createLeague(t, svc, 1, 4, false)
	clock.Advance(time.Minute)
	newer := createLeague(t, svc, 2, 4, true)

	got, err := svc.ListPublic(t.Context())
	if err != nil {
		t.Fatalf("list public: %v", err)
	}
	if len(got) != 2 || got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Fatalf("unexpected public leagues: %+v", got)
	}
}

func TestLeagueService_RejectsNonPositiveIdentifiers(t *testing.T) {
	svc, _ := newTestLeagueService(t)

	if _, err := svc.Create(t.Context(), 0, league.NewLeague{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Join(t.Context(), -1, 2); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.ListUserLeagues(t.Context(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLeagueService_ConcurrentJoinsRespectCapacity(t *testing.T) {
	svc, _ := newTestLeagueService(t)
	created := createLeague(t, svc, 1, 3, true)

	var joined, full atomic.Int32
	var wg conc.WaitGroup
	for userID := int64(2); userID < 22; userID++ {
		wg.Go(func() {
			_, err := svc.Join(t.Context(), created.ID, userID)
			switch {
			case err == nil:
				joined.Add(1)
			case errors.Is(err, league.ErrLeagueFull):
				full.Add(1)
			default:
				t.Errorf("unexpected join error for user %d: %v", userID, err)
			}
		})
	}
	wg.Wait()

	if joined.Load() != 2 || full.Load() != 18 {
		t.Fatalf("expected 2 joins and 18 full rejections, got joined=%d full=%d", joined.Load(), full.Load())
	}

	mine, err := svc.ListUserLeagues(t.Context(), 1)
	if err != nil {
		t.Fatalf("list user leagues: %v", err)
	}
	if len(mine) != 1 || len(mine[0].Participants) != 3 {
		t.Fatalf("unexpected final league: %+v", mine)
	}
}
