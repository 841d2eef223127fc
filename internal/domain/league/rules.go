package league

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// New builds a league whose only participant and admin is the creator.
func New(input NewLeague, creatorID int64, now time.Time) League {
	return League{
		Name:         strings.TrimSpace(input.Name),
		AdminID:      creatorID,
		MaxTeams:     input.MaxTeams,
		IsPublic:     input.IsPublic,
		DraftTime:    input.DraftTime.UTC(),
		ScoringType:  strings.TrimSpace(input.ScoringType),
		Participants: []int64{creatorID},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Join appends userID. invited reports whether the user holds an accepted
// invitation, which private leagues require.
func (l League) Join(userID int64, invited bool, now time.Time) (League, error) {
	if !l.IsPublic && !invited {
		return League{}, fmt.Errorf("%w: league=%d is private and user=%d has no accepted invitation", ErrNotAuthorized, l.ID, userID)
	}
	return l.admit(userID, now)
}

// AdmitInvitee appends the invitee of an accepted invitation.
func (l League) AdmitInvitee(userID int64, now time.Time) (League, error) {
	return l.admit(userID, now)
}

func (l League) admit(userID int64, now time.Time) (League, error) {
	if l.HasParticipant(userID) {
		return League{}, fmt.Errorf("%w: league=%d user=%d", ErrAlreadyJoined, l.ID, userID)
	}
	if l.IsFull() {
		return League{}, fmt.Errorf("%w: league=%d max_teams=%d", ErrLeagueFull, l.ID, l.MaxTeams)
	}

	out := l.Clone()
	out.Participants = append(out.Participants, userID)
	out.UpdatedAt = now
	return out, nil
}

// Leave removes userID and hands admin rights to the earliest remaining
// participant when the admin leaves.
func (l League) Leave(userID int64, now time.Time) (League, error) {
	if !l.HasParticipant(userID) {
		return League{}, fmt.Errorf("%w: league=%d user=%d", ErrNotInLeague, l.ID, userID)
	}
	if len(l.Participants) == 1 {
		return League{}, fmt.Errorf("%w: league=%d", ErrLastMember, l.ID)
	}
	if l.DraftStarted(now) {
		return League{}, fmt.Errorf("%w: league=%d draft_time=%s", ErrDraftAlreadyStarted, l.ID, l.DraftTime.Format(time.RFC3339))
	}

	out := l.Clone()
	out.Participants = slices.DeleteFunc(out.Participants, func(id int64) bool { return id == userID })
	if out.AdminID == userID {
		out.AdminID = out.Participants[0]
	}
	out.UpdatedAt = now
	return out, nil
}

// ApplySettings runs an admin settings update. When the requester drops
// itself from the participant set only the membership changes and the
// admin moves to the earliest remaining participant.
func (l League) ApplySettings(requesterID int64, settings Settings, now time.Time) (League, error) {
	if l.AdminID != requesterID {
		return League{}, fmt.Errorf("%w: user=%d is not admin of league=%d", ErrNotAuthorized, requesterID, l.ID)
	}
	if l.DraftStarted(now) {
		return League{}, fmt.Errorf("%w: league=%d draft_time=%s", ErrDraftAlreadyStarted, l.ID, l.DraftTime.Format(time.RFC3339))
	}

	wanted := make(map[int64]struct{}, len(settings.Participants))
	for _, id := range settings.Participants {
		if !l.HasParticipant(id) {
			return League{}, fmt.Errorf("%w: user=%d is not in league=%d", ErrCannotAddParticipants, id, l.ID)
		}
		wanted[id] = struct{}{}
	}
	if len(wanted) == 0 {
		return League{}, fmt.Errorf("%w: league=%d", ErrNoParticipantsLeft, l.ID)
	}

	out := l.Clone()
	out.Participants = slices.DeleteFunc(out.Participants, func(id int64) bool {
		_, keep := wanted[id]
		return !keep
	})
	out.UpdatedAt = now

	if _, stays := wanted[requesterID]; !stays {
		out.AdminID = out.Participants[0]
		return out, nil
	}

	if settings.MaxTeams < len(out.Participants) {
		return League{}, fmt.Errorf("%w: max_teams=%d participants=%d", ErrMaxTeamsBelowParticipants, settings.MaxTeams, len(out.Participants))
	}
	out.Name = strings.TrimSpace(settings.Name)
	out.MaxTeams = settings.MaxTeams
	out.IsPublic = settings.IsPublic
	out.DraftTime = settings.DraftTime.UTC()
	out.ScoringType = strings.TrimSpace(settings.ScoringType)
	return out, nil
}

// CheckDelete reports whether requesterID may delete the league at now.
func (l League) CheckDelete(requesterID int64, now time.Time) error {
	if l.AdminID != requesterID {
		return fmt.Errorf("%w: user=%d is not admin of league=%d", ErrNotAuthorized, requesterID, l.ID)
	}
	if l.DraftStarted(now) {
		return fmt.Errorf("%w: league=%d draft_time=%s", ErrDraftAlreadyStarted, l.ID, l.DraftTime.Format(time.RFC3339))
	}
	return nil
}

// Invite builds a pending invitation from the admin of a private league.
func (l League) Invite(inviterID, inviteeID int64, now time.Time) (Invitation, error) {
	if l.IsPublic {
		return Invitation{}, fmt.Errorf("%w: league=%d", ErrLeagueIsPublic, l.ID)
	}
	if l.AdminID != inviterID {
		return Invitation{}, fmt.Errorf("%w: user=%d is not admin of league=%d", ErrNotAuthorized, inviterID, l.ID)
	}
	if l.HasParticipant(inviteeID) {
		return Invitation{}, fmt.Errorf("%w: league=%d user=%d", ErrAlreadyJoined, l.ID, inviteeID)
	}

	return Invitation{
		LeagueID:  l.ID,
		InviteeID: inviteeID,
		InviterID: inviterID,
		Status:    InvitationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Accept moves a pending invitation addressed to userID to accepted.
// Invitations addressed to someone else are reported as not found.
func (i Invitation) Accept(userID int64, now time.Time) (Invitation, error) {
	if i.InviteeID != userID {
		return Invitation{}, fmt.Errorf("%w: invitation=%d user=%d", ErrInvitationNotFound, i.ID, userID)
	}
	return i.transition(InvitationAccepted, now)
}

// Decline moves a pending invitation addressed to userID to declined.
func (i Invitation) Decline(userID int64, now time.Time) (Invitation, error) {
	if i.InviteeID != userID {
		return Invitation{}, fmt.Errorf("%w: user=%d is not invitee of invitation=%d", ErrNotAuthorized, userID, i.ID)
	}
	return i.transition(InvitationDeclined, now)
}

func (i Invitation) transition(to InvitationStatus, now time.Time) (Invitation, error) {
	if i.Status != InvitationPending {
		return Invitation{}, fmt.Errorf("%w: invitation=%d status=%s", ErrInvitationNotPending, i.ID, i.Status)
	}
	i.Status = to
	i.UpdatedAt = now
	return i, nil
}
