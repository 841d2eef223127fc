package league

import (
	"slices"
	"time"
)

// League is a user-created competition and the aggregate root for membership.
type League struct {
	ID           int64
	Name         string
	AdminID      int64
	MaxTeams     int
	IsPublic     bool
	DraftTime    time.Time
	ScoringType  string
	Participants []int64
	DraftOrder   []int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewLeague is the creator supplied part of a league.
type NewLeague struct {
	Name        string
	MaxTeams    int
	IsPublic    bool
	DraftTime   time.Time
	ScoringType string
}

// Settings carries the admin editable fields plus the desired participant set.
type Settings struct {
	Name         string
	MaxTeams     int
	IsPublic     bool
	DraftTime    time.Time
	ScoringType  string
	Participants []int64
}

type InvitationStatus string

const (
	InvitationPending     InvitationStatus = "pending"
	InvitationAccepted    InvitationStatus = "accepted"
	InvitationDeclined    InvitationStatus = "declined"
	InvitationInvalidated InvitationStatus = "invalidated"
)

func (s InvitationStatus) Valid() bool {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationDeclined, InvitationInvalidated:
		return true
	default:
		return false
	}
}

// Invitation grants one user entry into one private league.
type Invitation struct {
	ID        int64
	LeagueID  int64
	InviteeID int64
	InviterID int64
	Status    InvitationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l League) HasParticipant(userID int64) bool {
	return slices.Contains(l.Participants, userID)
}

func (l League) IsFull() bool {
	return len(l.Participants) >= l.MaxTeams
}

// DraftStarted reports whether the draft time has been reached at now.
func (l League) DraftStarted(now time.Time) bool {
	return !now.Before(l.DraftTime)
}

// Clone returns a copy that shares no slices with l.
func (l League) Clone() League {
	out := l
	out.Participants = slices.Clone(l.Participants)
	out.DraftOrder = slices.Clone(l.DraftOrder)
	return out
}
