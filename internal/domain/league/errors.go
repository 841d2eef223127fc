package league

import (
	"errors"
	"slices"
)

var (
	ErrNotFound                  = errors.New("league not found")
	ErrNotAuthorized             = errors.New("not authorized")
	ErrAlreadyJoined             = errors.New("user already joined league")
	ErrLeagueFull                = errors.New("league is full")
	ErrNotInLeague               = errors.New("user is not in league")
	ErrLastMember                = errors.New("last member cannot leave league")
	ErrDraftAlreadyStarted       = errors.New("draft already started")
	ErrCannotAddParticipants     = errors.New("participants cannot be added through settings")
	ErrNoParticipantsLeft        = errors.New("league must keep at least one participant")
	ErrLeagueIsPublic            = errors.New("public league does not take invitations")
	ErrInvitationNotPending      = errors.New("invitation is not pending")
	ErrInvitationNotFound        = errors.New("invitation not found")
	ErrAlreadyInvited            = errors.New("user already has a pending invitation")
	ErrMaxTeamsBelowParticipants = errors.New("max teams is below participant count")

	// ErrStorage marks failures raised by a persistence adapter.
	ErrStorage = errors.New("league storage failure")
)

var businessErrors = []error{
	ErrNotFound,
	ErrNotAuthorized,
	ErrAlreadyJoined,
	ErrLeagueFull,
	ErrNotInLeague,
	ErrLastMember,
	ErrDraftAlreadyStarted,
	ErrCannotAddParticipants,
	ErrNoParticipantsLeft,
	ErrLeagueIsPublic,
	ErrInvitationNotPending,
	ErrInvitationNotFound,
	ErrAlreadyInvited,
	ErrMaxTeamsBelowParticipants,
}

// Kind returns the business error err carries, or nil for anything else.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	idx := slices.IndexFunc(businessErrors, func(target error) bool {
		return errors.Is(err, target)
	})
	if idx < 0 {
		return nil
	}
	return businessErrors[idx]
}
