package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"

	"github.com/efantasy/league-service/internal/domain/league"
	"github.com/efantasy/league-service/internal/platform/logging"
)

// LeagueService runs league membership operations. Every read-check-write
// sequence executes inside one repository transaction.
type LeagueService struct {
	repo   league.Repository
	clock  clockwork.Clock
	logger *logging.Logger
}

func NewLeagueService(repo league.Repository, clock clockwork.Clock, logger *logging.Logger) *LeagueService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueService{
		repo:   repo,
		clock:  clock,
		logger: logger.Named("league"),
	}
}

func (s *LeagueService) now() time.Time {
	return s.clock.Now().UTC()
}

// begin opens the span and start log of one operation. The returned func
// closes both with the operation outcome.
func (s *LeagueService) begin(ctx context.Context, op string, args ...any) (context.Context, func(err error)) {
	attrs := make([]attribute.KeyValue, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, _ := args[i].(string)
		if id, ok := args[i+1].(int64); ok && key != "" {
			attrs = append(attrs, attribute.Int64(key, id))
		}
	}
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService."+op, attrs...)
	started := s.clock.Now()
	s.logger.DebugContext(ctx, "league operation started", append([]any{"op", op}, args...)...)

	return ctx, func(err error) {
		kind := league.Kind(err)
		fields := append([]any{"op", op, "duration", s.clock.Since(started)}, args...)
		switch {
		case err == nil:
			s.logger.InfoContext(ctx, "league operation succeeded", fields...)
		case kind != nil:
			s.logger.WarnContext(ctx, "league operation rejected", append(fields, "error_kind", kind.Error(), "error", err)...)
		default:
			s.logger.ErrorContext(ctx, "league operation failed", append(fields, "error", err)...)
		}
		endUsecaseSpan(span, err, kind)
	}
}

func (s *LeagueService) Create(ctx context.Context, creatorID int64, input league.NewLeague) (created league.League, err error) {
	ctx, end := s.begin(ctx, "Create", "creator_id", creatorID)
	defer func() { end(err) }()

	if creatorID <= 0 {
		return league.League{}, fmt.Errorf("%w: creator id must be positive", ErrInvalidInput)
	}

	created, err = s.repo.Create(ctx, league.New(input, creatorID, s.now()))
	if err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}
	return created, nil
}

func (s *LeagueService) ListPublic(ctx context.Context) (items []league.League, err error) {
	ctx, end := s.begin(ctx, "ListPublic")
	defer func() { end(err) }()

	items, err = s.repo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public leagues: %w", err)
	}
	return items, nil
}

func (s *LeagueService) ListUserLeagues(ctx context.Context, userID int64) (items []league.League, err error) {
	ctx, end := s.begin(ctx, "ListUserLeagues", "user_id", userID)
	defer func() { end(err) }()

	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}
	items, err = s.repo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user leagues: %w", err)
	}
	return items, nil
}

func (s *LeagueService) ListPendingInvitations(ctx context.Context, userID int64) (items []league.Invitation, err error) {
	ctx, end := s.begin(ctx, "ListPendingInvitations", "user_id", userID)
	defer func() { end(err) }()

	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}
	items, err = s.repo.ListPendingInvitationsByInvitee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list pending invitations: %w", err)
	}
	return items, nil
}

func (s *LeagueService) Join(ctx context.Context, leagueID, userID int64) (out league.League, err error) {
	ctx, end := s.begin(ctx, "Join", "league_id", leagueID, "user_id", userID)
	defer func() { end(err) }()

	if err := requirePositive(leagueID, userID); err != nil {
		return league.League{}, err
	}

	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx league.Tx) error {
		current, err := lockLeague(ctx, tx, leagueID)
		if err != nil {
			return err
		}

		invited := false
		if !current.IsPublic {
			invited, err = tx.HasInvitation(ctx, leagueID, userID, league.InvitationAccepted)
			if err != nil {
				return fmt.Errorf("check accepted invitation: %w", err)
			}
		}

		updated, err := current.Join(userID, invited, s.now())
		if err != nil {
			return err
		}
		out, err = tx.Update(ctx, updated)
		if err != nil {
			return fmt.Errorf("update league: %w", err)
		}
		return nil
	})
	if err != nil {
		return league.League{}, fmt.Errorf("join league: %w", err)
	}
	return out, nil
}

func (s *LeagueService) Leave(ctx context.Context, leagueID, userID int64) (out league.League, err error) {
	ctx, end := s.begin(ctx, "Leave", "league_id", leagueID, "user_id", userID)
	defer func() { end(err) }()

	if err := requirePositive(leagueID, userID); err != nil {
		return league.League{}, err
	}

	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx league.Tx) error {
		current, err := lockLeague(ctx, tx, leagueID)
		if err != nil {
			return err
		}

		now := s.now()
		updated, err := current.Leave(userID, now)
		if err != nil {
			return err
		}
		out, err = tx.Update(ctx, updated)
		if err != nil {
			return fmt.Errorf("update league: %w", err)
		}
		if err := tx.InvalidateAcceptedInvitations(ctx, leagueID, userID, now); err != nil {
			return fmt.Errorf("invalidate accepted invitations: %w", err)
		}
		return nil
	})
	if err != nil {
		return league.League{}, fmt.Errorf("leave league: %w", err)
	}
	return out, nil
}

func (s *LeagueService) UpdateSettings(ctx context.Context, leagueID, requesterID int64, settings league.Settings) (out league.League, err error) {
	ctx, end := s.begin(ctx, "UpdateSettings", "league_id", leagueID, "requester_id", requesterID)
	defer func() { end(err) }()

	if err := requirePositive(leagueID, requesterID); err != nil {
		return league.League{}, err
	}

	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx league.Tx) error {
		current, err := lockLeague(ctx, tx, leagueID)
		if err != nil {
			return err
		}

		updated, err := current.ApplySettings(requesterID, settings, s.now())
		if err != nil {
			return err
		}
		out, err = tx.Update(ctx, updated)
		if err != nil {
			return fmt.Errorf("update league: %w", err)
		}
		return nil
	})
	if err != nil {
		return league.League{}, fmt.Errorf("update league settings: %w", err)
	}
	return out, nil
}

// Delete removes the league together with every invitation that points at it.
func (s *LeagueService) Delete(ctx context.Context, leagueID, requesterID int64) (err error) {
	ctx, end := s.begin(ctx, "Delete", "league_id", leagueID, "requester_id", requesterID)
	defer func() { end(err) }()

	if err := requirePositive(leagueID, requesterID); err != nil {
		return err
	}

	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx league.Tx) error {
		current, err := lockLeague(ctx, tx, leagueID)
		if err != nil {
			return err
		}
		if err := current.CheckDelete(requesterID, s.now()); err != nil {
			return err
		}
		if err := tx.DeleteInvitationsByLeague(ctx, leagueID); err != nil {
			return fmt.Errorf("delete league invitations: %w", err)
		}
		if err := tx.Delete(ctx, leagueID); err != nil {
			return fmt.Errorf("delete league row: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete league: %w", err)
	}
	return nil
}

func (s *LeagueService) CreateInvitation(ctx context.Context, leagueID, inviteeID, inviterID int64) (out league.Invitation, err error) {
	ctx, end := s.begin(ctx, "CreateInvitation", "league_id", leagueID, "invitee_id", inviteeID, "inviter_id", inviterID)
	defer func() { end(err) }()

	if err := requirePositive(leagueID, inviteeID, inviterID); err != nil {
		return league.Invitation{}, err
	}

	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx league.Tx) error {
		current, err := lockLeague(ctx, tx, leagueID)
		if err != nil {
			return err
		}

		invitation, err := current.Invite(inviterID, inviteeID, s.now())
		if err != nil {
			return err
		}
		pending, err := tx.HasInvitation(ctx, leagueID, inviteeID, league.InvitationPending)
		if err != nil {
			return fmt.Errorf("check pending invitation: %w", err)
		}
		if pending {
			return fmt.Errorf("%w: league=%d user=%d", league.ErrAlreadyInvited, leagueID, inviteeID)
		}

		out, err = tx.CreateInvitation(ctx, invitation)
		if err != nil {
			return fmt.Errorf("insert invitation: %w", err)
		}
		return nil
	})
	if err != nil {
		return league.Invitation{}, fmt.Errorf("create invitation: %w", err)
	}
	return out, nil
}

// AcceptInvitation marks the invitation accepted and admits the invitee,
// enforcing the same membership and capacity checks as Join.
func (s *LeagueService) AcceptInvitation(ctx context.Context, invitationID, userID int64) (out league.League, err error) {
	ctx, end := s.begin(ctx, "AcceptInvitation", "invitation_id", invitationID, "user_id", userID)
	defer func() { end(err) }()

	if err := requirePositive(invitationID, userID); err != nil {
		return league.League{}, err
	}

	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx league.Tx) error {
		peek, found, err := tx.GetInvitation(ctx, invitationID)
		if err != nil {
			return fmt.Errorf("get invitation: %w", err)
		}
		if !found || peek.InviteeID != userID {
			return fmt.Errorf("%w: invitation=%d user=%d", league.ErrInvitationNotFound, invitationID, userID)
		}

		current, err := lockLeague(ctx, tx, peek.LeagueID)
		if err != nil {
			return err
		}
		invitation, err := lockInvitation(ctx, tx, invitationID)
		if err != nil {
			return err
		}

		now := s.now()
		accepted, err := invitation.Accept(userID, now)
		if err != nil {
			return err
		}
		updated, err := current.AdmitInvitee(userID, now)
		if err != nil {
			return err
		}

		if _, err := tx.UpdateInvitationStatus(ctx, accepted.ID, accepted.Status, now); err != nil {
			return fmt.Errorf("update invitation status: %w", err)
		}
		out, err = tx.Update(ctx, updated)
		if err != nil {
			return fmt.Errorf("update league: %w", err)
		}
		return nil
	})
	if err != nil {
		return league.League{}, fmt.Errorf("accept invitation: %w", err)
	}
	return out, nil
}

func (s *LeagueService) DeclineInvitation(ctx context.Context, invitationID, userID int64) (err error) {
	ctx, end := s.begin(ctx, "DeclineInvitation", "invitation_id", invitationID, "user_id", userID)
	defer func() { end(err) }()

	if err := requirePositive(invitationID, userID); err != nil {
		return err
	}

	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx league.Tx) error {
		invitation, err := lockInvitation(ctx, tx, invitationID)
		if err != nil {
			return err
		}

		now := s.now()
		declined, err := invitation.Decline(userID, now)
		if err != nil {
			return err
		}
		if _, err := tx.UpdateInvitationStatus(ctx, declined.ID, declined.Status, now); err != nil {
			return fmt.Errorf("update invitation status: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("decline invitation: %w", err)
	}
	return nil
}

func lockLeague(ctx context.Context, tx league.Tx, leagueID int64) (league.League, error) {
	item, found, err := tx.GetForUpdate(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league for update: %w", err)
	}
	if !found {
		return league.League{}, fmt.Errorf("%w: league=%d", league.ErrNotFound, leagueID)
	}
	return item, nil
}

func lockInvitation(ctx context.Context, tx league.Tx, invitationID int64) (league.Invitation, error) {
	item, found, err := tx.GetInvitationForUpdate(ctx, invitationID)
	if err != nil {
		return league.Invitation{}, fmt.Errorf("get invitation for update: %w", err)
	}
	if !found {
		return league.Invitation{}, fmt.Errorf("%w: invitation=%d", league.ErrInvitationNotFound, invitationID)
	}
	return item, nil
}

func requirePositive(ids ...int64) error {
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: identifiers must be positive", ErrInvalidInput)
		}
	}
	return nil
}
