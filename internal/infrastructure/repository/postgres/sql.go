package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"

	"github.com/efantasy/league-service/internal/domain/league"
)

const (
	pgUniqueViolation      = "23505"
	pendingInvitationIndex = "league_invitations_pending_uniq"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// storageError wraps a driver failure so callers can match league.ErrStorage.
func storageError(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %w", league.ErrStorage, crerr.Wrapf(err, format, args...))
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if string(pqErr.Code) != pgUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
