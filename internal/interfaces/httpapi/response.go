package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/efantasy/league-service/internal/domain/league"
	"github.com/efantasy/league-service/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "league-service"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalError = mappedError{
	HTTPStatus: http.StatusInternalServerError,
	Reason:     "internalError",
	Status:     "INTERNAL",
}

// leagueErrors maps every business error kind to its transport form.
var leagueErrors = []struct {
	target error
	mapped mappedError
}{
	{league.ErrNotFound, mappedError{http.StatusNotFound, "leagueNotFound", "NOT_FOUND"}},
	{league.ErrInvitationNotFound, mappedError{http.StatusNotFound, "invitationNotFound", "NOT_FOUND"}},
	{league.ErrNotAuthorized, mappedError{http.StatusForbidden, "notAuthorized", "PERMISSION_DENIED"}},
	{league.ErrAlreadyJoined, mappedError{http.StatusConflict, "alreadyJoined", "ALREADY_EXISTS"}},
	{league.ErrAlreadyInvited, mappedError{http.StatusConflict, "alreadyInvited", "ALREADY_EXISTS"}},
	{league.ErrLeagueFull, mappedError{http.StatusConflict, "leagueFull", "FAILED_PRECONDITION"}},
	{league.ErrNotInLeague, mappedError{http.StatusConflict, "notInLeague", "FAILED_PRECONDITION"}},
	{league.ErrLastMember, mappedError{http.StatusConflict, "lastMember", "FAILED_PRECONDITION"}},
	{league.ErrDraftAlreadyStarted, mappedError{http.StatusConflict, "draftAlreadyStarted", "FAILED_PRECONDITION"}},
	{league.ErrLeagueIsPublic, mappedError{http.StatusConflict, "leagueIsPublic", "FAILED_PRECONDITION"}},
	{league.ErrInvitationNotPending, mappedError{http.StatusConflict, "invitationNotPending", "FAILED_PRECONDITION"}},
	{league.ErrCannotAddParticipants, mappedError{http.StatusUnprocessableEntity, "cannotAddParticipants", "INVALID_ARGUMENT"}},
	{league.ErrNoParticipantsLeft, mappedError{http.StatusUnprocessableEntity, "noParticipantsLeft", "INVALID_ARGUMENT"}},
	{league.ErrMaxTeamsBelowParticipants, mappedError{http.StatusUnprocessableEntity, "maxTeamsBelowParticipants", "INVALID_ARGUMENT"}},
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

// writeError hides the cause of anything that maps to 500.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	if mapped.HTTPStatus == http.StatusInternalServerError {
		writeInternalError(ctx, w)
		return
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  internalError.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  internalError.Reason,
					Message: msg,
				},
			},
		},
	})
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
		}
	}

	if kind := league.Kind(err); kind != nil {
		for _, item := range leagueErrors {
			if item.target == kind {
				return item.mapped
			}
		}
	}
	return internalError
}
