package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/efantasy/league-service/internal/domain/league"
	"github.com/efantasy/league-service/internal/domain/user"
	"github.com/efantasy/league-service/internal/platform/logging"
	"github.com/efantasy/league-service/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// LeagueService is the use case surface the handlers drive.
type LeagueService interface {
	Create(ctx context.Context, creatorID int64, input league.NewLeague) (league.League, error)
	ListPublic(ctx context.Context) ([]league.League, error)
	ListUserLeagues(ctx context.Context, userID int64) ([]league.League, error)
	ListPendingInvitations(ctx context.Context, userID int64) ([]league.Invitation, error)
	Join(ctx context.Context, leagueID, userID int64) (league.League, error)
	Leave(ctx context.Context, leagueID, userID int64) (league.League, error)
	UpdateSettings(ctx context.Context, leagueID, requesterID int64, settings league.Settings) (league.League, error)
	Delete(ctx context.Context, leagueID, requesterID int64) error
	CreateInvitation(ctx context.Context, leagueID, inviteeID, inviterID int64) (league.Invitation, error)
	AcceptInvitation(ctx context.Context, invitationID, userID int64) (league.League, error)
	DeclineInvitation(ctx context.Context, invitationID, userID int64) error
}

type Handler struct {
	leagueService LeagueService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(leagueService LeagueService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService: leagueService,
		logger:        logger.Named("httpapi"),
		validator:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return id, nil
}
