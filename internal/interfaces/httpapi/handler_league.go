package httpapi

import (
	"net/http"
	"time"

	"github.com/efantasy/league-service/internal/domain/league"
)

type createLeagueRequest struct {
	Name        string    `json:"name" validate:"required,max=100"`
	MaxTeams    int       `json:"max_teams" validate:"required,min=1,max=1000"`
	IsPublic    bool      `json:"is_public"`
	DraftTime   time.Time `json:"draft_time" validate:"required"`
	ScoringType string    `json:"scoring_type" validate:"required,max=50"`
}

type updateLeagueRequest struct {
	Name         string    `json:"name" validate:"required,max=100"`
	MaxTeams     int       `json:"max_teams" validate:"required,min=1,max=1000"`
	IsPublic     bool      `json:"is_public"`
	DraftTime    time.Time `json:"draft_time" validate:"required"`
	ScoringType  string    `json:"scoring_type" validate:"required,max=50"`
	Participants []int64   `json:"participants" validate:"dive,gt=0"`
}

type createInvitationRequest struct {
	LeagueID int64 `json:"league_id" validate:"required,gt=0"`
	UserID   int64 `json:"user_id" validate:"required,gt=0"`
}

type leagueDTO struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	AdminID      int64     `json:"admin_id"`
	MaxTeams     int       `json:"max_teams"`
	IsPublic     bool      `json:"is_public"`
	DraftTime    time.Time `json:"draft_time"`
	ScoringType  string    `json:"scoring_type"`
	Participants []int64   `json:"participants"`
	DraftOrder   []int64   `json:"draft_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type invitationDTO struct {
	ID        int64     `json:"id"`
	LeagueID  int64     `json:"league_id"`
	InviteeID int64     `json:"invitee_id"`
	InviterID int64     `json:"inviter_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createLeagueRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.leagueService.Create(ctx, principal.UserID, league.NewLeague{
		Name:        req.Name,
		MaxTeams:    req.MaxTeams,
		IsPublic:    req.IsPublic,
		DraftTime:   req.DraftTime,
		ScoringType: req.ScoringType,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(created))
}

func (h *Handler) ListPublicLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPublicLeagues")
	defer span.End()

	items, err := h.leagueService.ListPublic(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list public leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaguesToDTO(items))
}

func (h *Handler) ListMyLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyLeagues")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.leagueService.ListUserLeagues(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list my leagues failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaguesToDTO(items))
}

func (h *Handler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.leagueService.Join(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "join league failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(updated))
}

func (h *Handler) LeaveLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.leagueService.Leave(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "leave league failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(updated))
}

func (h *Handler) UpdateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateLeagueRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.leagueService.UpdateSettings(ctx, leagueID, principal.UserID, league.Settings{
		Name:         req.Name,
		MaxTeams:     req.MaxTeams,
		IsPublic:     req.IsPublic,
		DraftTime:    req.DraftTime,
		ScoringType:  req.ScoringType,
		Participants: req.Participants,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update league failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(updated))
}

func (h *Handler) DeleteLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.leagueService.Delete(ctx, leagueID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "delete league failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"id": leagueID, "deleted": true})
}

func (h *Handler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateInvitation")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createInvitationRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	invitation, err := h.leagueService.CreateInvitation(ctx, req.LeagueID, req.UserID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "create invitation failed",
			"league_id", req.LeagueID,
			"invitee_id", req.UserID,
			"inviter_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, invitationToDTO(invitation))
}

func (h *Handler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptInvitation")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	invitationID, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	joined, err := h.leagueService.AcceptInvitation(ctx, invitationID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "accept invitation failed", "invitation_id", invitationID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(joined))
}

func (h *Handler) DeclineInvitation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeclineInvitation")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	invitationID, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.leagueService.DeclineInvitation(ctx, invitationID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "decline invitation failed", "invitation_id", invitationID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"id":     invitationID,
		"status": string(league.InvitationDeclined),
	})
}

func (h *Handler) ListPendingInvitations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPendingInvitations")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	invitations, err := h.leagueService.ListPendingInvitations(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list pending invitations failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]invitationDTO, 0, len(invitations))
	for _, item := range invitations {
		items = append(items, invitationToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func leagueToDTO(v league.League) leagueDTO {
	participants := v.Participants
	if participants == nil {
		participants = []int64{}
	}
	return leagueDTO{
		ID:           v.ID,
		Name:         v.Name,
		AdminID:      v.AdminID,
		MaxTeams:     v.MaxTeams,
		IsPublic:     v.IsPublic,
		DraftTime:    v.DraftTime.UTC(),
		ScoringType:  v.ScoringType,
		Participants: participants,
		DraftOrder:   v.DraftOrder,
		CreatedAt:    v.CreatedAt.UTC(),
		UpdatedAt:    v.UpdatedAt.UTC(),
	}
}

func leaguesToDTO(items []league.League) []leagueDTO {
	out := make([]leagueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, leagueToDTO(item))
	}
	return out
}

func invitationToDTO(v league.Invitation) invitationDTO {
	return invitationDTO{
		ID:        v.ID,
		LeagueID:  v.LeagueID,
		InviteeID: v.InviteeID,
		InviterID: v.InviterID,
		Status:    string(v.Status),
		CreatedAt: v.CreatedAt.UTC(),
		UpdatedAt: v.UpdatedAt.UTC(),
	}
}
