package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /leagues/public", handler.ListPublicLeagues)
}

func registerAuthorizedLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("GET /leagues/my", RequireAuth(verifier, http.HandlerFunc(handler.ListMyLeagues)))
	mux.Handle("POST /leagues/{id}/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinLeague)))
	mux.Handle("POST /leagues/{id}/leave", RequireAuth(verifier, http.HandlerFunc(handler.LeaveLeague)))
	mux.Handle("PUT /leagues/{id}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateLeague)))
	mux.Handle("DELETE /leagues/{id}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteLeague)))
}

func registerAuthorizedInvitationRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /leagues/invite", RequireAuth(verifier, http.HandlerFunc(handler.CreateInvitation)))
	mux.Handle("GET /leagues/invitations/pending", RequireAuth(verifier, http.HandlerFunc(handler.ListPendingInvitations)))
	mux.Handle("POST /leagues/invitations/{id}/accept", RequireAuth(verifier, http.HandlerFunc(handler.AcceptInvitation)))
	mux.Handle("POST /leagues/invitations/{id}/decline", RequireAuth(verifier, http.HandlerFunc(handler.DeclineInvitation)))
}
