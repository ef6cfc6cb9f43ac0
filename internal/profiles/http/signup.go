package http

import (
	"encoding/json"
	"net/http"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/service"
	"github.com/readspacehq/readspace/pkg/httpx"
	"github.com/readspacehq/readspace/pkg/profilesdk"
	"github.com/readspacehq/readspace/pkg/slogx"
)

type SignupHandler struct {
	SignupService *service.SignupService
	Metrics       *Metrics
}

// ServeHTTP handles account signup.
//
//	@Summary		Create a new account
//	@Description	Creates an account and attempts to create its first profile. The outcome field
//	@Description	reports whether the bootstrap profile exists yet; a pending profile is repaired
//	@Description	automatically and never blocks the signup.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		profilesdk.SignupRequest	true	"signup payload"
//	@Success		201		{object}	profilesdk.SignupResponse
//	@Failure		400		{object}	profilesdk.APIError	"malformed request"
//	@Failure		409		{object}	profilesdk.APIError	"email already registered"
//	@Router			/v1/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req profilesdk.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		profilesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	// Admin accounts are seeded at startup, never signed up.
	if req.Role == domain.RoleAdmin {
		profilesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	account, outcome, err := h.SignupService.Signup(ctx, req.Email, req.DisplayName, req.Password, req.Role)
	if err != nil {
		log.Info("signup rejected", "err", err)
		writeServiceError(w, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.SignupOutcomes.WithLabelValues(string(outcome)).Inc()
	}

	httpx.WriteJSON(w, http.StatusCreated, profilesdk.SignupResponse{
		Account: toWireAccount(account),
		Outcome: string(outcome),
	})
}
