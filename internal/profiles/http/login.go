package http

import (
	"encoding/json"
	"net/http"

	"github.com/readspacehq/readspace/internal/profiles/service"
	"github.com/readspacehq/readspace/pkg/httpx"
	"github.com/readspacehq/readspace/pkg/profilesdk"
	"github.com/readspacehq/readspace/pkg/slogx"
)

type LoginHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP handles the password grant.
//
//	@Summary		Log in with email and password
//	@Description	Issues a short-lived bearer token. Unknown emails and wrong passwords are
//	@Description	indistinguishable in the response.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		profilesdk.LoginRequest	true	"credentials"
//	@Success		200		{object}	profilesdk.TokenResponse
//	@Failure		401		{object}	profilesdk.APIError	"invalid credentials"
//	@Router			/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req profilesdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		profilesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.TokenService.PasswordGrant(ctx, req.Email, req.Password)
	if err != nil {
		log.Info("login rejected", "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, profilesdk.TokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   pair.TokenType,
		ExpiresIn:   pair.ExpiresIn,
		Account:     toWireAccount(pair.Account),
	})
}
