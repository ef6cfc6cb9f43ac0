package http

import (
	"errors"
	"net/http"

	"github.com/readspacehq/readspace/internal/profiles/service"
	"github.com/readspacehq/readspace/pkg/httpx"
	"github.com/readspacehq/readspace/pkg/profilesdk"
	"github.com/readspacehq/readspace/pkg/slogx"
)

type MeHandler struct {
	AccountService *service.AccountService
	ProfileService *service.ProfileService
}

// ServeHTTP returns the authenticated account and its active profile.
//
//	@Summary		Get the authenticated account
//	@Description	Returns the account summary along with the profile the server-persisted default
//	@Description	pointer resolves to, when it names an active profile.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	profilesdk.MeResponse
//	@Failure		401	{object}	profilesdk.APIError	"invalid or missing token"
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromCtx(ctx)
	if accountID == "" {
		profilesdk.ErrInvalidToken.WriteError(w)
		return
	}

	account, err := h.AccountService.GetAccountByID(ctx, accountID)
	if err != nil {
		log.Warn("failed to load account", "account_id", accountID, "err", err)
		writeServiceError(w, err)
		return
	}

	resp := profilesdk.MeResponse{Account: toWireAccount(account)}

	if account.DefaultProfileID != nil {
		p, err := h.ProfileService.Get(ctx, accountID, *account.DefaultProfileID)
		switch {
		case err == nil && p.Active:
			wire := toWireProfile(p)
			resp.ActiveProfile = &wire
		case err != nil && !errors.Is(err, service.ErrProfileNotFound):
			log.Warn("failed to load active profile", "account_id", accountID, "err", err)
			profilesdk.ErrServerError.WriteError(w)
			return
		}
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, resp)
}
