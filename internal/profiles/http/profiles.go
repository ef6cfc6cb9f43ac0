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

type ProfilesHandler struct {
	ProfileService *service.ProfileService
}

// HandleList lists the account's active profiles.
//
//	@Summary		List active profiles
//	@Description	Returns the account's active profiles, most recently accessed first.
//	@Tags			Profiles
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	profilesdk.ProfileListResponse
//	@Failure		401	{object}	profilesdk.APIError
//	@Router			/v1/profiles [get].
func (h *ProfilesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	accountID := httpx.AccountIDFromCtx(ctx)

	profiles, err := h.ProfileService.List(ctx, accountID)
	if err != nil {
		log.Warn("failed to list profiles", "account_id", accountID, "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, profilesdk.ProfileListResponse{
		Profiles: toWireProfiles(profiles),
	})
}

// HandleCreate creates a new profile.
//
//	@Summary		Create a profile
//	@Description	Creates an active profile. Name must be 1-50 characters and unique among the
//	@Description	account's active profiles; at most 10 profiles may be active at once. Color is
//	@Description	assigned from the palette when omitted.
//	@Tags			Profiles
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		profilesdk.CreateProfileRequest	true	"profile payload"
//	@Success		201		{object}	profilesdk.Profile
//	@Failure		400		{object}	profilesdk.APIError	"invalid name"
//	@Failure		409		{object}	profilesdk.APIError	"name taken or limit reached"
//	@Router			/v1/profiles [post].
func (h *ProfilesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := httpx.AccountIDFromCtx(ctx)

	var req profilesdk.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		profilesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	p, err := h.ProfileService.Create(ctx, accountID, req.Name, req.Color)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toWireProfile(p))
}

// HandleUpdate patches a profile's mutable fields.
//
//	@Summary		Update a profile
//	@Description	Patches name, color or preferences. Renames are validated like creation.
//	@Tags			Profiles
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"profile id"
//	@Param			request	body		profilesdk.UpdateProfileRequest	true	"patch payload"
//	@Success		200		{object}	profilesdk.Profile
//	@Failure		404		{object}	profilesdk.APIError	"not the caller's profile"
//	@Failure		409		{object}	profilesdk.APIError	"name taken"
//	@Router			/v1/profiles/{id} [patch].
func (h *ProfilesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := httpx.AccountIDFromCtx(ctx)
	profileID := r.PathValue("id")

	var req profilesdk.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		profilesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	p, err := h.ProfileService.Update(ctx, accountID, profileID, domain.ProfilePatch{
		Name:        req.Name,
		Color:       req.Color,
		Preferences: req.Preferences,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toWireProfile(p))
}

// HandleDelete soft-deletes a profile.
//
//	@Summary		Delete a profile
//	@Description	Soft-deletes the profile so scoped resources keep a valid reference. The last
//	@Description	remaining active profile cannot be deleted.
//	@Tags			Profiles
//	@Security		BearerAuth
//	@Param			id	path	string	true	"profile id"
//	@Success		204
//	@Failure		404	{object}	profilesdk.APIError	"not the caller's profile"
//	@Failure		409	{object}	profilesdk.APIError	"last remaining profile"
//	@Router			/v1/profiles/{id} [delete].
func (h *ProfilesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := httpx.AccountIDFromCtx(ctx)
	profileID := r.PathValue("id")

	if err := h.ProfileService.Delete(ctx, accountID, profileID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSwitch makes the profile the account's active one.
//
//	@Summary		Switch the active profile
//	@Description	Stamps the profile's last-accessed time and persists the account-level default
//	@Description	pointer (last writer wins across devices). Idempotent.
//	@Tags			Profiles
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"profile id"
//	@Success		200	{object}	profilesdk.Profile
//	@Failure		404	{object}	profilesdk.APIError	"not the caller's profile"
//	@Router			/v1/profiles/{id}/switch [post].
func (h *ProfilesHandler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := httpx.AccountIDFromCtx(ctx)
	profileID := r.PathValue("id")

	p, err := h.ProfileService.SwitchActive(ctx, accountID, profileID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toWireProfile(p))
}
