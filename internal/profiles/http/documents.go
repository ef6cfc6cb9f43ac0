package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/readspacehq/readspace/internal/profiles/service"
	"github.com/readspacehq/readspace/pkg/httpx"
	"github.com/readspacehq/readspace/pkg/profilesdk"
)

type DocumentsHandler struct {
	DocumentService *service.DocumentService
	Metrics         *Metrics
}

// HandleList lists the documents of one of the caller's profiles.
//
//	@Summary		List documents for a profile
//	@Description	Returns the documents scoped to the given profile, newest first. The caller must
//	@Description	own the profile; a foreign or unknown profile reads as forbidden.
//	@Tags			Documents
//	@Security		BearerAuth
//	@Produce		json
//	@Param			profile_id	query		string	true	"profile id"
//	@Success		200			{object}	profilesdk.DocumentListResponse
//	@Failure		403			{object}	profilesdk.APIError	"not the caller's profile"
//	@Router			/v1/documents [get].
func (h *DocumentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := httpx.AccountIDFromCtx(ctx)

	profileID := r.URL.Query().Get("profile_id")
	if profileID == "" {
		profilesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	docs, err := h.DocumentService.ListForProfile(ctx, accountID, profileID)
	if err != nil {
		h.countDenial(err)
		writeServiceError(w, err)
		return
	}

	out := make([]profilesdk.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, toWireDocument(d))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, profilesdk.DocumentListResponse{Documents: out})
}

// HandleCreate creates a document under one of the caller's profiles.
//
//	@Summary		Create a document
//	@Description	Creates a document stub scoped to the given profile. The caller must own the
//	@Description	profile.
//	@Tags			Documents
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		profilesdk.CreateDocumentRequest	true	"document payload"
//	@Success		201		{object}	profilesdk.Document
//	@Failure		403		{object}	profilesdk.APIError	"not the caller's profile"
//	@Router			/v1/documents [post].
func (h *DocumentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := httpx.AccountIDFromCtx(ctx)

	var req profilesdk.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		profilesdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.ProfileID == "" {
		profilesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	d, err := h.DocumentService.Create(ctx, accountID, req.ProfileID, req.Title, req.Kind)
	if err != nil {
		h.countDenial(err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toWireDocument(d))
}

func (h *DocumentsHandler) countDenial(err error) {
	if h.Metrics != nil && errors.Is(err, service.ErrOwnershipDenied) {
		h.Metrics.OwnershipDenials.Inc()
	}
}
