package http

import (
	"net/http"

	"github.com/readspacehq/readspace/internal/profiles/service"
	"github.com/readspacehq/readspace/pkg/httpx"
	"github.com/readspacehq/readspace/pkg/profilesdk"
	"github.com/readspacehq/readspace/pkg/slogx"
)

type BackfillHandler struct {
	BackfillService *service.BackfillService
	Metrics         *Metrics
}

// ServeHTTP runs the compatibility backfill.
//
//	@Summary		Run the compatibility backfill
//	@Description	Upgrades embedded-blob profiles to rows, guarantees every account a default
//	@Description	profile, re-homes legacy document and notification rows, and tightens the
//	@Description	profile-reference constraint once each table has converged. Safe to re-run;
//	@Description	a converged database is a no-op.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	profilesdk.BackfillResponse
//	@Failure		403	{object}	profilesdk.APIError	"admin role required"
//	@Router			/v1/admin/backfill [post].
func (h *BackfillHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if h.Metrics != nil {
		h.Metrics.BackfillRuns.Inc()
	}

	report, err := h.BackfillService.Run(ctx)
	if err != nil {
		log.Error("backfill run failed", "err", err)
		profilesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, profilesdk.BackfillResponse{
		AccountsProcessed:  report.AccountsProcessed,
		AccountsUpgraded:   report.AccountsUpgraded,
		ProfilesCreated:    report.ProfilesCreated,
		DocumentsUpdated:   report.DocumentsUpdated,
		NotifsUpdated:      report.NotifsUpdated,
		DocumentsTightened: report.DocumentsTightened,
		NotifsTightened:    report.NotifsTightened,
	})
}
