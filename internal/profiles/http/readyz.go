package http

import (
	"net/http"
	"time"

	"github.com/readspacehq/readspace/internal/profiles/store"
	"github.com/readspacehq/readspace/pkg/httpx"
	"github.com/readspacehq/readspace/pkg/jwtx"
	"github.com/readspacehq/readspace/pkg/profilesdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Checks database connectivity and token signer readiness.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	profilesdk.HealthResponse
//	@Failure		503	{object}	profilesdk.HealthResponse	"a dependency is degraded"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	signer *jwtx.Signer,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &profilesdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if signer == nil {
			checks.Signer = "error: no signing key loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, profilesdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
