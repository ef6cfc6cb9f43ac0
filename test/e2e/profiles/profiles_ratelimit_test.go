package profiles_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/readspacehq/readspace/pkg/profilesdk"
)

// TestLoginRateLimited verifies the strict per-IP limit on the login
// endpoint with production defaults: hammering it from one client must
// eventually return 429.
func TestLoginRateLimited(t *testing.T) {
	baseURL, cleanup := setupContainerWithDefaultRateLimits(t)
	defer cleanup()

	payload, err := json.Marshal(profilesdk.LoginRequest{
		Email:    "nobody@example.com",
		Password: "wrong",
	})
	require.NoError(t, err)

	limited := false
	for i := 0; i < 50 && !limited; i++ {
		resp, err := http.Post(baseURL+"/v1/login", "application/json", bytes.NewReader(payload))
		require.NoError(t, err)
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			limited = true
		}
	}
	require.True(t, limited, "expected the strict limit to trip within 50 requests")
}
