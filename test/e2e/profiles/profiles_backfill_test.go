package profiles_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBackfillRequiresAdminRole(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()
	ctx := t.Context()

	user := signupAndLogin(t, baseURL, "user@example.com", "User")

	_, err := user.RunBackfill(ctx)
	require.Error(t, err)
}

// TestBackfillIsIdempotent runs the migration batch twice as admin. On a
// store where every account was bootstrapped through signup there is
// nothing to upgrade, so both runs report zero changes and the tightened
// flags hold.
func TestBackfillIsIdempotent(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()
	ctx := t.Context()

	signupAndLogin(t, baseURL, "alice@example.com", "Alice")
	admin := loginAdmin(t, baseURL)

	first, err := admin.RunBackfill(ctx)
	require.NoError(t, err)
	require.True(t, first.DocumentsTightened)
	require.True(t, first.NotifsTightened)

	second, err := admin.RunBackfill(ctx)
	require.NoError(t, err)
	require.Zero(t, second.AccountsUpgraded)
	require.Zero(t, second.ProfilesCreated)
	require.Zero(t, second.DocumentsUpdated)
	require.True(t, second.DocumentsTightened)
	require.True(t, second.NotifsTightened)
}
