package profiles_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/readspacehq/readspace/pkg/profilesdk"
)

func TestProfileLifecycle(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()
	ctx := t.Context()

	session := signupAndLogin(t, baseURL, "alice@example.com", "Alice")

	work, err := session.CreateProfile(ctx, profilesdk.CreateProfileRequest{Name: "Work"})
	require.NoError(t, err)
	require.Equal(t, "Work", work.Name)
	require.NotEmpty(t, work.Color, "server assigns a color when none given")

	// Active names are unique per account.
	_, err = session.CreateProfile(ctx, profilesdk.CreateProfileRequest{Name: "  Work  "})
	assertAPIErrorCode(t, err, profilesdk.ErrorCodeNameTaken)

	newName := "Deep Work"
	updated, err := session.UpdateProfile(ctx, work.ID, profilesdk.UpdateProfileRequest{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Deep Work", updated.Name)

	// Switching stamps last_accessed_at and moves the profile to the front
	// of the list.
	switched, err := session.SwitchProfile(ctx, work.ID)
	require.NoError(t, err)
	require.NotNil(t, switched.LastAccessedAt)

	profiles, err := session.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	require.Equal(t, work.ID, profiles[0].ID)

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.NotNil(t, me.ActiveProfile)
	require.Equal(t, work.ID, me.ActiveProfile.ID, "switch persists the server-side pointer")

	// Deleting frees the name for reuse.
	require.NoError(t, session.DeleteProfile(ctx, work.ID))
	_, err = session.CreateProfile(ctx, profilesdk.CreateProfileRequest{Name: "Deep Work"})
	require.NoError(t, err)
}

func TestProfileLimitEnforced(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()
	ctx := t.Context()

	session := signupAndLogin(t, baseURL, "alice@example.com", "Alice")

	// Signup already created one profile; fill the remaining nine slots.
	for i := 0; i < 9; i++ {
		_, err := session.CreateProfile(ctx, profilesdk.CreateProfileRequest{
			Name: fmt.Sprintf("Profile %d", i),
		})
		require.NoError(t, err)
	}

	_, err := session.CreateProfile(ctx, profilesdk.CreateProfileRequest{Name: "One Too Many"})
	assertAPIErrorCode(t, err, profilesdk.ErrorCodeLimitReached)

	// Deleting one frees a slot.
	profiles, err := session.ListProfiles(ctx)
	require.NoError(t, err)
	require.NoError(t, session.DeleteProfile(ctx, profiles[0].ID))

	_, err = session.CreateProfile(ctx, profilesdk.CreateProfileRequest{Name: "One Too Many"})
	require.NoError(t, err)
}

func TestLastProfileCannotBeDeleted(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()
	ctx := t.Context()

	session := signupAndLogin(t, baseURL, "alice@example.com", "Alice")

	profiles, err := session.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	err = session.DeleteProfile(ctx, profiles[0].ID)
	assertAPIErrorCode(t, err, profilesdk.ErrorCodeLastProfile)
}
