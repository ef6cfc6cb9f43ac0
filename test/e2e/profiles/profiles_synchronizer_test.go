package profiles_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/readspacehq/readspace/pkg/profilesdk"
)

// TestSynchronizerResolvesAgainstLiveService runs the client-side session
// synchronizer against the real container: first resolve lands on the
// bootstrap profile, a switch is remembered locally, and a second
// synchronizer over the same state dir resolves the remembered choice
// without any server-side help.
func TestSynchronizerResolvesAgainstLiveService(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()
	ctx := t.Context()

	session := signupAndLogin(t, baseURL, "alice@example.com", "Alice")
	stateDir := t.TempDir()

	sync, err := profilesdk.NewSynchronizer(session, profilesdk.SynchronizerOptions{
		StateDir: stateDir,
	})
	require.NoError(t, err)

	active, err := sync.Resolve(ctx)
	require.NoError(t, err)
	require.False(t, active.Transient)
	require.Equal(t, "Alice", active.Name, "first resolve lands on the bootstrap profile")

	// Create a second profile and pick it through a fresh resolve cycle.
	work, err := session.CreateProfile(ctx, profilesdk.CreateProfileRequest{Name: "Work"})
	require.NoError(t, err)
	_, err = session.SwitchProfile(ctx, work.ID)
	require.NoError(t, err)

	active, err = sync.Resolve(ctx)
	require.NoError(t, err)
	require.Equal(t, work.ID, active.ID)

	// A new synchronizer over the same state dir prefers the local pointer.
	sync2, err := profilesdk.NewSynchronizer(session, profilesdk.SynchronizerOptions{
		StateDir: stateDir,
	})
	require.NoError(t, err)

	active, err = sync2.Resolve(ctx)
	require.NoError(t, err)
	require.Equal(t, work.ID, active.ID)
}
