package profilesdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveActiveProfile(t *testing.T) {
	t.Parallel()

	// Ordered most recently accessed first, as the server returns them.
	profiles := []Profile{
		{ID: "recent", Name: "Recent"},
		{ID: "older", Name: "Older"},
		{ID: "oldest", Name: "Oldest"},
	}

	t.Run("local pointer wins", func(t *testing.T) {
		got := ResolveActiveProfile(profiles, "older", "oldest")
		require.NotNil(t, got)
		require.Equal(t, "older", got.ID)
	})

	t.Run("server pointer when no local", func(t *testing.T) {
		got := ResolveActiveProfile(profiles, "", "oldest")
		require.NotNil(t, got)
		require.Equal(t, "oldest", got.ID)
	})

	t.Run("most recently accessed when no pointers", func(t *testing.T) {
		got := ResolveActiveProfile(profiles, "", "")
		require.NotNil(t, got)
		require.Equal(t, "recent", got.ID)
	})

	t.Run("stale local pointer falls through to server", func(t *testing.T) {
		got := ResolveActiveProfile(profiles, "deleted-profile", "older")
		require.NotNil(t, got)
		require.Equal(t, "older", got.ID)
	})

	t.Run("both pointers stale falls through to list", func(t *testing.T) {
		got := ResolveActiveProfile(profiles, "gone", "also-gone")
		require.NotNil(t, got)
		require.Equal(t, "recent", got.ID)
	})

	t.Run("empty list yields nil", func(t *testing.T) {
		require.Nil(t, ResolveActiveProfile(nil, "any", "any"))
	})
}
