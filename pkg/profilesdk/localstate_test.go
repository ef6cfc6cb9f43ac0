package profilesdk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStatePersistsAcrossOpens(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	first, err := OpenLocalState(dir)
	require.NoError(t, err)
	installID := first.InstallationID()
	require.NotEmpty(t, installID)

	require.NoError(t, first.SetActiveProfile("acct-1", "prof-a"))
	require.NoError(t, first.SetActiveProfile("acct-2", "prof-b"))

	// A new open (process restart) sees the same identity and pointers.
	second, err := OpenLocalState(dir)
	require.NoError(t, err)
	require.Equal(t, installID, second.InstallationID())
	require.Equal(t, "prof-a", second.ActiveProfile("acct-1"))
	require.Equal(t, "prof-b", second.ActiveProfile("acct-2"))
	require.Empty(t, second.ActiveProfile("acct-unknown"))
}

func TestLocalStateClearPointer(t *testing.T) {
	t.Parallel()

	s, err := OpenLocalState(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.SetActiveProfile("acct", "prof"))
	require.Equal(t, "prof", s.ActiveProfile("acct"))

	require.NoError(t, s.SetActiveProfile("acct", ""))
	require.Empty(t, s.ActiveProfile("acct"))
}

func TestLocalStateCorruptFileRecovers(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, localStateFile), []byte("{not json"), 0o600))

	s, err := OpenLocalState(dir)
	require.NoError(t, err)
	require.NotEmpty(t, s.InstallationID())
	require.Empty(t, s.ActiveProfile("acct"))
}
