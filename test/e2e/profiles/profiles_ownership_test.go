package profiles_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/readspacehq/readspace/pkg/profilesdk"
)

// TestOwnershipGateAcrossAccounts verifies that no account can touch
// another account's profiles or the documents scoped to them, and that a
// denial is indistinguishable from the resource not existing.
func TestOwnershipGateAcrossAccounts(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()
	ctx := t.Context()

	alice := signupAndLogin(t, baseURL, "alice@example.com", "Alice")
	mallory := signupAndLogin(t, baseURL, "mallory@example.com", "Mallory")

	aliceProfiles, err := alice.ListProfiles(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, aliceProfiles)
	target := aliceProfiles[0]

	doc, err := alice.CreateDocument(ctx, profilesdk.CreateDocumentRequest{
		ProfileID: target.ID,
		Title:     "Alice's reading list",
	})
	require.NoError(t, err)

	// Reads and writes through a foreign profile are denied.
	_, err = mallory.ListDocuments(ctx, target.ID)
	assertAPIErrorCode(t, err, profilesdk.ErrorCodeOwnershipDenied)

	_, err = mallory.CreateDocument(ctx, profilesdk.CreateDocumentRequest{
		ProfileID: target.ID,
		Title:     "planted",
	})
	assertAPIErrorCode(t, err, profilesdk.ErrorCodeOwnershipDenied)

	// Foreign profile mutations read as not-found, same as a profile that
	// never existed.
	_, foreignErr := mallory.SwitchProfile(ctx, target.ID)
	_, ghostErr := mallory.SwitchProfile(ctx, "01ZZZZZZZZZZZZZZZZZZZZZZZZ")
	require.Error(t, foreignErr)
	require.Error(t, ghostErr)
	require.Equal(t, foreignErr.Error(), ghostErr.Error())

	// Alice is unaffected.
	docs, err := alice.ListDocuments(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, doc.ID, docs[0].ID)
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()
	ctx := t.Context()

	client := profilesdk.NewClient(baseURL)
	stale := client.NewSessionFromToken("nobody", "not-a-token", 3600)

	_, err := stale.ListProfiles(ctx)
	var apiErr *profilesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)
}
