package profiles_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/readspacehq/readspace/pkg/profilesdk"
)

// TestSignupLoginMe covers the full account bootstrap path: signup creates
// the account plus its default profile, login issues a token, and /me
// reports the bootstrap profile as active.
func TestSignupLoginMe(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()
	ctx := t.Context()

	session := signupAndLogin(t, baseURL, "alice@example.com", "Alice")

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", me.Account.Email)
	require.Equal(t, "Alice", me.Account.DisplayName)
	require.NotNil(t, me.ActiveProfile, "signup should bootstrap a default profile")
	require.Equal(t, "Alice", me.ActiveProfile.Name)
	require.NotEmpty(t, me.ActiveProfile.Color)
}

func TestSignupDuplicateEmailRejected(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()
	ctx := t.Context()

	signupAndLogin(t, baseURL, "alice@example.com", "Alice")

	client := profilesdk.NewClient(baseURL)
	_, err := client.Signup(ctx, profilesdk.SignupRequest{
		Email:       "ALICE@example.com", // emails are case-insensitive
		DisplayName: "Imposter",
		Password:    testPassword,
	})
	assertAPIErrorCode(t, err, profilesdk.ErrorCodeEmailTaken)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()
	ctx := t.Context()

	signupAndLogin(t, baseURL, "alice@example.com", "Alice")

	client := profilesdk.NewClient(baseURL)

	_, wrongPassword := client.Login(ctx, "alice@example.com", "nope")
	assertAPIErrorCode(t, wrongPassword, profilesdk.ErrorCodeInvalidCredentials)

	_, unknownEmail := client.Login(ctx, "ghost@example.com", "nope")
	assertAPIErrorCode(t, unknownEmail, profilesdk.ErrorCodeInvalidCredentials)

	require.Equal(t, wrongPassword.Error(), unknownEmail.Error(),
		"unknown email and wrong password must read identically")
}

func TestSignupCannotClaimAdminRole(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()
	ctx := t.Context()

	client := profilesdk.NewClient(baseURL)
	_, err := client.Signup(ctx, profilesdk.SignupRequest{
		Email:       "evil@example.com",
		DisplayName: "Evil",
		Password:    testPassword,
		Role:        "admin",
	})
	assertAPIErrorCode(t, err, profilesdk.ErrorCodeInvalidRequest)
}

func TestSeededAdminCanLogin(t *testing.T) {
	baseURL, cleanup := setupProfilesContainer(t)
	defer cleanup()
	ctx := t.Context()

	admin := loginAdmin(t, baseURL)

	me, err := admin.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, seedAdminEmail, me.Account.Email)
	require.Equal(t, "admin", me.Account.Role)
}
