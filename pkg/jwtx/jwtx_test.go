package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSigner("test-key")
	require.NoError(t, err)

	claims := NewAccessClaims("acct_123", "student", "Alice", time.Minute, "readspace-profiles", time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := signer.Verifier("readspace-profiles").Verify(token)
	require.NoError(t, err)
	require.Equal(t, "acct_123", got.Subject)
	require.Equal(t, "student", got.Role)
	require.Equal(t, "Alice", got.DisplayName)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSigner("test-key")
	require.NoError(t, err)

	claims := NewAccessClaims("acct_123", "user", "", time.Minute, "someone-else", time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = signer.Verifier("readspace-profiles").Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSigner("test-key")
	require.NoError(t, err)

	claims := NewAccessClaims("acct_123", "user", "", time.Minute, "readspace-profiles", time.Now().Add(-2*time.Minute))
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = signer.Verifier("readspace-profiles").Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsUnknownKid(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSigner("key-a")
	require.NoError(t, err)
	other, err := GenerateSigner("key-b")
	require.NoError(t, err)

	token, err := signer.Sign(NewAccessClaims("acct_123", "user", "", time.Minute, "", time.Now()))
	require.NoError(t, err)

	_, err = other.Verifier("").Verify(token)
	require.Error(t, err)
}

func TestSignerPEMRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSigner("persist")
	require.NoError(t, err)

	pemBytes, err := signer.MarshalPrivateKeyPEM()
	require.NoError(t, err)

	reloaded, err := NewSigner("persist", pemBytes)
	require.NoError(t, err)
	require.Equal(t, signer.Public(), reloaded.Public())

	token, err := signer.Sign(NewAccessClaims("acct_1", "admin", "", time.Minute, "", time.Now()))
	require.NoError(t, err)

	_, err = reloaded.Verifier("").Verify(token)
	require.NoError(t, err)
}
