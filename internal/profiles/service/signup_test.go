package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/store"
	"github.com/readspacehq/readspace/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &SignupService{Store: s}

	t.Run("creates account with bootstrap profile", func(t *testing.T) {
		account, outcome, err := svc.Signup(ctx, "Alice@Example.com", "Alice", "s3cret", "")
		require.NoError(t, err)
		require.Equal(t, AccountCreated, outcome)
		require.Equal(t, "alice@example.com", account.Email)
		require.Equal(t, domain.RoleUser, account.Role)
		require.NoError(t, cryptox.VerifyPassword("s3cret", account.PasswordHash))

		profiles, err := s.Profiles().ListActiveProfiles(ctx, account.ID)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		require.Equal(t, "Alice", profiles[0].Name)

		got, err := s.Accounts().GetAccountByID(ctx, account.ID)
		require.NoError(t, err)
		require.NotNil(t, got.DefaultProfileID)
		require.Equal(t, profiles[0].ID, *got.DefaultProfileID)
	})

	t.Run("blank display name falls back", func(t *testing.T) {
		account, outcome, err := svc.Signup(ctx, "bob@example.com", "   ", "s3cret", domain.RoleStudent)
		require.NoError(t, err)
		require.Equal(t, AccountCreated, outcome)

		profiles, err := s.Profiles().ListActiveProfiles(ctx, account.ID)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		require.Equal(t, "Student 1", profiles[0].Name)
	})

	t.Run("multibyte display name within the limit is kept", func(t *testing.T) {
		name := strings.Repeat("京", 30) // 90 bytes, 30 chars
		account, outcome, err := svc.Signup(ctx, "kyoko@example.com", name, "s3cret", "")
		require.NoError(t, err)
		require.Equal(t, AccountCreated, outcome)

		profiles, err := s.Profiles().ListActiveProfiles(ctx, account.ID)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		require.Equal(t, name, profiles[0].Name)
	})

	t.Run("overlong display name falls back", func(t *testing.T) {
		long := strings.Repeat("x", domain.MaxProfileNameLength+1)
		account, outcome, err := svc.Signup(ctx, "carol@example.com", long, "s3cret", "")
		require.NoError(t, err)
		require.Equal(t, AccountCreated, outcome)

		profiles, err := s.Profiles().ListActiveProfiles(ctx, account.ID)
		require.NoError(t, err)
		require.Equal(t, "Student 1", profiles[0].Name)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, _, err := svc.Signup(ctx, "alice@example.com", "Alice", "other", "")
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		_, _, err := svc.Signup(ctx, "", "Alice", "pw", "")
		require.ErrorIs(t, err, ErrSignupInvalid)
		_, _, err = svc.Signup(ctx, "d@example.com", "Alice", "", "")
		require.ErrorIs(t, err, ErrSignupInvalid)
	})
}

// profileFailingStore wraps a real store but fails every profile write,
// simulating the bootstrap-profile step going down while account creation
// still works.
type profileFailingStore struct {
	store.Store
}

type failingProfiles struct {
	store.Profiles
}

var errProfileStoreDown = errors.New("profile store down")

func (s *profileFailingStore) Profiles() store.Profiles {
	return &failingProfiles{Profiles: s.Store.Profiles()}
}

func (failingProfiles) CreateProfile(context.Context, domain.Profile) error {
	return errProfileStoreDown
}

func TestSignupContainedProfileFailure(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	pending := 0
	svc := &SignupService{
		Store:            &profileFailingStore{Store: s},
		OnProfilePending: func() { pending++ },
	}

	account, outcome, err := svc.Signup(ctx, "alice@example.com", "Alice", "s3cret", "")
	require.NoError(t, err, "account creation must not fail for a profile error")
	require.Equal(t, AccountCreatedProfilePending, outcome)
	require.Equal(t, 1, pending)

	// The account is fully usable and repairable.
	got, err := s.Accounts().GetAccountByID(ctx, account.ID)
	require.NoError(t, err)
	require.Nil(t, got.DefaultProfileID)

	profiles, err := s.Profiles().ListActiveProfiles(ctx, account.ID)
	require.NoError(t, err)
	require.Empty(t, profiles)
}

func TestHousekeepingRepairsProfilelessAccount(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	failing := &SignupService{Store: &profileFailingStore{Store: s}}
	account, outcome, err := failing.Signup(ctx, "alice@example.com", "Alice", "s3cret", "")
	require.NoError(t, err)
	require.Equal(t, AccountCreatedProfilePending, outcome)

	hk := NewHousekeepingService(s, testLogger(), time.Hour, time.Hour)
	repaired, err := hk.RepairProfilelessAccounts(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, repaired)

	profiles, err := s.Profiles().ListActiveProfiles(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.Equal(t, "Alice", profiles[0].Name)

	got, err := s.Accounts().GetAccountByID(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DefaultProfileID)

	// A second pass finds nothing to repair.
	repaired, err = hk.RepairProfilelessAccounts(ctx)
	require.NoError(t, err)
	require.Zero(t, repaired)
}
