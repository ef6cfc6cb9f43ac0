package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/pkg/idx"
	"github.com/stretchr/testify/require"
)

func seedLegacyDocument(t *testing.T, svc *BackfillService, accountID, title string) domain.Document {
	t.Helper()

	d := domain.Document{
		ID:        idx.New().String(),
		AccountID: accountID,
		Title:     title,
		Kind:      "note",
	}
	require.NoError(t, svc.Store.Documents().CreateDocument(context.Background(), d))
	return d
}

func TestBackfillUpgradesEmbeddedAccounts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &BackfillService{Store: s}

	account := seedEmbeddedAccount(t, s, "legacy@example.com", "Reader", "Writer")
	seedLegacyDocument(t, svc, account.ID, "old notes")

	report, err := svc.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.AccountsProcessed)
	require.Equal(t, 1, report.AccountsUpgraded)
	require.Equal(t, int64(1), report.DocumentsUpdated)
	require.True(t, report.Complete())

	got, err := s.Accounts().GetAccountByID(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ProfileSchemaNormalized, got.ProfileSchema)
	require.NotNil(t, got.DefaultProfileID)

	profiles, err := s.Profiles().ListActiveProfiles(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	// Sibling keys in the preferences blob survive the upgrade.
	var prefs map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(got.Preferences, &prefs))
	require.Contains(t, prefs, "theme")

	// Every scoped row now carries a profile reference.
	missing, err := s.Documents().CountMissingProfileRef(ctx)
	require.NoError(t, err)
	require.Zero(t, missing)
}

func TestBackfillCarriesSoftDeletedProfiles(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &BackfillService{Store: s}

	account := seedEmbeddedAccount(t, s, "legacy@example.com", "Old", "Current")

	// Soft-delete one profile while it still lives in the blob.
	embedded, err := s.EmbeddedProfiles().ListActiveProfiles(ctx, account.ID)
	require.NoError(t, err)
	var old domain.Profile
	for _, p := range embedded {
		if p.Name == "Old" {
			old = p
		}
	}
	require.NotEmpty(t, old.ID)
	require.NoError(t, s.EmbeddedProfiles().SetProfileActive(ctx, account.ID, old.ID, false))

	_, err = svc.Run(ctx)
	require.NoError(t, err)

	// The soft-deleted profile reaches the normalized table with its
	// history intact instead of surviving only in the stale blob.
	got, err := s.Profiles().GetProfile(ctx, account.ID, old.ID)
	require.NoError(t, err)
	require.False(t, got.Active)
	require.Equal(t, "Old", got.Name)

	active, err := s.Profiles().ListActiveProfiles(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "Current", active[0].Name)
}

func TestBackfillCreatesDefaultProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &BackfillService{Store: s}

	account := seedAccount(t, s, "empty@example.com")
	seedLegacyDocument(t, svc, account.ID, "orphan")

	report, err := svc.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.ProfilesCreated)
	require.Equal(t, int64(1), report.DocumentsUpdated)

	profiles, err := s.Profiles().ListActiveProfiles(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.Equal(t, "Alice", profiles[0].Name)

	docs, err := s.Documents().ListDocumentsByProfile(ctx, profiles[0].ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
}

func TestBackfillIdempotenceLaw(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &BackfillService{Store: s}

	seedEmbeddedAccount(t, s, "legacy@example.com", "Reader")
	account := seedAccount(t, s, "modern@example.com")
	seedProfile(t, s, account.ID, "Existing")
	seedLegacyDocument(t, svc, account.ID, "notes")

	first, err := svc.Run(ctx)
	require.NoError(t, err)
	require.True(t, first.Complete())

	second, err := svc.Run(ctx)
	require.NoError(t, err)
	require.True(t, second.Complete())

	// backfill(backfill(db)) == backfill(db): the second run rewrites
	// nothing.
	require.Zero(t, second.AccountsUpgraded)
	require.Zero(t, second.ProfilesCreated)
	require.Zero(t, second.DocumentsUpdated)
	require.Zero(t, second.NotifsUpdated)
}

func TestBackfillTightensAfterConvergence(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &BackfillService{Store: s}

	account := seedAccount(t, s, "alice@example.com")
	seedProfile(t, s, account.ID, "Reading")
	seedLegacyDocument(t, svc, account.ID, "notes")

	report, err := svc.Run(ctx)
	require.NoError(t, err)
	require.True(t, report.DocumentsTightened)
	require.True(t, report.NotifsTightened)

	enforced, err := s.Schema().ProfileRefEnforced(ctx, "documents")
	require.NoError(t, err)
	require.True(t, enforced)

	// New rows without a profile reference are rejected outright.
	err = s.Documents().CreateDocument(ctx, domain.Document{
		ID:        idx.New().String(),
		AccountID: account.ID,
		Title:     "late legacy row",
		Kind:      "note",
	})
	require.Error(t, err)
}

func TestBackfillRespectsExistingDefaultPointer(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &BackfillService{Store: s}

	account := seedAccount(t, s, "alice@example.com")
	seedProfile(t, s, account.ID, "First")
	preferred := seedProfile(t, s, account.ID, "Preferred")
	require.NoError(t, s.Accounts().SetDefaultProfile(ctx, account.ID, &preferred.ID))
	seedLegacyDocument(t, svc, account.ID, "notes")

	_, err := svc.Run(ctx)
	require.NoError(t, err)

	docs, err := s.Documents().ListDocumentsByProfile(ctx, preferred.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1, "legacy rows land on the account's chosen default")
}
