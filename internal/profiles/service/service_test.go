package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/store"
	"github.com/readspacehq/readspace/internal/profiles/store/drivers/sqlite"
	"github.com/readspacehq/readspace/pkg/idx"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedAccount(t *testing.T, s store.Store, email string) domain.Account {
	t.Helper()

	account := domain.Account{
		ID:            idx.New().String(),
		Email:         email,
		DisplayName:   "Alice",
		Role:          domain.RoleUser,
		PasswordHash:  "hash",
		ProfileSchema: domain.ProfileSchemaNormalized,
	}
	require.NoError(t, s.Accounts().CreateAccount(context.Background(), account))
	return account
}

func seedProfile(t *testing.T, s store.Store, accountID, name string) domain.Profile {
	t.Helper()

	p := domain.Profile{
		ID:        idx.New().String(),
		AccountID: accountID,
		Name:      name,
		Color:     domain.DefaultProfileColors[0],
		Active:    true,
	}
	require.NoError(t, s.Profiles().CreateProfile(context.Background(), p))
	return p
}

// seedEmbeddedAccount creates a pre-migration account whose profiles live
// in the preferences blob, alongside an unrelated sibling key that must
// survive every write.
func seedEmbeddedAccount(t *testing.T, s store.Store, email string, profileNames ...string) domain.Account {
	t.Helper()

	type blobProfile struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Color     string    `json:"color"`
		Active    bool      `json:"active"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	var blob struct {
		Theme    string        `json:"theme"`
		Profiles []blobProfile `json:"profiles"`
	}
	blob.Theme = "dark"
	now := time.Now().UTC()
	for _, name := range profileNames {
		blob.Profiles = append(blob.Profiles, blobProfile{
			ID:        idx.New().String(),
			Name:      name,
			Color:     domain.DefaultProfileColors[0],
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	prefs, err := json.Marshal(blob)
	require.NoError(t, err)

	account := domain.Account{
		ID:            idx.New().String(),
		Email:         email,
		DisplayName:   "Legacy",
		Role:          domain.RoleUser,
		PasswordHash:  "hash",
		Preferences:   prefs,
		ProfileSchema: domain.ProfileSchemaEmbedded,
	}
	require.NoError(t, s.Accounts().CreateAccount(context.Background(), account))
	return account
}
