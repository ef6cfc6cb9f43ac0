package service

import (
	"context"
	"testing"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestDocumentServiceGate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &DocumentService{Store: s, Ownership: &OwnershipService{Store: s}}

	owner := seedAccount(t, s, "owner@example.com")
	other := seedAccount(t, s, "other@example.com")
	profile := seedProfile(t, s, owner.ID, "Reading")

	doc, err := svc.Create(ctx, owner.ID, profile.ID, "My Notes", "")
	require.NoError(t, err)
	require.Equal(t, "note", doc.Kind)
	require.NotNil(t, doc.ProfileID)

	t.Run("create through foreign profile denied", func(t *testing.T) {
		_, err := svc.Create(ctx, other.ID, profile.ID, "Sneaky", "")
		require.ErrorIs(t, err, ErrOwnershipDenied)
	})

	t.Run("list gated by profile ownership", func(t *testing.T) {
		docs, err := svc.ListForProfile(ctx, owner.ID, profile.ID)
		require.NoError(t, err)
		require.Len(t, docs, 1)

		_, err = svc.ListForProfile(ctx, other.ID, profile.ID)
		require.ErrorIs(t, err, ErrOwnershipDenied)
	})

	t.Run("get hides foreign documents", func(t *testing.T) {
		_, err := svc.Get(ctx, other.ID, doc.ID)
		require.ErrorIs(t, err, ErrOwnershipDenied)
	})

	t.Run("missing document reads as denied", func(t *testing.T) {
		_, err := svc.Get(ctx, owner.ID, "no-such-doc")
		require.ErrorIs(t, err, ErrOwnershipDenied)
	})

	t.Run("legacy rows resolve through the account branch", func(t *testing.T) {
		legacy := domain.Document{
			ID:        idx.New().String(),
			AccountID: owner.ID,
			Title:     "pre-migration",
			Kind:      "note",
		}
		require.NoError(t, s.Documents().CreateDocument(ctx, legacy))

		got, err := svc.Get(ctx, owner.ID, legacy.ID)
		require.NoError(t, err)
		require.Nil(t, got.ProfileID)

		_, err = svc.Get(ctx, other.ID, legacy.ID)
		require.ErrorIs(t, err, ErrOwnershipDenied)
	})

	t.Run("delete enforces the gate", func(t *testing.T) {
		require.ErrorIs(t, svc.Delete(ctx, other.ID, doc.ID), ErrOwnershipDenied)
		require.NoError(t, svc.Delete(ctx, owner.ID, doc.ID))
	})
}
