package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/store"
	"github.com/readspacehq/readspace/pkg/slogx"
)

// ErrOwnershipDenied is returned whenever a caller is not allowed to act on
// a resource. Callers cannot distinguish "not yours" from "does not exist".
var ErrOwnershipDenied = errors.New("ownership_denied")

// OwnershipService answers "may this account act through this profile". It
// fails closed: any ambiguity, missing row, or store error denies. Errors
// are logged, never surfaced as an allow.
type OwnershipService struct {
	Store store.Store
}

// IsOwner reports whether profileID exists, is active, and belongs to the
// caller's account.
func (s *OwnershipService) IsOwner(ctx context.Context, accountID, profileID string) bool {
	l := slogx.FromContext(ctx)

	if accountID == "" || profileID == "" {
		return false
	}

	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			l.Error("ownership check failed loading account", slog.Any("error", err))
		}
		return false
	}

	profile, err := store.ProfilesFor(s.Store, account).GetProfile(ctx, accountID, profileID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			l.Error("ownership check failed loading profile", slog.Any("error", err))
		}
		return false
	}

	return profile.Active && profile.AccountID == accountID
}

// AuthorizeResource gates access to a scoped resource by its owner
// reference. Profile-referenced resources go through IsOwner; legacy rows
// that still reference an account directly are allowed only to that
// account. Unknown reference shapes deny.
func (s *OwnershipService) AuthorizeResource(ctx context.Context, accountID string, ref domain.ResourceRef) error {
	switch r := ref.(type) {
	case domain.ProfileRef:
		if s.IsOwner(ctx, accountID, r.ProfileID) {
			return nil
		}
	case domain.LegacyAccountRef:
		if accountID != "" && r.AccountID == accountID {
			return nil
		}
	}
	return ErrOwnershipDenied
}
