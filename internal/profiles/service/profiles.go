package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/store"
	"github.com/readspacehq/readspace/pkg/idx"
	"github.com/readspacehq/readspace/pkg/slogx"
)

var (
	ErrProfileNotFound     = errors.New("profile_not_found")
	ErrProfileNameInvalid  = errors.New("profile_name_invalid")
	ErrProfileNameTaken    = errors.New("profile_name_taken")
	ErrProfileLimitReached = errors.New("profile_limit_reached")
	ErrLastProfile         = errors.New("last_profile")
)

// ProfileService owns the profile lifecycle: create, update, soft delete,
// and switching the active profile. Every operation is scoped to the
// calling account; cross-account ids surface as not-found.
type ProfileService struct {
	Store store.Store
}

// List returns the account's active profiles, most recently accessed first.
func (s *ProfileService) List(ctx context.Context, accountID string) ([]domain.Profile, error) {
	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return store.ProfilesFor(s.Store, account).ListActiveProfiles(ctx, accountID)
}

// Get returns one of the account's profiles, active or not.
func (s *ProfileService) Get(ctx context.Context, accountID, profileID string) (domain.Profile, error) {
	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return domain.Profile{}, err
	}
	p, err := store.ProfilesFor(s.Store, account).GetProfile(ctx, accountID, profileID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Profile{}, ErrProfileNotFound
	}
	return p, err
}

// Create adds a new active profile. Name is trimmed and must be 1-50 chars
// and unique among the account's active profiles; the account may hold at
// most MaxActiveProfiles active profiles. An empty color is assigned
// round-robin from the default palette.
func (s *ProfileService) Create(ctx context.Context, accountID, name, color string) (domain.Profile, error) {
	name = strings.TrimSpace(name)
	if !domain.ValidProfileName(name) {
		return domain.Profile{}, ErrProfileNameInvalid
	}

	var created domain.Profile
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		account, err := tx.Accounts().GetAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		profiles := store.ProfilesFor(tx, account)

		count, err := profiles.CountActiveProfiles(ctx, accountID)
		if err != nil {
			return err
		}
		if count >= domain.MaxActiveProfiles {
			return ErrProfileLimitReached
		}

		if color == "" {
			color = domain.DefaultProfileColors[count%len(domain.DefaultProfileColors)]
		}

		created = domain.Profile{
			ID:        idx.New().String(),
			AccountID: accountID,
			Name:      name,
			Color:     color,
			Active:    true,
		}
		if err := profiles.CreateProfile(ctx, created); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrProfileNameTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Profile{}, err
	}
	return s.Get(ctx, accountID, created.ID)
}

// Update applies a patch to the profile's mutable fields. A rename is
// re-validated against the same rules as Create.
func (s *ProfileService) Update(ctx context.Context, accountID, profileID string, patch domain.ProfilePatch) (domain.Profile, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if !domain.ValidProfileName(trimmed) {
			return domain.Profile{}, ErrProfileNameInvalid
		}
		patch.Name = &trimmed
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		account, err := tx.Accounts().GetAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		profiles := store.ProfilesFor(tx, account)

		p, err := profiles.GetProfile(ctx, accountID, profileID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProfileNotFound
			}
			return err
		}

		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Color != nil {
			p.Color = *patch.Color
		}
		if patch.Preferences != nil {
			p.Preferences = patch.Preferences
		}

		if err := profiles.UpdateProfile(ctx, p); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrProfileNameTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Profile{}, err
	}
	return s.Get(ctx, accountID, profileID)
}

// Delete soft-deletes a profile. The last remaining active profile cannot
// be deleted. When the deleted profile is the account's default pointer the
// pointer moves to the most recently used survivor.
func (s *ProfileService) Delete(ctx context.Context, accountID, profileID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		account, err := tx.Accounts().GetAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		profiles := store.ProfilesFor(tx, account)

		p, err := profiles.GetProfile(ctx, accountID, profileID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProfileNotFound
			}
			return err
		}
		if !p.Active {
			// Deleting an already-deleted profile is a no-op.
			return nil
		}

		count, err := profiles.CountActiveProfiles(ctx, accountID)
		if err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastProfile
		}

		if err := profiles.SetProfileActive(ctx, accountID, profileID, false); err != nil {
			return err
		}

		if account.DefaultProfileID != nil && *account.DefaultProfileID == profileID {
			survivors, err := profiles.ListActiveProfiles(ctx, accountID)
			if err != nil {
				return err
			}
			var next *string
			if len(survivors) > 0 {
				next = &survivors[0].ID
			}
			if err := tx.Accounts().SetDefaultProfile(ctx, accountID, next); err != nil {
				return err
			}
		}
		return nil
	})
}

// SwitchActive makes the profile the account's active one: it stamps
// last_accessed_at and persists the account-level default pointer (last
// writer wins across devices). Switching to the already-active profile is
// a no-op beyond the timestamp bump.
func (s *ProfileService) SwitchActive(ctx context.Context, accountID, profileID string) (domain.Profile, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		account, err := tx.Accounts().GetAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		profiles := store.ProfilesFor(tx, account)

		p, err := profiles.GetProfile(ctx, accountID, profileID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProfileNotFound
			}
			return err
		}
		if !p.Active {
			return ErrProfileNotFound
		}

		if err := profiles.TouchLastAccessed(ctx, accountID, profileID, now); err != nil {
			return err
		}
		return tx.Accounts().SetDefaultProfile(ctx, accountID, &profileID)
	})
	if err != nil {
		return domain.Profile{}, err
	}

	l.Debug("switched active profile",
		slog.String("account_id", accountID),
		slog.String("profile_id", profileID))
	return s.Get(ctx, accountID, profileID)
}
