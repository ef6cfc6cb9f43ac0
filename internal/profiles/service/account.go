package service

import (
	"context"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/store"
)

type AccountService struct {
	Store store.Store
}

// GetAccountByID fetches an account by id.
func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (domain.Account, error) {
	return s.Store.Accounts().GetAccountByID(ctx, accountID)
}

// SetOnboarded marks the account as having completed onboarding.
func (s *AccountService) SetOnboarded(ctx context.Context, accountID string) error {
	return s.Store.Accounts().SetOnboarded(ctx, accountID)
}
