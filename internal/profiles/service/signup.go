package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/store"
	"github.com/readspacehq/readspace/pkg/cryptox"
	"github.com/readspacehq/readspace/pkg/idx"
	"github.com/readspacehq/readspace/pkg/slogx"
)

var (
	ErrEmailTaken    = errors.New("email_taken")
	ErrSignupInvalid = errors.New("signup_invalid")
)

// SignupOutcome reports how far account bootstrap got. Profile creation is
// best-effort: its failure never rolls back the account.
type SignupOutcome string

const (
	AccountCreated               SignupOutcome = "account_created"
	AccountCreatedProfilePending SignupOutcome = "account_created_profile_pending"
)

// fallbackProfileName is used when the signup display name is unusable as a
// profile name.
const fallbackProfileName = "Student 1"

// SignupService creates accounts and their bootstrap profile.
type SignupService struct {
	Store store.Store

	// OnProfilePending is invoked when the bootstrap profile could not be
	// created. Wired to a metrics counter by the app.
	OnProfilePending func()
}

// Signup creates a new account and then attempts to create its first
// profile, named after the display name. The two writes are deliberately
// separate: a profile failure leaves a valid, repairable account behind
// (outcome AccountCreatedProfilePending) rather than failing the signup.
func (s *SignupService) Signup(ctx context.Context, email, displayName, password, role string) (domain.Account, SignupOutcome, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(strings.ToLower(email))
	displayName = strings.TrimSpace(displayName)
	if email == "" || password == "" {
		return domain.Account{}, "", ErrSignupInvalid
	}
	if role == "" {
		role = domain.RoleUser
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.Account{}, "", err
	}

	account := domain.Account{
		ID:            idx.New().String(),
		Email:         email,
		DisplayName:   displayName,
		Role:          role,
		PasswordHash:  hash,
		ProfileSchema: domain.ProfileSchemaNormalized,
	}
	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, "", ErrEmailTaken
		}
		return domain.Account{}, "", err
	}

	profileName := displayName
	if !domain.ValidProfileName(profileName) {
		profileName = fallbackProfileName
	}

	profile := domain.Profile{
		ID:        idx.New().String(),
		AccountID: account.ID,
		Name:      profileName,
		Color:     domain.DefaultProfileColors[0],
		Active:    true,
	}
	if err := s.Store.Profiles().CreateProfile(ctx, profile); err != nil {
		l.Warn("signup bootstrap profile creation failed, account kept",
			slog.String("account_id", account.ID),
			slog.Any("error", err))
		if s.OnProfilePending != nil {
			s.OnProfilePending()
		}
		return account, AccountCreatedProfilePending, nil
	}

	if err := s.Store.Accounts().SetDefaultProfile(ctx, account.ID, &profile.ID); err != nil {
		l.Warn("signup default pointer not set",
			slog.String("account_id", account.ID),
			slog.Any("error", err))
	}

	return account, AccountCreated, nil
}
