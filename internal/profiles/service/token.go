package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/store"
	"github.com/readspacehq/readspace/pkg/cryptox"
	"github.com/readspacehq/readspace/pkg/jwtx"
	"github.com/readspacehq/readspace/pkg/slogx"
)

var ErrInvalidCredentials = errors.New("invalid_credentials")

// TokenService implements the password grant: email+password in, signed
// bearer token out.
type TokenService struct {
	Signer    *jwtx.Signer
	Store     store.Store
	Issuer    string
	AccessTTL time.Duration
}

// TokenPair is the login response payload. There is no refresh token;
// clients re-authenticate when the access token expires.
type TokenPair struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64 // seconds
	Account     domain.Account
}

// PasswordGrant authenticates the account and issues an access token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *TokenService) PasswordGrant(ctx context.Context, email, password string) (*TokenPair, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		l.Info("password grant failed", slog.String("account_id", account.ID))
		return nil, ErrInvalidCredentials
	}

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(account.ID, account.Role, account.DisplayName, ttl, s.Issuer, time.Now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		Account:     account,
	}, nil
}
