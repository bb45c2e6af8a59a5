package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"claimsys/internal/auth/store"
	dErrors "claimsys/pkg/domain-errors"
)

// TokenIssuer signs credentials for authenticated users.
type TokenIssuer interface {
	GenerateToken(username string) (string, error)
}

// Service checks credentials against the login_users store and issues tokens.
// A missing user and a wrong password are indistinguishable to the caller.
type Service struct {
	store  store.Store
	issuer TokenIssuer
}

func New(store store.Store, issuer TokenIssuer) *Service {
	return &Service{store: store, issuer: issuer}
}

// Authenticate verifies username/password and returns a signed token.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return "", dErrors.Wrap(err, dErrors.CodeStorage, "authenticate user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.issuer.GenerateToken(user.Username)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "issue token")
	}
	return token, nil
}
