package store

import (
	"context"

	"claimsys/internal/auth"
)

// Store resolves login users. FindByUsername returns a CodeNotFound error
// when no such user exists.
type Store interface {
	FindByUsername(ctx context.Context, username string) (*auth.LoginUser, error)
}
