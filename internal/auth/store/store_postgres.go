package store

import (
	"context"
	"database/sql"
	"fmt"

	"claimsys/internal/auth"
	dErrors "claimsys/pkg/domain-errors"
)

// Postgres resolves login users from the login_users relation.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) FindByUsername(ctx context.Context, username string) (*auth.LoginUser, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password FROM login_users WHERE username = $1
	`, username)
	var u auth.LoginUser
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find login user: %w", err)
	}
	return &u, nil
}
