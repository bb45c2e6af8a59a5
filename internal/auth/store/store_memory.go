package store

import (
	"context"
	"sync"

	"claimsys/internal/auth"
	dErrors "claimsys/pkg/domain-errors"
)

// Memory is a map-backed login user store for tests.
type Memory struct {
	mu    sync.RWMutex
	users map[string]auth.LoginUser
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]auth.LoginUser)}
}

func (s *Memory) Add(u auth.LoginUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Username] = u
}

func (s *Memory) FindByUsername(_ context.Context, username string) (*auth.LoginUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
	}
	return &u, nil
}
