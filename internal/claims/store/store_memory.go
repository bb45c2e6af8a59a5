package store

import (
	"context"
	"sync"

	"claimsys/internal/claims"
	dErrors "claimsys/pkg/domain-errors"
)

// Memory is a map-backed Store for unit tests and local development. It
// mirrors the Postgres semantics that matter to callers: cascade deletes along
// both ownership edges and not-found on point-lookup misses.
type Memory struct {
	mu            sync.RWMutex
	policyholders map[string]claims.Policyholder
	policies      map[string]claims.Policy
	claims        map[string]claims.Claim
}

func NewMemory() *Memory {
	return &Memory{
		policyholders: make(map[string]claims.Policyholder),
		policies:      make(map[string]claims.Policy),
		claims:        make(map[string]claims.Claim),
	}
}

func (s *Memory) InsertPolicyholder(_ context.Context, p *claims.Policyholder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	cp.DateOfBirth = claims.DateOnly(cp.DateOfBirth)
	s.policyholders[p.ID] = cp
	return nil
}

func (s *Memory) GetPolicyholder(_ context.Context, id string) (*claims.Policyholder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.policyholders[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "policyholder not found")
	}
	return &p, nil
}

func (s *Memory) ListPolicyholders(_ context.Context) ([]*claims.Policyholder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*claims.Policyholder, 0, len(s.policyholders))
	for _, p := range s.policyholders {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Memory) UpdatePolicyholder(_ context.Context, id string, patch claims.PolicyholderPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.policyholders[id]
	if !ok {
		return nil // matches SQL UPDATE on a missing row: zero rows touched
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.ContactNumber != nil {
		p.ContactNumber = *patch.ContactNumber
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.DateOfBirth != nil {
		p.DateOfBirth = claims.DateOnly(*patch.DateOfBirth)
	}
	s.policyholders[id] = p
	return nil
}

func (s *Memory) DeletePolicyholder(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.policyholders[id]; !ok {
		return false, nil
	}
	delete(s.policyholders, id)
	for pid, pol := range s.policies {
		if pol.PolicyholderID == id {
			delete(s.policies, pid)
			s.deleteClaimsOfPolicy(pid)
		}
	}
	return true, nil
}

func (s *Memory) InsertPolicy(_ context.Context, pol *claims.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *pol
	cp.StartDate = claims.DateOnly(cp.StartDate)
	cp.EndDate = claims.DateOnly(cp.EndDate)
	s.policies[pol.ID] = cp
	return nil
}

func (s *Memory) GetPolicy(_ context.Context, id string) (*claims.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pol, ok := s.policies[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "policy not found")
	}
	return &pol, nil
}

func (s *Memory) ListPolicies(_ context.Context) ([]*claims.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*claims.Policy, 0, len(s.policies))
	for _, pol := range s.policies {
		cp := pol
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Memory) UpdatePolicy(_ context.Context, id string, patch claims.PolicyPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pol, ok := s.policies[id]
	if !ok {
		return nil
	}
	if patch.Type != nil {
		pol.Type = *patch.Type
	}
	if patch.StartDate != nil {
		pol.StartDate = claims.DateOnly(*patch.StartDate)
	}
	if patch.EndDate != nil {
		pol.EndDate = claims.DateOnly(*patch.EndDate)
	}
	if patch.CoverageAmount != nil {
		pol.CoverageAmount = *patch.CoverageAmount
	}
	if patch.Premium != nil {
		pol.Premium = *patch.Premium
	}
	s.policies[id] = pol
	return nil
}

func (s *Memory) DeletePolicy(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.policies[id]; !ok {
		return false, nil
	}
	delete(s.policies, id)
	s.deleteClaimsOfPolicy(id)
	return true, nil
}

func (s *Memory) InsertClaim(_ context.Context, c *claims.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	cp.DateOfIncident = claims.DateOnly(cp.DateOfIncident)
	cp.DateSubmitted = claims.DateOnly(cp.DateSubmitted)
	s.claims[c.ID] = cp
	return nil
}

func (s *Memory) GetClaim(_ context.Context, id string) (*claims.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.claims[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "claim not found")
	}
	if _, err := claims.ParseClaimStatus(string(c.Status)); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Memory) ListClaims(_ context.Context) ([]*claims.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*claims.Claim, 0, len(s.claims))
	for _, c := range s.claims {
		cp := c
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Memory) UpdateClaim(_ context.Context, id string, patch claims.ClaimPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.claims[id]
	if !ok {
		return nil
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Amount != nil {
		c.Amount = *patch.Amount
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	s.claims[id] = c
	return nil
}

func (s *Memory) DeleteClaim(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claims[id]; !ok {
		return false, nil
	}
	delete(s.claims, id)
	return true, nil
}

// caller holds s.mu
func (s *Memory) deleteClaimsOfPolicy(policyID string) {
	for cid, c := range s.claims {
		if c.PolicyID == policyID {
			delete(s.claims, cid)
		}
	}
}

// snapshot and restore give the in-memory transaction runner all-or-nothing
// semantics matching a database rollback.

func (s *Memory) snapshot() memorySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := memorySnapshot{
		policyholders: make(map[string]claims.Policyholder, len(s.policyholders)),
		policies:      make(map[string]claims.Policy, len(s.policies)),
		claims:        make(map[string]claims.Claim, len(s.claims)),
	}
	for k, v := range s.policyholders {
		snap.policyholders[k] = v
	}
	for k, v := range s.policies {
		snap.policies[k] = v
	}
	for k, v := range s.claims {
		snap.claims[k] = v
	}
	return snap
}

func (s *Memory) restore(snap memorySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policyholders = snap.policyholders
	s.policies = snap.policies
	s.claims = snap.claims
}

type memorySnapshot struct {
	policyholders map[string]claims.Policyholder
	policies      map[string]claims.Policy
	claims        map[string]claims.Claim
}
