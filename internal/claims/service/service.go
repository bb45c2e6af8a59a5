package service

import (
	"context"
	"fmt"
	"time"

	"claimsys/internal/claims"
	"claimsys/internal/claims/store"
	"claimsys/internal/platform/metrics"
	dErrors "claimsys/pkg/domain-errors"
)

// Service exposes the record operations for policyholders, policies, and
// claims. It is stateless and explicitly constructed; all mutable state lives
// in the store behind the transaction runner. Each public operation is
// exactly one unit of work.
type Service struct {
	tx        StoreTx
	validator *claims.Validator
	metrics   *metrics.Metrics
	clock     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for claim submission defaults. The validator
// carries its own clock; wire the same one in tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithMetrics attaches Prometheus counters. Nil-safe when omitted.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(tx StoreTx, validator *claims.Validator, opts ...Option) *Service {
	s := &Service{
		tx:        tx,
		validator: validator,
		clock:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Policyholder operations

func (s *Service) CreatePolicyholder(ctx context.Context, p *claims.Policyholder) error {
	err := s.tx.RunInTx(ctx, func(st store.Store) error {
		if err := s.validator.Policyholder(p); err != nil {
			return err
		}
		return st.InsertPolicyholder(ctx, p)
	})
	return s.observe(ctx, "policyholder", "create", err)
}

func (s *Service) GetPolicyholder(ctx context.Context, id string) (*claims.Policyholder, error) {
	var out *claims.Policyholder
	err := s.tx.RunInTx(ctx, func(st store.Store) error {
		p, err := st.GetPolicyholder(ctx, id)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

func (s *Service) ListPolicyholders(ctx context.Context) ([]*claims.Policyholder, error) {
	var out []*claims.Policyholder
	err := s.tx.RunInTx(ctx, func(st store.Store) error {
		ps, err := st.ListPolicyholders(ctx)
		if err != nil {
			return err
		}
		out = ps
		return nil
	})
	return out, err
}

// UpdatePolicyholder rewrites the supplied fields, then re-reads the record
// and re-runs full validation inside the same transaction. A revalidation
// failure rolls the write back.
func (s *Service) UpdatePolicyholder(ctx context.Context, id string, patch claims.PolicyholderPatch) error {
	err := s.tx.RunInTx(ctx, func(st store.Store) error {
		if _, err := st.GetPolicyholder(ctx, id); err != nil {
			return missingAsValidation(err, "policyholder", id)
		}
		if err := st.UpdatePolicyholder(ctx, id, patch); err != nil {
			return err
		}
		updated, err := st.GetPolicyholder(ctx, id)
		if err != nil {
			return err
		}
		return s.validator.Policyholder(updated)
	})
	return s.observe(ctx, "policyholder", "update", err)
}

func (s *Service) DeletePolicyholder(ctx context.Context, id string) error {
	return s.tx.RunInTx(ctx, func(st store.Store) error {
		deleted, err := st.DeletePolicyholder(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return notExist("policyholder", id)
		}
		return nil
	})
}

// Policy operations

func (s *Service) CreatePolicy(ctx context.Context, pol *claims.Policy) error {
	err := s.tx.RunInTx(ctx, func(st store.Store) error {
		holder, err := s.resolvePolicyholder(ctx, st, pol.PolicyholderID)
		if err != nil {
			return err
		}
		if err := s.validator.Policy(pol, holder); err != nil {
			return err
		}
		return st.InsertPolicy(ctx, pol)
	})
	return s.observe(ctx, "policy", "create", err)
}

func (s *Service) GetPolicy(ctx context.Context, id string) (*claims.Policy, error) {
	var out *claims.Policy
	err := s.tx.RunInTx(ctx, func(st store.Store) error {
		pol, err := st.GetPolicy(ctx, id)
		if err != nil {
			return err
		}
		out = pol
		return nil
	})
	return out, err
}

func (s *Service) ListPolicies(ctx context.Context) ([]*claims.Policy, error) {
	var out []*claims.Policy
	err := s.tx.RunInTx(ctx, func(st store.Store) error {
		pols, err := st.ListPolicies(ctx)
		if err != nil {
			return err
		}
		out = pols
		return nil
	})
	return out, err
}

// UpdatePolicy revalidates the entire updated record against all policy
// rules, not just the changed fields.
func (s *Service) UpdatePolicy(ctx context.Context, id string, patch claims.PolicyPatch) error {
	err := s.tx.RunInTx(ctx, func(st store.Store) error {
		if _, err := st.GetPolicy(ctx, id); err != nil {
			return missingAsValidation(err, "policy", id)
		}
		if err := st.UpdatePolicy(ctx, id, patch); err != nil {
			return err
		}
		updated, err := st.GetPolicy(ctx, id)
		if err != nil {
			return err
		}
		holder, err := s.resolvePolicyholder(ctx, st, updated.PolicyholderID)
		if err != nil {
			return err
		}
		return s.validator.Policy(updated, holder)
	})
	return s.observe(ctx, "policy", "update", err)
}

func (s *Service) DeletePolicy(ctx context.Context, id string) error {
	return s.tx.RunInTx(ctx, func(st store.Store) error {
		deleted, err := st.DeletePolicy(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return notExist("policy", id)
		}
		return nil
	})
}

// Claim operations

// CreateClaim applies server-side defaults before validation: a zero status
// becomes Submitted and a zero submission date becomes today.
func (s *Service) CreateClaim(ctx context.Context, c *claims.Claim) error {
	err := s.tx.RunInTx(ctx, func(st store.Store) error {
		if c.Status == "" {
			c.Status = claims.StatusSubmitted
		}
		if c.DateSubmitted.IsZero() {
			c.DateSubmitted = claims.DateOnly(s.clock())
		}
		pol, err := s.resolvePolicy(ctx, st, c.PolicyID)
		if err != nil {
			return err
		}
		if err := s.validator.Claim(c, pol); err != nil {
			return err
		}
		return st.InsertClaim(ctx, c)
	})
	return s.observe(ctx, "claim", "create", err)
}

func (s *Service) GetClaim(ctx context.Context, id string) (*claims.Claim, error) {
	var out *claims.Claim
	err := s.tx.RunInTx(ctx, func(st store.Store) error {
		c, err := st.GetClaim(ctx, id)
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	return out, err
}

func (s *Service) ListClaims(ctx context.Context) ([]*claims.Claim, error) {
	var out []*claims.Claim
	err := s.tx.RunInTx(ctx, func(st store.Store) error {
		cs, err := st.ListClaims(ctx)
		if err != nil {
			return err
		}
		out = cs
		return nil
	})
	return out, err
}

// UpdateClaim allows any status transition; the lifecycle imposes no
// terminal states.
func (s *Service) UpdateClaim(ctx context.Context, id string, patch claims.ClaimPatch) error {
	err := s.tx.RunInTx(ctx, func(st store.Store) error {
		if _, err := st.GetClaim(ctx, id); err != nil {
			return missingAsValidation(err, "claim", id)
		}
		if err := st.UpdateClaim(ctx, id, patch); err != nil {
			return err
		}
		updated, err := st.GetClaim(ctx, id)
		if err != nil {
			return err
		}
		pol, err := s.resolvePolicy(ctx, st, updated.PolicyID)
		if err != nil {
			return err
		}
		return s.validator.Claim(updated, pol)
	})
	return s.observe(ctx, "claim", "update", err)
}

func (s *Service) DeleteClaim(ctx context.Context, id string) error {
	return s.tx.RunInTx(ctx, func(st store.Store) error {
		deleted, err := st.DeleteClaim(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return notExist("claim", id)
		}
		return nil
	})
}

// resolvePolicyholder fetches the parent for policy validation. A miss maps
// to nil so the validator reports the missing reference; other errors
// propagate.
func (s *Service) resolvePolicyholder(ctx context.Context, st store.Store, id string) (*claims.Policyholder, error) {
	holder, err := st.GetPolicyholder(ctx, id)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return holder, nil
}

func (s *Service) resolvePolicy(ctx context.Context, st store.Store, id string) (*claims.Policy, error) {
	pol, err := st.GetPolicy(ctx, id)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return pol, nil
}

func (s *Service) observe(_ context.Context, entity, op string, err error) error {
	if s.metrics == nil {
		return err
	}
	switch {
	case err == nil:
		s.metrics.RecordWrite(entity, op)
	case dErrors.Is(err, dErrors.CodeValidation):
		s.metrics.RecordRejection(entity, "validation")
	case dErrors.Is(err, dErrors.CodeInvariantViolation):
		s.metrics.RecordRejection(entity, "business_rule")
	}
	return err
}

func notExist(entity, id string) error {
	return dErrors.New(dErrors.CodeValidation,
		fmt.Sprintf("%s with id %s does not exist", entity, id))
}

// missingAsValidation keeps update-of-missing-record a validation failure,
// distinct from a read miss.
func missingAsValidation(err error, entity, id string) error {
	if dErrors.Is(err, dErrors.CodeNotFound) {
		return notExist(entity, id)
	}
	return err
}
