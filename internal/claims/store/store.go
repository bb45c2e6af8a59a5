package store

import (
	"context"

	"claimsys/internal/claims"
)

// Store is the repository surface for the three entity classes. Get returns a
// CodeNotFound error on a miss; Delete reports whether a row was removed so
// the service can treat a missing id as a validation failure rather than a
// silent no-op. Update writes only the patch's supplied columns.
//
// Implementations never catch their own errors; classification happens in the
// transaction runner and the service layer.
type Store interface {
	InsertPolicyholder(ctx context.Context, p *claims.Policyholder) error
	GetPolicyholder(ctx context.Context, id string) (*claims.Policyholder, error)
	ListPolicyholders(ctx context.Context) ([]*claims.Policyholder, error)
	UpdatePolicyholder(ctx context.Context, id string, patch claims.PolicyholderPatch) error
	DeletePolicyholder(ctx context.Context, id string) (bool, error)

	InsertPolicy(ctx context.Context, pol *claims.Policy) error
	GetPolicy(ctx context.Context, id string) (*claims.Policy, error)
	ListPolicies(ctx context.Context) ([]*claims.Policy, error)
	UpdatePolicy(ctx context.Context, id string, patch claims.PolicyPatch) error
	DeletePolicy(ctx context.Context, id string) (bool, error)

	InsertClaim(ctx context.Context, c *claims.Claim) error
	GetClaim(ctx context.Context, id string) (*claims.Claim, error)
	ListClaims(ctx context.Context) ([]*claims.Claim, error)
	UpdateClaim(ctx context.Context, id string, patch claims.ClaimPatch) error
	DeleteClaim(ctx context.Context, id string) (bool, error)
}
