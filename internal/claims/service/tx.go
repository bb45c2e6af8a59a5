package service

import (
	"context"

	"claimsys/internal/claims/store"
)

// StoreTx provides the transactional boundary for a unit of work. The store
// handed to fn is scoped to the transaction: every read and write fn performs
// shares its visibility, so a read-validate-write-revalidate sequence is
// atomic relative to other units of work. Implementations wrap a database
// transaction or, in-memory, a coarse lock with snapshot rollback.
//
// An error from fn aborts the transaction. Domain-coded errors pass through
// unchanged; anything else is normalized to a storage fault before the caller
// sees it.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(s store.Store) error) error
}
