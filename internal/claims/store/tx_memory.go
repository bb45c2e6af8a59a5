package store

import (
	"context"
	"sync"

	dErrors "claimsys/pkg/domain-errors"
)

// MemoryTx runs units of work against a Memory store under a coarse lock,
// restoring a snapshot on failure so callers observe the same all-or-nothing
// behavior a database rollback gives.
type MemoryTx struct {
	mu    sync.Mutex
	store *Memory
}

func NewMemoryTx(s *Memory) *MemoryTx {
	return &MemoryTx{store: s}
}

func (t *MemoryTx) RunInTx(ctx context.Context, fn func(s Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	snap := t.store.snapshot()
	if err := fn(t.store); err != nil {
		t.store.restore(snap)
		if dErrors.IsDomain(err) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeStorage, "storage failure")
	}
	return nil
}
