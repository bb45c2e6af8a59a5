package store

import (
	"context"
	"database/sql"
	"time"

	"claimsys/internal/platform/metrics"
	dErrors "claimsys/pkg/domain-errors"
)

const defaultTxTimeout = 5 * time.Second

// PostgresTxRunner runs each unit of work in one database transaction. The unit's
// reads and writes all go through the tx-scoped store, so a read-validate-
// write-revalidate sequence either commits whole or leaves no trace. Rollback
// is deferred unconditionally; after a successful commit it is a no-op.
type PostgresTxRunner struct {
	db      *sql.DB
	timeout time.Duration
	metrics *metrics.Metrics
}

// PostgresTxOption configures a PostgresTxRunner.
type PostgresTxOption func(*PostgresTxRunner)

// WithTxMetrics attaches rollback counters. Nil-safe when omitted.
func WithTxMetrics(m *metrics.Metrics) PostgresTxOption {
	return func(t *PostgresTxRunner) { t.metrics = m }
}

// WithTxTimeout overrides the default per-unit-of-work deadline.
func WithTxTimeout(d time.Duration) PostgresTxOption {
	return func(t *PostgresTxRunner) {
		if d > 0 {
			t.timeout = d
		}
	}
}

func NewPostgresTxRunner(db *sql.DB, opts ...PostgresTxOption) *PostgresTxRunner {
	t := &PostgresTxRunner{db: db}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

func (t *PostgresTxRunner) RunInTx(ctx context.Context, fn func(s Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorage, "begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(NewPostgresTx(tx)); err != nil {
		if t.metrics != nil {
			t.metrics.RecordRollback()
		}
		return normalize(err)
	}

	if err := tx.Commit(); err != nil {
		if t.metrics != nil {
			t.metrics.RecordRollback()
		}
		return dErrors.Wrap(err, dErrors.CodeStorage, "commit transaction")
	}
	return nil
}

// normalize passes validation and business-rule errors through untouched and
// folds everything else, constraint violations included, into the single
// storage-fault kind so callers never see a driver error type.
func normalize(err error) error {
	if dErrors.IsDomain(err) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeStorage, "storage failure")
}
