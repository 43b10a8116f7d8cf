package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type txKey struct{}

// ext returns the transaction bound to ctx if one is present, otherwise db.
// Repository methods go through ext so they transparently join a transaction
// opened by Transactor.
func ext(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// Transactor runs functions inside a database transaction serialized per user.
type Transactor struct {
	db *sqlx.DB
}

// NewTransactor creates a new Transactor.
func NewTransactor(db *sqlx.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinUserTx runs fn inside a transaction holding a per-user advisory lock.
// Two concurrent calls for the same user serialize; calls for different users
// proceed in parallel. Repository methods called with the context passed to fn
// execute on the transaction. The lock is released on commit or rollback.
func (t *Transactor) WithinUserTx(ctx context.Context, userID int64, fn func(ctx context.Context) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, userID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("acquire user lock %d: %w", userID, err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
