// Package dbtx carries a database transaction through a context so several
// repository calls can share it.
package dbtx

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-inventory-store/internal/logger"
)

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// WithTx stores a transaction in the context
func WithTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// FromContext retrieves the transaction from the context. Returns nil if not present.
func FromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}

// Runner runs functions inside a transaction of DB.
type Runner struct {
	DB *sqlx.DB
}

func NewRunner(db *sqlx.DB) *Runner {
	return &Runner{DB: db}
}

// Run begins a transaction, hands fn a context carrying it and commits when
// fn returns nil. Any error or panic rolls the transaction back. A panic is
// re-raised after the rollback.
func (r *Runner) Run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return err
	}

	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			panic(rec)
		}
	}()

	if err := fn(WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Log.Errorw("failed to roll back transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit transaction", "error", err)
		return err
	}
	return nil
}
