// Package repositories holds one query module per table. Every method runs a
// single fixed statement with positional arguments and maps the returned rows
// by column position.
package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-inventory-store/internal/logger"
)

// TxGetter returns the transaction bound to ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

// scanner is satisfied by *sqlx.Rows and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

type scanFunc[T any] func(sc scanner) (T, error)

// base selects the executor for a call: the context transaction when there
// is one, the store client otherwise.
type base struct {
	db       sqlx.ExtContext
	txGetter TxGetter
}

func (b base) executor(ctx context.Context) sqlx.ExtContext {
	if b.txGetter != nil {
		if tx := b.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return b.db
}

// queryOne returns the single mapped row. Zero rows and more than one row
// both yield nil without an error.
func queryOne[T any](ctx context.Context, ex sqlx.ExtContext, query string, scan scanFunc[T], args ...any) (*T, error) {
	items, err := collect(ctx, ex, query, scan, args...)
	if err != nil {
		logQuery(query, args, nil, err)
		return nil, err
	}
	if len(items) != 1 {
		logQuery(query, args, len(items), nil)
		return nil, nil
	}

	item := items[0]
	logQuery(query, args, item, nil)
	return &item, nil
}

// queryMany returns all mapped rows in statement order, never nil.
func queryMany[T any](ctx context.Context, ex sqlx.ExtContext, query string, scan scanFunc[T], args ...any) ([]T, error) {
	items, err := collect(ctx, ex, query, scan, args...)
	logQuery(query, args, len(items), err)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// execNoResult runs a statement that returns no rows.
func execNoResult(ctx context.Context, ex sqlx.ExtContext, query string, args ...any) error {
	res, err := ex.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, args, rowsAffected, err)
	return err
}

func collect[T any](ctx context.Context, ex sqlx.ExtContext, query string, scan scanFunc[T], args ...any) ([]T, error) {
	rows, err := ex.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// logQuery logs the statement in a single line with its args, result and error.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
