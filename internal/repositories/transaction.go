package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-inventory-store/internal/models"
)

const getTransactionByID = `-- name: GetTransactionByID :one
SELECT id, user_id, item_id, transaction_type, quantity, amount, notes, created_at FROM transactions
WHERE id = $1
LIMIT 1`

const listTransactions = `-- name: ListTransactions :many
SELECT id, user_id, item_id, transaction_type, quantity, amount, notes, created_at FROM transactions
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

const listTransactionsByUserID = `-- name: ListTransactionsByUserID :many
SELECT id, user_id, item_id, transaction_type, quantity, amount, notes, created_at FROM transactions
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

const listTransactionsByItemID = `-- name: ListTransactionsByItemID :many
SELECT id, user_id, item_id, transaction_type, quantity, amount, notes, created_at FROM transactions
WHERE item_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

const countTransactions = `-- name: CountTransactions :one
SELECT COUNT(*) FROM transactions`

const countTransactionsByUserID = `-- name: CountTransactionsByUserID :one
SELECT COUNT(*) FROM transactions
WHERE user_id = $1`

const createTransaction = `-- name: CreateTransaction :one
INSERT INTO transactions (
    user_id,
    item_id,
    transaction_type,
    quantity,
    amount,
    notes
) VALUES (
    $1, $2, $3, $4, $5, $6
) RETURNING id, user_id, item_id, transaction_type, quantity, amount, notes, created_at`

const getTransactionsByDateRange = `-- name: GetTransactionsByDateRange :many
SELECT id, user_id, item_id, transaction_type, quantity, amount, notes, created_at FROM transactions
WHERE created_at >= $1 AND created_at <= $2
ORDER BY created_at DESC`

const getUserTransactionSummary = `-- name: GetUserTransactionSummary :one
SELECT
    user_id,
    COUNT(*) as total_transactions,
    SUM(amount) as total_amount,
    SUM(CASE WHEN transaction_type = 'purchase' THEN 1 ELSE 0 END) as purchase_count,
    SUM(CASE WHEN transaction_type = 'refund' THEN 1 ELSE 0 END) as refund_count
FROM transactions
WHERE user_id = $1
GROUP BY user_id`

// TransactionRepository runs the transactions statements. Transactions are
// immutable once created, so there is no update or delete.
type TransactionRepository struct {
	base
}

// NewTransactionRepository creates a TransactionRepository. txGetter may be nil.
func NewTransactionRepository(db sqlx.ExtContext, txGetter TxGetter) *TransactionRepository {
	return &TransactionRepository{base{db: db, txGetter: txGetter}}
}

func (r *TransactionRepository) GetByID(ctx context.Context, arg models.GetTransactionByIDParams) (*models.Transaction, error) {
	return queryOne(ctx, r.executor(ctx), getTransactionByID, scanTransaction, arg.ID)
}

// List returns a page of transactions, newest first.
func (r *TransactionRepository) List(ctx context.Context, arg models.ListTransactionsParams) ([]models.Transaction, error) {
	return queryMany(ctx, r.executor(ctx), listTransactions, scanTransaction, arg.Limit, arg.Offset)
}

func (r *TransactionRepository) ListByUserID(ctx context.Context, arg models.ListTransactionsByUserIDParams) ([]models.Transaction, error) {
	return queryMany(ctx, r.executor(ctx), listTransactionsByUserID, scanTransaction, arg.UserID, arg.Limit, arg.Offset)
}

func (r *TransactionRepository) ListByItemID(ctx context.Context, arg models.ListTransactionsByItemIDParams) ([]models.Transaction, error) {
	return queryMany(ctx, r.executor(ctx), listTransactionsByItemID, scanTransaction, arg.ItemID, arg.Limit, arg.Offset)
}

func (r *TransactionRepository) Count(ctx context.Context) (*models.Count, error) {
	return queryOne(ctx, r.executor(ctx), countTransactions, scanCount)
}

func (r *TransactionRepository) CountByUserID(ctx context.Context, arg models.CountTransactionsByUserIDParams) (*models.Count, error) {
	return queryOne(ctx, r.executor(ctx), countTransactionsByUserID, scanCount, arg.UserID)
}

func (r *TransactionRepository) Create(ctx context.Context, arg models.CreateTransactionParams) (*models.Transaction, error) {
	return queryOne(ctx, r.executor(ctx), createTransaction, scanTransaction,
		arg.UserID,
		arg.ItemID,
		arg.TransactionType,
		arg.Quantity,
		arg.Amount,
		arg.Notes,
	)
}

// GetByDateRange returns transactions created within [arg.From, arg.To], newest first.
func (r *TransactionRepository) GetByDateRange(ctx context.Context, arg models.GetTransactionsByDateRangeParams) ([]models.Transaction, error) {
	return queryMany(ctx, r.executor(ctx), getTransactionsByDateRange, scanTransaction, arg.From, arg.To)
}

// GetUserSummary aggregates the user's transactions. A user without any
// transactions has no group and yields nil.
func (r *TransactionRepository) GetUserSummary(ctx context.Context, arg models.GetUserTransactionSummaryParams) (*models.UserTransactionSummary, error) {
	return queryOne(ctx, r.executor(ctx), getUserTransactionSummary, scanUserTransactionSummary, arg.UserID)
}
