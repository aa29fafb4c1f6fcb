package models

import (
	"time"

	"github.com/google/uuid"
)

// Known transaction types
const (
	TransactionTypePurchase = "purchase"
	TransactionTypeRefund   = "refund"
)

// Transaction represents an immutable row of the transactions table
type Transaction struct {
	ID              uuid.UUID `json:"id" db:"id"`                             // Primary key
	UserID          uuid.UUID `json:"user_id" db:"user_id"`                   // Owning user
	ItemID          uuid.UUID `json:"item_id" db:"item_id"`                   // Item moved by the transaction
	TransactionType string    `json:"transaction_type" db:"transaction_type"` // "purchase" or "refund"
	Quantity        int32     `json:"quantity" db:"quantity"`                 // Units moved
	Amount          string    `json:"amount" db:"amount"`                     // Total amount, canonical decimal text
	Notes           *string   `json:"notes" db:"notes"`                       // Optional notes
	CreatedAt       time.Time `json:"created_at" db:"created_at"`             // Creation timestamp
}

// UserTransactionSummary aggregates all transactions of one user.
// Aggregates are kept as text so no precision is lost on the way out of the store.
type UserTransactionSummary struct {
	UserID            uuid.UUID `json:"user_id"`
	TotalTransactions string    `json:"total_transactions"`
	TotalAmount       string    `json:"total_amount"`
	PurchaseCount     string    `json:"purchase_count"`
	RefundCount       string    `json:"refund_count"`
}

type GetTransactionByIDParams struct {
	ID uuid.UUID `json:"id"`
}

type ListTransactionsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

type ListTransactionsByUserIDParams struct {
	UserID uuid.UUID `json:"user_id"`
	Limit  int32     `json:"limit"`
	Offset int32     `json:"offset"`
}

type ListTransactionsByItemIDParams struct {
	ItemID uuid.UUID `json:"item_id"`
	Limit  int32     `json:"limit"`
	Offset int32     `json:"offset"`
}

type CountTransactionsByUserIDParams struct {
	UserID uuid.UUID `json:"user_id"`
}

type CreateTransactionParams struct {
	UserID          uuid.UUID `json:"user_id"`
	ItemID          uuid.UUID `json:"item_id"`
	TransactionType string    `json:"transaction_type"`
	Quantity        int32     `json:"quantity"`
	Amount          string    `json:"amount"`
	Notes           *string   `json:"notes"`
}

// GetTransactionsByDateRangeParams bounds created_at, both ends inclusive.
type GetTransactionsByDateRangeParams struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type GetUserTransactionSummaryParams struct {
	UserID uuid.UUID `json:"user_id"`
}
