package services

//go:generate mockgen -source=inventory.go -destination=mock_inventory.go -package=services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-inventory-store/internal/logger"
	"github.com/sbilibin2017/gw-inventory-store/internal/models"
	"github.com/shopspring/decimal"
)

var (
	// ErrItemNotFound is returned when the ordered item does not exist.
	ErrItemNotFound = errors.New("item not found")
	// ErrInsufficientStock is returned when a purchase would drive the quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidQuantity is returned for orders of zero or fewer units.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrTransactionNotRecorded is returned when the insert produced no row.
	ErrTransactionNotRecorded = errors.New("transaction was not recorded")
)

// ItemQuantityAdjuster applies relative stock changes.
type ItemQuantityAdjuster interface {
	UpdateQuantity(ctx context.Context, arg models.UpdateItemQuantityParams) (*models.Item, error)
}

// TransactionCreator records transactions.
type TransactionCreator interface {
	Create(ctx context.Context, arg models.CreateTransactionParams) (*models.Transaction, error)
}

// TxRunner runs fn inside one database transaction.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// OrderRequest describes a purchase or a refund of Quantity units.
type OrderRequest struct {
	UserID   uuid.UUID
	ItemID   uuid.UUID
	Quantity int32
	Notes    *string
}

// InventoryService moves stock and records the matching transaction atomically.
type InventoryService struct {
	items        ItemQuantityAdjuster
	transactions TransactionCreator
	tx           TxRunner
}

// NewInventoryService creates a new InventoryService. The repositories must
// pick up the transaction that tx places in the context.
func NewInventoryService(items ItemQuantityAdjuster, transactions TransactionCreator, tx TxRunner) *InventoryService {
	return &InventoryService{items: items, transactions: transactions, tx: tx}
}

// Purchase takes req.Quantity units out of stock and records a purchase
// priced at the item's current unit price.
func (s *InventoryService) Purchase(ctx context.Context, req OrderRequest) (*models.Transaction, error) {
	return s.move(ctx, req, -req.Quantity, models.TransactionTypePurchase)
}

// Refund puts req.Quantity units back in stock and records a refund priced
// at the item's current unit price.
func (s *InventoryService) Refund(ctx context.Context, req OrderRequest) (*models.Transaction, error) {
	return s.move(ctx, req, req.Quantity, models.TransactionTypeRefund)
}

func (s *InventoryService) move(ctx context.Context, req OrderRequest, delta int32, txType string) (*models.Transaction, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var recorded *models.Transaction
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		item, err := s.items.UpdateQuantity(ctx, models.UpdateItemQuantityParams{ID: req.ItemID, Delta: delta})
		if err != nil {
			return fmt.Errorf("adjust quantity: %w", err)
		}
		if item == nil {
			return ErrItemNotFound
		}
		if item.Quantity < 0 {
			return ErrInsufficientStock
		}

		amount, err := lineAmount(item.Price, req.Quantity)
		if err != nil {
			return err
		}

		recorded, err = s.transactions.Create(ctx, models.CreateTransactionParams{
			UserID:          req.UserID,
			ItemID:          req.ItemID,
			TransactionType: txType,
			Quantity:        req.Quantity,
			Amount:          amount,
			Notes:           req.Notes,
		})
		if err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		if recorded == nil {
			return ErrTransactionNotRecorded
		}
		return nil
	})
	if err != nil {
		logger.Log.Errorw("inventory move failed",
			"type", txType, "userID", req.UserID, "itemID", req.ItemID, "quantity", req.Quantity, "error", err)
		return nil, err
	}

	logger.Log.Infow("inventory moved",
		"type", txType, "transactionID", recorded.ID, "itemID", req.ItemID, "quantity", req.Quantity, "amount", recorded.Amount)
	return recorded, nil
}

// lineAmount multiplies a decimal-text unit price by quantity, rounded to cents.
func lineAmount(price string, quantity int32) (string, error) {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return "", fmt.Errorf("parse price %q: %w", price, err)
	}
	return p.Mul(decimal.NewFromInt32(quantity)).StringFixed(2), nil
}
