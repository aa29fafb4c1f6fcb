package services

//go:generate mockgen -source=report.go -destination=mock_report.go -package=services

import (
	"context"
	"time"

	"github.com/sbilibin2017/gw-inventory-store/internal/logger"
	"github.com/sbilibin2017/gw-inventory-store/internal/models"
)

// Counter counts the live rows of one table.
type Counter interface {
	Count(ctx context.Context) (*models.Count, error)
}

// ItemReporter reads item counts and low stock.
type ItemReporter interface {
	Count(ctx context.Context) (*models.Count, error)
	GetLowStock(ctx context.Context, arg models.GetLowStockItemsParams) ([]models.Item, error)
}

// Report is a point-in-time view of the store.
type Report struct {
	GeneratedAt  time.Time     `json:"generated_at"`
	Items        string        `json:"items"`
	Transactions string        `json:"transactions"`
	Users        string        `json:"users"`
	Threshold    int32         `json:"low_stock_threshold"`
	LowStock     []models.Item `json:"low_stock"`
}

// ReportService builds store reports from independent reads.
type ReportService struct {
	items        ItemReporter
	transactions Counter
	users        Counter
	now          func() time.Time
}

func NewReportService(items ItemReporter, transactions Counter, users Counter) *ReportService {
	return &ReportService{items: items, transactions: transactions, users: users, now: time.Now}
}

// Snapshot returns the row counts and the items with quantity below threshold.
// The reads are not taken in one transaction.
func (s *ReportService) Snapshot(ctx context.Context, threshold int32) (*Report, error) {
	items, err := s.items.Count(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count items", "error", err)
		return nil, err
	}
	transactions, err := s.transactions.Count(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count transactions", "error", err)
		return nil, err
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count users", "error", err)
		return nil, err
	}
	lowStock, err := s.items.GetLowStock(ctx, models.GetLowStockItemsParams{Quantity: threshold})
	if err != nil {
		logger.Log.Errorw("failed to read low stock", "threshold", threshold, "error", err)
		return nil, err
	}

	return &Report{
		GeneratedAt:  s.now().UTC(),
		Items:        countOf(items),
		Transactions: countOf(transactions),
		Users:        countOf(users),
		Threshold:    threshold,
		LowStock:     lowStock,
	}, nil
}

func countOf(c *models.Count) string {
	if c == nil {
		return "0"
	}
	return c.Count
}
