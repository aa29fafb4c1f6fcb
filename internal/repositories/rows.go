package repositories

import "github.com/sbilibin2017/gw-inventory-store/internal/models"

// Scan destinations follow the SELECT/RETURNING column order of the
// statements. Reordering a column list requires reordering these.

func scanItem(sc scanner) (models.Item, error) {
	var i models.Item
	err := sc.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Price,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func scanTransaction(sc scanner) (models.Transaction, error) {
	var t models.Transaction
	err := sc.Scan(
		&t.ID,
		&t.UserID,
		&t.ItemID,
		&t.TransactionType,
		&t.Quantity,
		&t.Amount,
		&t.Notes,
		&t.CreatedAt,
	)
	return t, err
}

func scanUser(sc scanner) (models.User, error) {
	var u models.User
	err := sc.Scan(
		&u.ID,
		&u.PublicID,
		&u.Email,
		&u.Username,
		&u.DisplayName,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.DeletedAt,
	)
	return u, err
}

func scanCount(sc scanner) (models.Count, error) {
	var c models.Count
	err := sc.Scan(&c.Count)
	return c, err
}

func scanUserTransactionSummary(sc scanner) (models.UserTransactionSummary, error) {
	var s models.UserTransactionSummary
	err := sc.Scan(
		&s.UserID,
		&s.TotalTransactions,
		&s.TotalAmount,
		&s.PurchaseCount,
		&s.RefundCount,
	)
	return s, err
}
