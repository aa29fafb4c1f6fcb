package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-inventory-store/internal/models"
)

const getItemByID = `-- name: GetItemByID :one
SELECT id, name, description, price, quantity, created_at, updated_at FROM items
WHERE id = $1
LIMIT 1`

const listItems = `-- name: ListItems :many
SELECT id, name, description, price, quantity, created_at, updated_at FROM items
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

const countItems = `-- name: CountItems :one
SELECT COUNT(*) FROM items`

const searchItemsByName = `-- name: SearchItemsByName :many
SELECT id, name, description, price, quantity, created_at, updated_at FROM items
WHERE name ILIKE '%' || $1 || '%'
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

const createItem = `-- name: CreateItem :one
INSERT INTO items (
    name,
    description,
    price,
    quantity
) VALUES (
    $1, $2, $3, $4
) RETURNING id, name, description, price, quantity, created_at, updated_at`

const updateItem = `-- name: UpdateItem :one
UPDATE items
SET
    name = COALESCE($2, name),
    description = COALESCE($3, description),
    price = COALESCE($4, price),
    quantity = COALESCE($5, quantity)
WHERE id = $1
RETURNING id, name, description, price, quantity, created_at, updated_at`

const updateItemQuantity = `-- name: UpdateItemQuantity :one
UPDATE items
SET quantity = quantity + $2
WHERE id = $1
RETURNING id, name, description, price, quantity, created_at, updated_at`

const deleteItem = `-- name: DeleteItem :exec
DELETE FROM items
WHERE id = $1`

const getLowStockItems = `-- name: GetLowStockItems :many
SELECT id, name, description, price, quantity, created_at, updated_at FROM items
WHERE quantity < $1
ORDER BY quantity ASC`

// ItemRepository runs the items statements.
type ItemRepository struct {
	base
}

// NewItemRepository creates an ItemRepository. txGetter may be nil.
func NewItemRepository(db sqlx.ExtContext, txGetter TxGetter) *ItemRepository {
	return &ItemRepository{base{db: db, txGetter: txGetter}}
}

// GetByID returns the item or nil when it does not exist.
func (r *ItemRepository) GetByID(ctx context.Context, arg models.GetItemByIDParams) (*models.Item, error) {
	return queryOne(ctx, r.executor(ctx), getItemByID, scanItem, arg.ID)
}

// List returns a page of items, newest first.
func (r *ItemRepository) List(ctx context.Context, arg models.ListItemsParams) ([]models.Item, error) {
	return queryMany(ctx, r.executor(ctx), listItems, scanItem, arg.Limit, arg.Offset)
}

func (r *ItemRepository) Count(ctx context.Context) (*models.Count, error) {
	return queryOne(ctx, r.executor(ctx), countItems, scanCount)
}

// SearchByName returns a page of items whose name contains arg.Name,
// case-insensitive, newest first.
func (r *ItemRepository) SearchByName(ctx context.Context, arg models.SearchItemsByNameParams) ([]models.Item, error) {
	return queryMany(ctx, r.executor(ctx), searchItemsByName, scanItem, arg.Name, arg.Limit, arg.Offset)
}

func (r *ItemRepository) Create(ctx context.Context, arg models.CreateItemParams) (*models.Item, error) {
	return queryOne(ctx, r.executor(ctx), createItem, scanItem,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.Quantity,
	)
}

// Update applies a partial update. Nil fields keep their stored values.
func (r *ItemRepository) Update(ctx context.Context, arg models.UpdateItemParams) (*models.Item, error) {
	return queryOne(ctx, r.executor(ctx), updateItem, scanItem,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.Quantity,
	)
}

// UpdateQuantity adds arg.Delta to the stored quantity and returns the
// updated item. The store serializes concurrent adjustments of one row.
func (r *ItemRepository) UpdateQuantity(ctx context.Context, arg models.UpdateItemQuantityParams) (*models.Item, error) {
	return queryOne(ctx, r.executor(ctx), updateItemQuantity, scanItem, arg.ID, arg.Delta)
}

func (r *ItemRepository) Delete(ctx context.Context, arg models.DeleteItemParams) error {
	return execNoResult(ctx, r.executor(ctx), deleteItem, arg.ID)
}

// GetLowStock returns items with quantity below arg.Quantity, lowest first.
func (r *ItemRepository) GetLowStock(ctx context.Context, arg models.GetLowStockItemsParams) ([]models.Item, error) {
	return queryMany(ctx, r.executor(ctx), getLowStockItems, scanItem, arg.Quantity)
}
