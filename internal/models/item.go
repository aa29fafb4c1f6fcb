package models

import (
	"time"

	"github.com/google/uuid"
)

// Item represents a row of the items table
type Item struct {
	ID          uuid.UUID `json:"id" db:"id"`                   // Primary key
	Name        string    `json:"name" db:"name"`               // Item name
	Description *string   `json:"description" db:"description"` // Optional free-form description
	Price       string    `json:"price" db:"price"`             // Unit price, canonical decimal text
	Quantity    int32     `json:"quantity" db:"quantity"`       // Units in stock
	CreatedAt   time.Time `json:"created_at" db:"created_at"`   // Creation timestamp
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`   // Last update timestamp
}

type GetItemByIDParams struct {
	ID uuid.UUID `json:"id"`
}

type ListItemsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

// SearchItemsByNameParams matches items whose name contains Name, ignoring case.
// A nil Name matches nothing.
type SearchItemsByNameParams struct {
	Name   *string `json:"name"`
	Limit  int32   `json:"limit"`
	Offset int32   `json:"offset"`
}

type CreateItemParams struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       string  `json:"price"`
	Quantity    int32   `json:"quantity"`
}

// UpdateItemParams is a partial update: a nil field keeps the stored value,
// it never clears the column.
type UpdateItemParams struct {
	ID          uuid.UUID `json:"id"`
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *string   `json:"price"`
	Quantity    *int32    `json:"quantity"`
}

// UpdateItemQuantityParams adds Delta (possibly negative) to the stored quantity.
type UpdateItemQuantityParams struct {
	ID    uuid.UUID `json:"id"`
	Delta int32     `json:"delta"`
}

type DeleteItemParams struct {
	ID uuid.UUID `json:"id"`
}

// GetLowStockItemsParams selects items with quantity strictly below Quantity.
type GetLowStockItemsParams struct {
	Quantity int32 `json:"quantity"`
}
