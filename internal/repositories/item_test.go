package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-inventory-store/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemCols = "id, name, description, price, quantity, created_at, updated_at"

func itemRow(rows *sqlmock.Rows, i models.Item) *sqlmock.Rows {
	var desc any
	if i.Description != nil {
		desc = *i.Description
	}
	return rows.AddRow(i.ID.String(), i.Name, desc, i.Price, int64(i.Quantity), i.CreatedAt, i.UpdatedAt)
}

func TestItemRepository_GetByID(t *testing.T) {
	id := uuid.New()
	want := models.Item{ID: id, Name: "Widget", Description: strPtr("blue"), Price: "9.99", Quantity: 10, CreatedAt: t0, UpdatedAt: t1}
	query := "-- name: GetItemByID :one SELECT " + itemCols + " FROM items WHERE id = $1 LIMIT 1"

	t.Run("Found", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(query).WithArgs(id).WillReturnRows(itemRow(sqlmock.NewRows(itemColumns), want))

		got, err := NewItemRepository(db, nil).GetByID(context.Background(), models.GetItemByIDParams{ID: id})
		require.NoError(t, err)
		assert.Equal(t, &want, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NullDescription", func(t *testing.T) {
		db, mock := newMock(t)
		noDesc := want
		noDesc.Description = nil
		mock.ExpectQuery(query).WithArgs(id).WillReturnRows(itemRow(sqlmock.NewRows(itemColumns), noDesc))

		got, err := NewItemRepository(db, nil).GetByID(context.Background(), models.GetItemByIDParams{ID: id})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.Description)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(query).WithArgs(id).WillReturnRows(sqlmock.NewRows(itemColumns))

		got, err := NewItemRepository(db, nil).GetByID(context.Background(), models.GetItemByIDParams{ID: id})
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestItemRepository_List(t *testing.T) {
	db, mock := newMock(t)
	newer := models.Item{ID: uuid.New(), Name: "b", Price: "2.00", Quantity: 2, CreatedAt: t1, UpdatedAt: t1}
	older := models.Item{ID: uuid.New(), Name: "a", Price: "1.00", Quantity: 1, CreatedAt: t0, UpdatedAt: t0}

	rows := sqlmock.NewRows(itemColumns)
	itemRow(rows, newer)
	itemRow(rows, older)
	mock.ExpectQuery("-- name: ListItems :many SELECT " + itemCols + " FROM items ORDER BY created_at DESC LIMIT $1 OFFSET $2").
		WithArgs(int32(20), int32(40)).
		WillReturnRows(rows)

	got, err := NewItemRepository(db, nil).List(context.Background(), models.ListItemsParams{Limit: 20, Offset: 40})
	require.NoError(t, err)
	assert.Equal(t, []models.Item{newer, older}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_Count(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("-- name: CountItems :one SELECT COUNT(*) FROM items").
		WillReturnRows(sqlmock.NewRows(countColumns).AddRow(int64(12)))

	got, err := NewItemRepository(db, nil).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.Count{Count: "12"}, got)
}

func TestItemRepository_SearchByName(t *testing.T) {
	query := "-- name: SearchItemsByName :many SELECT " + itemCols +
		" FROM items WHERE name ILIKE '%' || $1 || '%' ORDER BY created_at DESC LIMIT $2 OFFSET $3"

	t.Run("Matches", func(t *testing.T) {
		db, mock := newMock(t)
		widget := models.Item{ID: uuid.New(), Name: "Widget", Price: "1.00", Quantity: 1, CreatedAt: t1, UpdatedAt: t1}
		mock.ExpectQuery(query).
			WithArgs("GET", int32(10), int32(0)).
			WillReturnRows(itemRow(sqlmock.NewRows(itemColumns), widget))

		got, err := NewItemRepository(db, nil).SearchByName(context.Background(),
			models.SearchItemsByNameParams{Name: strPtr("GET"), Limit: 10, Offset: 0})
		require.NoError(t, err)
		assert.Equal(t, []models.Item{widget}, got)
	})

	t.Run("NilNameBindsNull", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(query).
			WithArgs(nil, int32(10), int32(0)).
			WillReturnRows(sqlmock.NewRows(itemColumns))

		got, err := NewItemRepository(db, nil).SearchByName(context.Background(),
			models.SearchItemsByNameParams{Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestItemRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	want := models.Item{ID: uuid.New(), Name: "Gadget", Description: strPtr("small"), Price: "3.50", Quantity: 4, CreatedAt: t0, UpdatedAt: t0}

	mock.ExpectQuery("-- name: CreateItem :one INSERT INTO items ( name, description, price, quantity ) VALUES ( $1, $2, $3, $4 ) RETURNING " + itemCols).
		WithArgs("Gadget", "small", "3.50", int32(4)).
		WillReturnRows(itemRow(sqlmock.NewRows(itemColumns), want))

	got, err := NewItemRepository(db, nil).Create(context.Background(), models.CreateItemParams{
		Name:        "Gadget",
		Description: strPtr("small"),
		Price:       "3.50",
		Quantity:    4,
	})
	require.NoError(t, err)
	assert.Equal(t, &want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	id := uuid.New()
	want := models.Item{ID: id, Name: "Widget", Price: "12.00", Quantity: 10, CreatedAt: t0, UpdatedAt: t1}

	// unset fields are bound as NULL so COALESCE keeps the stored values
	mock.ExpectQuery("-- name: UpdateItem :one UPDATE items SET name = COALESCE($2, name), description = COALESCE($3, description), price = COALESCE($4, price), quantity = COALESCE($5, quantity) WHERE id = $1 RETURNING " + itemCols).
		WithArgs(id, nil, nil, "12.00", nil).
		WillReturnRows(itemRow(sqlmock.NewRows(itemColumns), want))

	got, err := NewItemRepository(db, nil).Update(context.Background(), models.UpdateItemParams{
		ID:    id,
		Price: strPtr("12.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, &want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_UpdateQuantity(t *testing.T) {
	query := "-- name: UpdateItemQuantity :one UPDATE items SET quantity = quantity + $2 WHERE id = $1 RETURNING " + itemCols
	id := uuid.New()

	t.Run("Adjusted", func(t *testing.T) {
		db, mock := newMock(t)
		want := models.Item{ID: id, Name: "Widget", Price: "1.00", Quantity: 7, CreatedAt: t0, UpdatedAt: t1}
		mock.ExpectQuery(query).WithArgs(id, int32(-3)).WillReturnRows(itemRow(sqlmock.NewRows(itemColumns), want))

		got, err := NewItemRepository(db, nil).UpdateQuantity(context.Background(),
			models.UpdateItemQuantityParams{ID: id, Delta: -3})
		require.NoError(t, err)
		assert.Equal(t, int32(7), got.Quantity)
	})

	t.Run("MissingItem", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(query).WithArgs(id, int32(5)).WillReturnRows(sqlmock.NewRows(itemColumns))

		got, err := NewItemRepository(db, nil).UpdateQuantity(context.Background(),
			models.UpdateItemQuantityParams{ID: id, Delta: 5})
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestItemRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	id := uuid.New()
	mock.ExpectExec("-- name: DeleteItem :exec DELETE FROM items WHERE id = $1").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewItemRepository(db, nil).Delete(context.Background(), models.DeleteItemParams{ID: id})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_GetLowStock(t *testing.T) {
	db, mock := newMock(t)
	low := models.Item{ID: uuid.New(), Name: "x", Price: "1.00", Quantity: 0, CreatedAt: t0, UpdatedAt: t0}
	lower := models.Item{ID: uuid.New(), Name: "y", Price: "1.00", Quantity: 2, CreatedAt: t0, UpdatedAt: t0}

	rows := sqlmock.NewRows(itemColumns)
	itemRow(rows, low)
	itemRow(rows, lower)
	mock.ExpectQuery("-- name: GetLowStockItems :many SELECT " + itemCols + " FROM items WHERE quantity < $1 ORDER BY quantity ASC").
		WithArgs(int32(5)).
		WillReturnRows(rows)

	got, err := NewItemRepository(db, nil).GetLowStock(context.Background(), models.GetLowStockItemsParams{Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, []models.Item{low, lower}, got)
}
