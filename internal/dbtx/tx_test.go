package dbtx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunner(t *testing.T) (*Runner, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRunner(sqlx.NewDb(db, "sqlmock")), mock, db
}

func TestFromContext_Empty(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
}

func TestRun_Commit(t *testing.T) {
	runner, mock, _ := newRunner(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	called := false
	err := runner.Run(context.Background(), func(ctx context.Context) error {
		called = true
		tx := FromContext(ctx)
		require.NotNil(t, tx)
		_, err := tx.ExecContext(ctx, "UPDATE items SET quantity = 0")
		return err
	})

	assert.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_RollbackOnError(t *testing.T) {
	runner, mock, _ := newRunner(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	fnErr := errors.New("insufficient stock")
	err := runner.Run(context.Background(), func(ctx context.Context) error {
		return fnErr
	})

	assert.ErrorIs(t, err, fnErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_RollbackOnPanic(t *testing.T) {
	runner, mock, _ := newRunner(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = runner.Run(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_BeginError(t *testing.T) {
	runner, _, db := newRunner(t)
	// Close db so Begin fails
	db.Close()

	called := false
	err := runner.Run(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.Error(t, err)
	assert.False(t, called)
}

func TestRun_CommitError(t *testing.T) {
	runner, mock, _ := newRunner(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

	err := runner.Run(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, sql.ErrConnDone)
}
