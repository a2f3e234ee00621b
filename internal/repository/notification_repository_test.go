package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkReadFlipsUnreadRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewNotificationRepo(db)

	mock.ExpectExec("UPDATE notifications SET is_read").
		WithArgs(uint64(3), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkRead(context.Background(), 3, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadAlreadyReadIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewNotificationRepo(db)

	mock.ExpectExec("UPDATE notifications SET is_read").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT recipient_id, is_read FROM notifications").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"recipient_id", "is_read"}).AddRow(7, true))

	require.NoError(t, repo.MarkRead(context.Background(), 3, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadForeignRecipientForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewNotificationRepo(db)

	mock.ExpectExec("UPDATE notifications SET is_read").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT recipient_id, is_read FROM notifications").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"recipient_id", "is_read"}).AddRow(99, false))

	err = repo.MarkRead(context.Background(), 3, 7)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadMissingRowNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewNotificationRepo(db)

	mock.ExpectExec("UPDATE notifications SET is_read").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT recipient_id, is_read FROM notifications").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"recipient_id", "is_read"}))

	err = repo.MarkRead(context.Background(), 3, 7)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAllReadReportsRowCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewNotificationRepo(db)

	mock.ExpectExec("UPDATE notifications SET is_read").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.MarkAllRead(context.Background(), 7)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
