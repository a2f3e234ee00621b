package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/givebridge/givebridge/internal/repository"
)

func notificationContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(7))
	return c, rec
}

func TestNotificationListUnreadFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewNotificationHandler(repository.NewNotificationRepo(db), nil)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM notifications WHERE recipient_id").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "recipient_id", "type", "title", "message", "payload",
			"is_read", "read_at", "created_at",
		}).AddRow(3, 7, "donation_received", "New donation received", "Jo donated 25.00", `{"campaign_id":10}`, false, nil, now))

	c, rec := notificationContext(http.MethodGet, "/v1/notifications?unread=true")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "New donation received")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRecentIncludesUnreadCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewNotificationHandler(repository.NewNotificationRepo(db), nil)

	mock.ExpectQuery("SELECT (.+) FROM notifications WHERE recipient_id").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "recipient_id", "type", "title", "message", "payload",
			"is_read", "read_at", "created_at",
		}))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"cnt"}).AddRow(5))

	c, rec := notificationContext(http.MethodGet, "/v1/notifications/recent")
	require.NoError(t, h.Recent(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unread_count":5`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAllReadRetriesOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewNotificationHandler(repository.NewNotificationRepo(db), nil)

	mock.ExpectExec("UPDATE notifications SET is_read").
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectExec("UPDATE notifications SET is_read").
		WillReturnResult(sqlmock.NewResult(0, 3))

	c, rec := notificationContext(http.MethodPost, "/v1/notifications/read-all")
	require.NoError(t, h.MarkAllRead(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"updated":3`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStreamWithoutRedisUnavailable(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewNotificationHandler(repository.NewNotificationRepo(db), nil)

	c, rec := notificationContext(http.MethodGet, "/v1/notifications/stream")
	require.NoError(t, h.Stream(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
