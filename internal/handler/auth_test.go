package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/givebridge/givebridge/internal/config"
	"github.com/givebridge/givebridge/internal/repository"
	"github.com/givebridge/givebridge/internal/utils"
)

func newAuthHandlerWithMock(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{
		JWTSecret:      "auth-test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     bcrypt.MinCost,
	}
	h := NewAuthHandler(cfg,
		repository.NewUserRepo(db),
		repository.NewTokenRepo(db),
		repository.NewProfileRepo(db),
	)
	return h, mock
}

func authContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	h, mock := newAuthHandlerWithMock(t)

	c, rec := authContext(`{"email":"","password":""}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	h, mock := newAuthHandlerWithMock(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062: Duplicate entry 'jo@example.org'"))

	c, rec := authContext(`{"email":"jo@example.org","password":"pw123456"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUnknownRoleDefaultsToIndividual(t *testing.T) {
	h, mock := newAuthHandlerWithMock(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("jo@example.org", sqlmock.AnyArg(), "INDIVIDUAL", "Jo").
		WillReturnResult(sqlmock.NewResult(7, 1))
	// Profile repair: no row yet, no orphan to adopt, so insert.
	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WillReturnRows(sqlmock.NewRows(handlerProfileCols))
	mock.ExpectExec("UPDATE profiles SET user_id").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO profiles").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WillReturnRows(handlerProfileRow(false))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := authContext(`{"email":"jo@example.org","password":"pw123456","role":"WIZARD","display_name":"Jo"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"INDIVIDUAL"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func userRow(t *testing.T, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "role", "display_name", "is_active", "created_at", "updated_at",
	}).AddRow(7, "jo@example.org", hash, "INDIVIDUAL", "Jo", true, now, now)
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	h, mock := newAuthHandlerWithMock(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WillReturnRows(userRow(t, "right-password"))

	c, rec := authContext(`{"email":"jo@example.org","password":"wrong-password"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// No token may be minted on a failed login.
	assert.NotContains(t, rec.Body.String(), "access")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginRunsProfileRepair(t *testing.T) {
	h, mock := newAuthHandlerWithMock(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WillReturnRows(userRow(t, "pw123456"))
	// Profile row exists, repair short-circuits.
	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WillReturnRows(handlerProfileRow(true))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := authContext(`{"email":"jo@example.org","password":"pw123456"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access"`)
	assert.Contains(t, rec.Body.String(), `"refresh"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutWithoutCredentialsRejected(t *testing.T) {
	h, mock := newAuthHandlerWithMock(t)

	c, rec := authContext(`{}`)
	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
