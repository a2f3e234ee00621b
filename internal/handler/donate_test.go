package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/givebridge/givebridge/internal/config"
	"github.com/givebridge/givebridge/internal/payment"
	"github.com/givebridge/givebridge/internal/repository"
	"github.com/givebridge/givebridge/internal/utils"
)

func TestValidateDonate(t *testing.T) {
	valid := donateReq{
		AmountCents:   2500,
		PaymentMethod: "card",
		FullName:      "Jo Smith",
		Email:         "jo@example.org",
		AcceptTerms:   true,
	}
	assert.Empty(t, validateDonate(&valid))

	t.Run("terms must be accepted", func(t *testing.T) {
		r := valid
		r.AcceptTerms = false
		assert.Contains(t, validateDonate(&r), "accept_terms")
	})
	t.Run("zero amount", func(t *testing.T) {
		r := valid
		r.AmountCents = 0
		assert.Contains(t, validateDonate(&r), "amount_cents")
	})
	t.Run("unknown payment method", func(t *testing.T) {
		r := valid
		r.PaymentMethod = "cheque"
		assert.Contains(t, validateDonate(&r), "payment_method")
	})
	t.Run("recurring needs frequency", func(t *testing.T) {
		r := valid
		r.IsRecurring = true
		assert.Contains(t, validateDonate(&r), "frequency")
		r.Frequency = "monthly"
		assert.Empty(t, validateDonate(&r))
	})
	t.Run("frequency without recurring", func(t *testing.T) {
		r := valid
		r.Frequency = "weekly"
		assert.Contains(t, validateDonate(&r), "frequency")
	})
}

// donateTestHandler builds a DonationHandler whose payment endpoint counts
// how often it is hit.
func donateTestHandler(t *testing.T) (*DonationHandler, sqlmock.Sqlmock, *atomic.Int64) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"transactionId":"txn_test"}`))
	}))
	t.Cleanup(srv.Close)

	cfg := config.Config{JWTSecret: "donate-test-secret", AccessTTLMin: 15}
	h := NewDonationHandler(cfg,
		repository.NewCampaignRepo(db),
		repository.NewDonationRepo(db),
		repository.NewProfileRepo(db),
		payment.NewClient(srv.URL),
	)
	return h, mock, &hits
}

func donateContext(body, bearer string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/campaigns/42/donate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")
	return c, rec
}

func TestDonateGuestGetsLoginRedirect(t *testing.T) {
	h, mock, hits := donateTestHandler(t)

	c, rec := donateContext(`{"amount_cents":2500}`, "")
	require.NoError(t, h.Donate(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "/auth/login?redirect=/campaigns/42")
	// A guest submission must reach neither the processor nor the database.
	assert.EqualValues(t, 0, hits.Load())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonateForgedTokenGetsLoginRedirect(t *testing.T) {
	h, mock, hits := donateTestHandler(t)

	forged, err := utils.NewAccessToken("some-other-secret", 5, "INDIVIDUAL", "jo@example.org", 15)
	require.NoError(t, err)

	c, rec := donateContext(`{"amount_cents":2500}`, forged.Token)
	require.NoError(t, h.Donate(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.EqualValues(t, 0, hits.Load())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonateInvalidBodyNeverCharges(t *testing.T) {
	h, mock, hits := donateTestHandler(t)

	token, err := utils.NewAccessToken("donate-test-secret", 5, "INDIVIDUAL", "jo@example.org", 15)
	require.NoError(t, err)

	// Terms not accepted and no payment method.
	c, rec := donateContext(`{"amount_cents":2500,"full_name":"Jo","email":"jo@example.org"}`, token.Token)
	require.NoError(t, h.Donate(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "accept_terms")
	assert.EqualValues(t, 0, hits.Load())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonateInactiveCampaignConflicts(t *testing.T) {
	h, mock, hits := donateTestHandler(t)

	token, err := utils.NewAccessToken("donate-test-secret", 5, "INDIVIDUAL", "jo@example.org", 15)
	require.NoError(t, err)

	cols := []string{
		"id", "owner_id", "title", "description", "category", "campaign_type",
		"target_amount_cents", "current_amount_cents", "is_disaster_relief", "disaster_type",
		"affected_area", "immediate_needs", "location", "image_url", "is_active", "created_at", "updated_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM campaigns WHERE id").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			42, 1, "Closed fund", "This campaign already wrapped up", "shelter", "monetary",
			100000, 100000, false, "", "", "[]", "", "", false,
			time.Now().UTC(), time.Now().UTC(),
		))

	body := `{"amount_cents":2500,"payment_method":"card","full_name":"Jo","email":"jo@example.org","accept_terms":true}`
	c, rec := donateContext(body, token.Token)
	require.NoError(t, h.Donate(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.EqualValues(t, 0, hits.Load(), "inactive campaigns must not be charged")
	assert.NoError(t, mock.ExpectationsWereMet())
}
