package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/givebridge/givebridge/internal/model"
)

func TestRecordCompletedCommitsBothWrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewDonationRepo(db)

	donor := uint64(5)
	d := &model.Donation{
		CampaignID:    10,
		DonorID:       &donor,
		AmountCents:   2500,
		PaymentMethod: "card",
		DonorName:     "Jo",
		DonorEmail:    "jo@example.org",
		TransactionID: "txn_abc",
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO donations").
		WithArgs(uint64(10), uint64(5), uint64(2500), "card", "completed",
			"", false, false, "", "Jo", "jo@example.org", "txn_abc", "").
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectExec("UPDATE campaigns SET current_amount_cents").
		WithArgs(uint64(2500), uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.RecordCompleted(context.Background(), d))
	assert.EqualValues(t, 77, d.ID)
	assert.Equal(t, model.DonationCompleted, d.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordCompletedAnonymousStoresNullDonor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewDonationRepo(db)

	donor := uint64(5)
	d := &model.Donation{
		CampaignID:    10,
		DonorID:       &donor,
		AmountCents:   1000,
		PaymentMethod: "wallet",
		IsAnonymous:   true,
		DonorName:     "Jo",
		DonorEmail:    "jo@example.org",
		TransactionID: "txn_anon",
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO donations").
		WithArgs(uint64(10), nil, uint64(1000), "wallet", "completed",
			"", true, false, "", "Jo", "jo@example.org", "txn_anon", "").
		WillReturnResult(sqlmock.NewResult(78, 1))
	mock.ExpectExec("UPDATE campaigns SET current_amount_cents").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.RecordCompleted(context.Background(), d))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordCompletedRollsBackWhenCampaignUpdateFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewDonationRepo(db)

	donor := uint64(5)
	d := &model.Donation{
		CampaignID:    10,
		DonorID:       &donor,
		AmountCents:   2500,
		PaymentMethod: "card",
		TransactionID: "txn_fail",
	}

	boom := errors.New("deadlock")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO donations").
		WillReturnResult(sqlmock.NewResult(79, 1))
	mock.ExpectExec("UPDATE campaigns SET current_amount_cents").
		WillReturnError(boom)
	mock.ExpectRollback()

	err = repo.RecordCompleted(context.Background(), d)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByCampaignAndOwnerGuardsOwnership(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewDonationRepo(db)

	mock.ExpectQuery("SELECT owner_id FROM campaigns WHERE id").
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(99))

	_, err = repo.ListByCampaignAndOwner(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByCampaignAndOwnerMissingCampaign(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewDonationRepo(db)

	mock.ExpectQuery("SELECT owner_id FROM campaigns WHERE id").
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}))

	_, err = repo.ListByCampaignAndOwner(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrCampaignNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
