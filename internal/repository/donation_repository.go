// This file records contribution events. A donation row is written exactly
// once, after the external payment processor reports success, inside the same
// transaction that advances the campaign's current amount. Rows in a
// terminal status are never updated again; there is deliberately no update
// method here.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/givebridge/givebridge/internal/model"
)

var ErrDonationNotFound = errors.New("donation not found")

type DonationRepo struct{ db *sql.DB }

func NewDonationRepo(db *sql.DB) *DonationRepo { return &DonationRepo{db: db} }

const donationCols = `id, campaign_id, donor_id, amount_cents, payment_method, status,
	message, is_anonymous, is_recurring, frequency, donor_name, donor_email,
	transaction_id, receipt_url, created_at`

func scanDonation(scan func(dest ...any) error) (*model.Donation, error) {
	var (
		d     model.Donation
		donor sql.NullInt64
	)
	err := scan(&d.ID, &d.CampaignID, &donor, &d.AmountCents, &d.PaymentMethod, &d.Status,
		&d.Message, &d.IsAnonymous, &d.IsRecurring, &d.Frequency, &d.DonorName, &d.DonorEmail,
		&d.TransactionID, &d.ReceiptURL, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	if donor.Valid {
		v := uint64(donor.Int64)
		d.DonorID = &v
	}
	return &d, nil
}

// RecordCompleted inserts a completed donation and increments the campaign's
// current amount in one transaction, so the two writes cannot drift apart on
// a crash. DonorID stays NULL for anonymous donations.
func (r *DonationRepo) RecordCompleted(ctx context.Context, d *model.Donation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var donor any
	if d.DonorID != nil && !d.IsAnonymous {
		donor = *d.DonorID
	}
	var res sql.Result
	res, err = tx.ExecContext(ctx,
		`INSERT INTO donations (campaign_id, donor_id, amount_cents, payment_method, status,
		   message, is_anonymous, is_recurring, frequency, donor_name, donor_email,
		   transaction_id, receipt_url)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		d.CampaignID, donor, d.AmountCents, d.PaymentMethod, model.DonationCompleted,
		d.Message, d.IsAnonymous, d.IsRecurring, d.Frequency, d.DonorName, d.DonorEmail,
		d.TransactionID, d.ReceiptURL)
	if err != nil {
		return err
	}
	var id int64
	id, err = res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	d.Status = model.DonationCompleted

	_, err = tx.ExecContext(ctx,
		`UPDATE campaigns SET current_amount_cents = current_amount_cents + ?,
		   updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		d.AmountCents, d.CampaignID)
	return err
}

// GetByID fetches a single donation.
func (r *DonationRepo) GetByID(ctx context.Context, id uint64) (*model.Donation, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+donationCols+" FROM donations WHERE id = ?", id)
	d, err := scanDonation(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDonationNotFound
	}
	return d, err
}

// ListByDonor returns the donor's own contribution history, newest first.
func (r *DonationRepo) ListByDonor(ctx context.Context, donorID uint64) ([]*model.Donation, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+donationCols+" FROM donations WHERE donor_id = ? ORDER BY id DESC", donorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Donation
	for rows.Next() {
		d, err := scanDonation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListByCampaignAndOwner returns a campaign's donations for its owner.
// Looking at another profile's campaign yields ErrForbidden. Donor identity
// is withheld for anonymous rows at the handler layer.
func (r *DonationRepo) ListByCampaignAndOwner(ctx context.Context, campaignID, ownerID uint64) ([]*model.Donation, error) {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT owner_id FROM campaigns WHERE id = ?", campaignID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	if owner != ownerID {
		return nil, ErrForbidden
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+donationCols+" FROM donations WHERE campaign_id = ? ORDER BY id DESC", campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Donation
	for rows.Next() {
		d, err := scanDonation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
