package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/givebridge/givebridge/internal/model"
)

var ErrDonationItemNotFound = errors.New("donation item not found")

type DonationItemRepo struct{ db *sql.DB }

func NewDonationItemRepo(db *sql.DB) *DonationItemRepo { return &DonationItemRepo{db: db} }

const donationItemCols = `id, owner_id, title, description, category, item_condition,
	quantity, pickup_location, image_url, is_available, created_at, updated_at`

func scanDonationItem(scan func(dest ...any) error) (*model.DonationItem, error) {
	var d model.DonationItem
	err := scan(&d.ID, &d.OwnerID, &d.Title, &d.Description, &d.Category, &d.Condition,
		&d.Quantity, &d.PickupLocation, &d.ImageURL, &d.IsAvailable, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DonationItemRepo) Create(ctx context.Context, d *model.DonationItem) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO donation_items (owner_id, title, description, category, item_condition,
		   quantity, pickup_location, image_url)
		 VALUES (?,?,?,?,?,?,?,?)`,
		d.OwnerID, d.Title, d.Description, d.Category, d.Condition,
		d.Quantity, d.PickupLocation, d.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	got, err := r.GetByID(ctx, d.ID)
	if err != nil {
		return err
	}
	*d = *got
	return nil
}

func (r *DonationItemRepo) GetByID(ctx context.Context, id uint64) (*model.DonationItem, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+donationItemCols+" FROM donation_items WHERE id = ?", id)
	d, err := scanDonationItem(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDonationItemNotFound
	}
	return d, err
}

func (r *DonationItemRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.DonationItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+donationItemCols+" FROM donation_items WHERE owner_id = ? ORDER BY id DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.DonationItem
	for rows.Next() {
		d, err := scanDonationItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListAvailable returns available items for public browsing with pagination.
func (r *DonationItemRepo) ListAvailable(ctx context.Context, category string, limit, offset int) ([]*model.DonationItem, int64, error) {
	cond := "is_available = TRUE"
	args := []any{}
	if category != "" {
		cond += " AND category = ?"
		args = append(args, category)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM donation_items WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+donationItemCols+" FROM donation_items WHERE "+cond+" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]*model.DonationItem, 0, limit)
	for rows.Next() {
		d, err := scanDonationItem(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

func (r *DonationItemRepo) ownerOf(ctx context.Context, id uint64) (uint64, error) {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT owner_id FROM donation_items WHERE id = ?", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrDonationItemNotFound
	}
	return owner, err
}

func (r *DonationItemRepo) UpdateByIDAndOwner(ctx context.Context, d *model.DonationItem, ownerID uint64) error {
	owner, err := r.ownerOf(ctx, d.ID)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE donation_items SET title=?, description=?, category=?, item_condition=?,
		   quantity=?, pickup_location=?, image_url=?, updated_at=CURRENT_TIMESTAMP
		 WHERE id=? AND owner_id=?`,
		d.Title, d.Description, d.Category, d.Condition,
		d.Quantity, d.PickupLocation, d.ImageURL, d.ID, ownerID)
	return err
}

// SetAvailable soft-(de)lists an item instead of deleting it.
func (r *DonationItemRepo) SetAvailable(ctx context.Context, id, ownerID uint64, available bool) error {
	owner, err := r.ownerOf(ctx, id)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE donation_items SET is_available=?, updated_at=CURRENT_TIMESTAMP WHERE id=? AND owner_id=?",
		available, id, ownerID)
	return err
}
