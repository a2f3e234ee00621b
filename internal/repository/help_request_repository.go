package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/givebridge/givebridge/internal/model"
)

var ErrHelpRequestNotFound = errors.New("help request not found")

type HelpRequestRepo struct{ db *sql.DB }

func NewHelpRequestRepo(db *sql.DB) *HelpRequestRepo { return &HelpRequestRepo{db: db} }

const helpRequestCols = `id, owner_id, title, description, category, urgency,
	location, contact_phone, is_active, created_at, updated_at`

func scanHelpRequest(scan func(dest ...any) error) (*model.HelpRequest, error) {
	var h model.HelpRequest
	err := scan(&h.ID, &h.OwnerID, &h.Title, &h.Description, &h.Category, &h.Urgency,
		&h.Location, &h.ContactPhone, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// Create inserts a help request and populates its ID and timestamps.
func (r *HelpRequestRepo) Create(ctx context.Context, h *model.HelpRequest) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO help_requests (owner_id, title, description, category, urgency, location, contact_phone)
		 VALUES (?,?,?,?,?,?,?)`,
		h.OwnerID, h.Title, h.Description, h.Category, h.Urgency, h.Location, h.ContactPhone)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	got, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = *got
	return nil
}

func (r *HelpRequestRepo) GetByID(ctx context.Context, id uint64) (*model.HelpRequest, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+helpRequestCols+" FROM help_requests WHERE id = ?", id)
	h, err := scanHelpRequest(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHelpRequestNotFound
	}
	return h, err
}

func (r *HelpRequestRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.HelpRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+helpRequestCols+" FROM help_requests WHERE owner_id = ? ORDER BY id DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.HelpRequest
	for rows.Next() {
		h, err := scanHelpRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ListActive returns active help requests for public browsing, most urgent
// first within each day.
func (r *HelpRequestRepo) ListActive(ctx context.Context, category string, limit, offset int) ([]*model.HelpRequest, int64, error) {
	cond := "is_active = TRUE"
	args := []any{}
	if category != "" {
		cond += " AND category = ?"
		args = append(args, category)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM help_requests WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+helpRequestCols+" FROM help_requests WHERE "+cond+
			" ORDER BY FIELD(urgency,'critical','high','medium','low'), created_at DESC LIMIT ? OFFSET ?",
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]*model.HelpRequest, 0, limit)
	for rows.Next() {
		h, err := scanHelpRequest(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, h)
	}
	return out, total, rows.Err()
}

func (r *HelpRequestRepo) ownerOf(ctx context.Context, id uint64) (uint64, error) {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT owner_id FROM help_requests WHERE id = ?", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrHelpRequestNotFound
	}
	return owner, err
}

// UpdateByIDAndOwner rewrites the editable fields; non-owners get
// ErrForbidden, missing rows ErrHelpRequestNotFound.
func (r *HelpRequestRepo) UpdateByIDAndOwner(ctx context.Context, h *model.HelpRequest, ownerID uint64) error {
	owner, err := r.ownerOf(ctx, h.ID)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE help_requests SET title=?, description=?, category=?, urgency=?,
		   location=?, contact_phone=?, updated_at=CURRENT_TIMESTAMP
		 WHERE id=? AND owner_id=?`,
		h.Title, h.Description, h.Category, h.Urgency, h.Location, h.ContactPhone,
		h.ID, ownerID)
	return err
}

func (r *HelpRequestRepo) SetActive(ctx context.Context, id, ownerID uint64, active bool) error {
	owner, err := r.ownerOf(ctx, id)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE help_requests SET is_active=?, updated_at=CURRENT_TIMESTAMP WHERE id=? AND owner_id=?",
		active, id, ownerID)
	return err
}
