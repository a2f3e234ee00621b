// This file defines repository methods for campaigns. Writes are
// owner-scoped: updates verify ownership first and surface ErrForbidden for
// rows owned by someone else, rather than silently matching zero rows.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/givebridge/givebridge/internal/model"
)

// ErrCampaignNotFound is returned when a campaign cannot be found.
var ErrCampaignNotFound = errors.New("campaign not found")

type CampaignRepo struct{ db *sql.DB }

func NewCampaignRepo(db *sql.DB) *CampaignRepo { return &CampaignRepo{db: db} }

const campaignCols = `id, owner_id, title, description, category, campaign_type,
	target_amount_cents, current_amount_cents, is_disaster_relief, disaster_type,
	affected_area, immediate_needs, location, image_url, is_active, created_at, updated_at`

func scanCampaign(scan func(dest ...any) error) (*model.Campaign, error) {
	var (
		c     model.Campaign
		needs sql.NullString
	)
	err := scan(&c.ID, &c.OwnerID, &c.Title, &c.Description, &c.Category, &c.CampaignType,
		&c.TargetAmountCents, &c.CurrentAmountCents, &c.IsDisasterRelief, &c.DisasterType,
		&c.AffectedArea, &needs, &c.Location, &c.ImageURL, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if needs.Valid && needs.String != "" {
		_ = json.Unmarshal([]byte(needs.String), &c.ImmediateNeeds)
	}
	return &c, nil
}

// Create inserts a campaign and populates its ID and timestamps. The caller
// has already verified the owner's profile is completed.
func (r *CampaignRepo) Create(ctx context.Context, c *model.Campaign) error {
	needs, err := json.Marshal(c.ImmediateNeeds)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO campaigns (owner_id, title, description, category, campaign_type,
		   target_amount_cents, is_disaster_relief, disaster_type, affected_area,
		   immediate_needs, location, image_url)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		c.OwnerID, c.Title, c.Description, c.Category, c.CampaignType,
		c.TargetAmountCents, c.IsDisasterRelief, c.DisasterType, c.AffectedArea,
		string(needs), c.Location, c.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	got, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *got
	return nil
}

// GetByID fetches a campaign regardless of owner or active flag.
func (r *CampaignRepo) GetByID(ctx context.Context, id uint64) (*model.Campaign, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+campaignCols+" FROM campaigns WHERE id = ?", id)
	c, err := scanCampaign(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCampaignNotFound
	}
	return c, err
}

// ListByOwner returns all campaigns belonging to a profile, newest first.
func (r *CampaignRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Campaign, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+campaignCols+" FROM campaigns WHERE owner_id = ? ORDER BY id DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListActive returns active campaigns for public browsing with offset+limit
// pagination and the total count alongside the page.
func (r *CampaignRepo) ListActive(ctx context.Context, category string, limit, offset int) ([]*model.Campaign, int64, error) {
	cond := "is_active = TRUE"
	args := []any{}
	if category != "" {
		cond += " AND category = ?"
		args = append(args, category)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM campaigns WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+campaignCols+" FROM campaigns WHERE "+cond+" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]*model.Campaign, 0, limit)
	for rows.Next() {
		c, err := scanCampaign(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

// ownerOf returns the owner id of a campaign or ErrCampaignNotFound.
func (r *CampaignRepo) ownerOf(ctx context.Context, id uint64) (uint64, error) {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT owner_id FROM campaigns WHERE id = ?", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrCampaignNotFound
	}
	return owner, err
}

// UpdateByIDAndOwner rewrites the editable fields of a campaign. A row owned
// by a different profile yields ErrForbidden; a missing row yields
// ErrCampaignNotFound. current_amount_cents is only touched by the donation
// flow and is absent here.
func (r *CampaignRepo) UpdateByIDAndOwner(ctx context.Context, c *model.Campaign, ownerID uint64) error {
	owner, err := r.ownerOf(ctx, c.ID)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	needs, err := json.Marshal(c.ImmediateNeeds)
	if err != nil {
		return err
	}
	// owner_id repeated in the WHERE clause so a lost race still cannot
	// cross an ownership boundary.
	_, err = r.db.ExecContext(ctx,
		`UPDATE campaigns SET title=?, description=?, category=?, campaign_type=?,
		   target_amount_cents=?, is_disaster_relief=?, disaster_type=?, affected_area=?,
		   immediate_needs=?, location=?, image_url=?, updated_at=CURRENT_TIMESTAMP
		 WHERE id=? AND owner_id=?`,
		c.Title, c.Description, c.Category, c.CampaignType,
		c.TargetAmountCents, c.IsDisasterRelief, c.DisasterType, c.AffectedArea,
		string(needs), c.Location, c.ImageURL, c.ID, ownerID)
	return err
}

// SetActive soft-(de)activates a campaign with the same ownership rules.
func (r *CampaignRepo) SetActive(ctx context.Context, id, ownerID uint64, active bool) error {
	owner, err := r.ownerOf(ctx, id)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE campaigns SET is_active=?, updated_at=CURRENT_TIMESTAMP WHERE id=? AND owner_id=?",
		active, id, ownerID)
	return err
}
