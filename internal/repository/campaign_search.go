package repository

import (
	"context"
	"strings"
)

// CampaignSearchQuery defines filters & pagination for searching campaigns.
type CampaignSearchQuery struct {
	Title      string
	Category   string
	Location   string
	TimeFilter string // "active" (default) or "any"
	Page       int
	PageSize   int
}

// PublicCampaignRow is the sanitized shape returned by search: owner contact
// fields stay private, amounts are exposed both in cents and as a float.
type PublicCampaignRow struct {
	ID            uint64  `json:"id"`
	Title         string  `json:"title"`
	Category      string  `json:"category"`
	CampaignType  string  `json:"campaign_type"`
	Location      string  `json:"location"`
	OwnerName     string  `json:"owner_name"`
	TargetCents   uint64  `json:"target_amount_cents"`
	CurrentCents  uint64  `json:"current_amount_cents"`
	Target        float64 `json:"target_amount"`
	Current       float64 `json:"current_amount"`
	IsDisaster    bool    `json:"is_disaster_relief"`
	OwnerVerified bool    `json:"owner_verified"`
	CreatedAt     string  `json:"created_at"`
}

// Search returns campaigns matching the query plus the total match count.
// Pattern filters are case-insensitive substring matches; pagination is
// offset+limit derived from page/page_size.
func (r *CampaignRepo) Search(ctx context.Context, q CampaignSearchQuery) ([]PublicCampaignRow, int64, error) {
	where := []string{}
	args := []any{}

	switch strings.ToLower(q.TimeFilter) {
	case "any":
	default:
		where = append(where, "c.is_active = TRUE")
	}
	if q.Title != "" {
		where = append(where, "LOWER(c.title) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Title)+"%")
	}
	if q.Category != "" {
		where = append(where, "c.category = ?")
		args = append(args, strings.ToLower(q.Category))
	}
	if q.Location != "" {
		where = append(where, "LOWER(c.location) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Location)+"%")
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM campaigns c
		JOIN profiles p ON p.user_id = c.owner_id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			c.id,
			c.title,
			c.category,
			c.campaign_type,
			c.location,
			p.display_name AS owner_name,
			c.target_amount_cents,
			c.current_amount_cents,
			c.is_disaster_relief,
			p.is_verified,
			DATE_FORMAT(c.created_at, '%Y-%m-%d %T') AS created_at
		FROM campaigns c
		JOIN profiles p ON p.user_id = c.owner_id
		WHERE ` + cond + `
		ORDER BY c.created_at DESC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]PublicCampaignRow, 0, limit)
	for rows.Next() {
		var d PublicCampaignRow
		if err := rows.Scan(
			&d.ID,
			&d.Title,
			&d.Category,
			&d.CampaignType,
			&d.Location,
			&d.OwnerName,
			&d.TargetCents,
			&d.CurrentCents,
			&d.IsDisaster,
			&d.OwnerVerified,
			&d.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		d.Target = float64(d.TargetCents) / 100.0
		d.Current = float64(d.CurrentCents) / 100.0
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
