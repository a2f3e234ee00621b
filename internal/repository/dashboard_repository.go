package repository

import (
	"context"
	"database/sql"
)

// DashboardStats aggregates a profile's own records for the dashboard page.
// Every count is scoped to the requesting profile; nothing here spans users.
type DashboardStats struct {
	Campaigns           int64  `json:"campaigns"`
	ActiveCampaigns     int64  `json:"active_campaigns"`
	HelpRequests        int64  `json:"help_requests"`
	DonationItems       int64  `json:"donation_items"`
	CommunityDrives     int64  `json:"community_drives"`
	InventoryItems      int64  `json:"inventory_items"`
	RaisedCents         uint64 `json:"raised_cents"`          // across own campaigns
	DonationsMade       int64  `json:"donations_made"`        // as donor
	DonatedCents        uint64 `json:"donated_cents"`         // as donor
	UnreadNotifications int64  `json:"unread_notifications"`
}

type DashboardRepo struct{ db *sql.DB }

func NewDashboardRepo(db *sql.DB) *DashboardRepo { return &DashboardRepo{db: db} }

// Stats runs the dashboard aggregation queries sequentially. Each query is
// independent; partial failure aborts the whole load like any other
// collaborator error.
func (r *DashboardRepo) Stats(ctx context.Context, userID uint64) (*DashboardStats, error) {
	s := &DashboardStats{}
	row := r.db.QueryRowContext(ctx, `SELECT
			(SELECT COUNT(*) FROM campaigns WHERE owner_id = ?),
			(SELECT COUNT(*) FROM campaigns WHERE owner_id = ? AND is_active = TRUE),
			(SELECT COUNT(*) FROM help_requests WHERE owner_id = ?),
			(SELECT COUNT(*) FROM donation_items WHERE owner_id = ?),
			(SELECT COUNT(*) FROM community_drives WHERE owner_id = ?),
			(SELECT COUNT(*) FROM inventory_items WHERE owner_id = ?),
			(SELECT COALESCE(SUM(current_amount_cents),0) FROM campaigns WHERE owner_id = ?),
			(SELECT COUNT(*) FROM donations WHERE donor_id = ?),
			(SELECT COALESCE(SUM(amount_cents),0) FROM donations WHERE donor_id = ?),
			(SELECT COUNT(*) FROM notifications WHERE recipient_id = ? AND is_read = FALSE)`,
		userID, userID, userID, userID, userID, userID, userID, userID, userID, userID)
	if err := row.Scan(&s.Campaigns, &s.ActiveCampaigns, &s.HelpRequests, &s.DonationItems,
		&s.CommunityDrives, &s.InventoryItems, &s.RaisedCents, &s.DonationsMade,
		&s.DonatedCents, &s.UnreadNotifications); err != nil {
		return nil, err
	}
	return s, nil
}
