package model

import "time"

// Notification types inserted by the fan-out consumer.
const (
	NotifDonationReceived = "donation_received"
	NotifCampaignGoal     = "campaign_goal_reached"
)

// Notification mirrors the `notifications` table: one user-facing alert.
// Payload is a denormalized JSON object referencing the triggering entity
// (e.g. campaign id, donation id, amount). Only the recipient may flip
// IsRead.
type Notification struct {
	ID          uint64         `json:"id"`
	RecipientID uint64         `json:"recipient_id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Payload     map[string]any `json:"payload,omitempty"`
	IsRead      bool           `json:"is_read"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
