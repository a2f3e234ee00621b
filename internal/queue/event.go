// Package queue defines message payloads exchanged over the message broker.
package queue

// DonationCompletedEvent is published after a donation is recorded. It
// carries enough information for the notification fan-out consumer to build
// the campaign owner's alert without querying the primary database.
type DonationCompletedEvent struct {
	DonationID    uint64 `json:"donation_id"`
	CampaignID    uint64 `json:"campaign_id"`
	CampaignOwner uint64 `json:"campaign_owner"`
	CampaignTitle string `json:"campaign_title"`
	AmountCents   uint64 `json:"amount_cents"`
	DonorName     string `json:"donor_name"` // "Anonymous" when the donor hid themselves
	IsAnonymous   bool   `json:"is_anonymous"`
	IsRecurring   bool   `json:"is_recurring"`
	GoalReached   bool   `json:"goal_reached"` // campaign crossed its target with this donation
	CompletedAt   string `json:"completed_at"`
}
