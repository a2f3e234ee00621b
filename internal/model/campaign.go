package model

import "time"

// Campaign types. Only monetary campaigns carry a target amount.
const (
	CampaignMonetary  = "monetary"
	CampaignGoods     = "goods"
	CampaignVolunteer = "volunteer"
)

// ValidCampaignType reports whether s is an accepted campaign type.
func ValidCampaignType(s string) bool {
	switch s {
	case CampaignMonetary, CampaignGoods, CampaignVolunteer:
		return true
	}
	return false
}

// Campaign mirrors the `campaigns` table. Amounts are stored in cents.
// CurrentAmountCents is only ever advanced by the donation flow, inside the
// same transaction that records the donation row. Disaster-relief fields are
// meaningful only when IsDisasterRelief is set; ImmediateNeeds is a
// denormalized JSON list of free-text tags.
type Campaign struct {
	ID                 uint64    `json:"id"`
	OwnerID            uint64    `json:"owner_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	CampaignType       string    `json:"campaign_type"`
	TargetAmountCents  uint64    `json:"target_amount_cents"`
	CurrentAmountCents uint64    `json:"current_amount_cents"`
	IsDisasterRelief   bool      `json:"is_disaster_relief"`
	DisasterType       string    `json:"disaster_type,omitempty"`
	AffectedArea       string    `json:"affected_area,omitempty"`
	ImmediateNeeds     []string  `json:"immediate_needs,omitempty"`
	Location           string    `json:"location"`
	ImageURL           string    `json:"image_url,omitempty"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
