package model

import "time"

// HelpRequest mirrors the `help_requests` table: a participant asking for
// aid rather than offering it.
type HelpRequest struct {
	ID           uint64    `json:"id"`
	OwnerID      uint64    `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"` // medical, food, shelter, education, other
	Urgency      string    `json:"urgency"`  // low, medium, high, critical
	Location     string    `json:"location"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidUrgency reports whether s is an accepted urgency level.
func ValidUrgency(s string) bool {
	switch s {
	case "low", "medium", "high", "critical":
		return true
	}
	return false
}

// DonationItem mirrors the `donation_items` table: a physical good offered
// for pickup. Visibility is controlled by IsAvailable, not deletion.
type DonationItem struct {
	ID             uint64    `json:"id"`
	OwnerID        uint64    `json:"owner_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`  // clothing, food, furniture, electronics, books, other
	Condition      string    `json:"condition"` // new, like_new, good, fair
	Quantity       int       `json:"quantity"`
	PickupLocation string    `json:"pickup_location"`
	ImageURL       string    `json:"image_url,omitempty"`
	IsAvailable    bool      `json:"is_available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ValidCondition reports whether s is an accepted item condition.
func ValidCondition(s string) bool {
	switch s {
	case "new", "like_new", "good", "fair":
		return true
	}
	return false
}

// CommunityDrive mirrors the `community_drives` table: a scheduled local
// event organized by a profile.
type CommunityDrive struct {
	ID              uint64    `json:"id"`
	OwnerID         uint64    `json:"owner_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DriveType       string    `json:"drive_type"` // food_drive, blood_drive, cleanup, fundraiser, awareness
	Location        string    `json:"location"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	ParticipantGoal int       `json:"participant_goal"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ValidDriveType reports whether s is an accepted drive type.
func ValidDriveType(s string) bool {
	switch s {
	case "food_drive", "blood_drive", "cleanup", "fundraiser", "awareness":
		return true
	}
	return false
}

// InventoryItem mirrors the `inventory_items` table: stock tracked by NGOs
// and organizations for distribution. Unlike the other content entities it
// supports hard deletion, since inventory rows are bookkeeping rather than
// public posts.
type InventoryItem struct {
	ID          uint64    `json:"id"`
	OwnerID     uint64    `json:"owner_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	Unit        string    `json:"unit"`
	Notes       string    `json:"notes,omitempty"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
