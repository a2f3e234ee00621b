package model

import "time"

// Profile mirrors the `profiles` table: one row per identity, keyed by the
// identity's user id. Created lazily by the repair path with
// ProfileCompleted=false; the completion wizard fills the role-specific
// fields and flips the flag. Role never changes after the row exists.
//
// AreasOfFocus (ordered list) and SocialMedia (platform -> URL, blanks
// dropped before persisting) are denormalized JSON columns, not join tables.
type Profile struct {
	UserID           uint64            `json:"user_id"`
	Email            string            `json:"email"`
	Role             string            `json:"role"`
	DisplayName      string            `json:"display_name"`
	Bio              string            `json:"bio"`
	Location         string            `json:"location"`
	Phone            string            `json:"phone"`
	Website          string            `json:"website"`
	BloodType        string            `json:"blood_type,omitempty"` // individuals only
	OrganizationName string            `json:"organization_name,omitempty"`
	OrganizationType string            `json:"organization_type,omitempty"`
	RegistrationNo   string            `json:"registration_number,omitempty"` // NGO only
	Mission          string            `json:"mission,omitempty"`
	FoundedYear      int               `json:"founded_year,omitempty"`
	StaffCount       int               `json:"staff_count,omitempty"`
	VolunteerCount   int               `json:"volunteer_count,omitempty"`
	AreasOfFocus     []string          `json:"areas_of_focus"`
	SocialMedia      map[string]string `json:"social_media"`
	IsVerified       bool              `json:"is_verified"`
	ProfileCompleted bool              `json:"profile_completed"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
