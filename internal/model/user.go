package model

import "time"

// Roles accepted at registration. The role is copied onto the profile row
// by the repair path and is immutable afterwards.
const (
	RoleIndividual   = "INDIVIDUAL"
	RoleNGO          = "NGO"
	RoleOrganization = "ORGANIZATION"
)

// ValidRole reports whether s is one of the accepted account roles.
func ValidRole(s string) bool {
	switch s {
	case RoleIndividual, RoleNGO, RoleOrganization:
		return true
	}
	return false
}

// User mirrors the `users` table: the authentication identity. Application
// level participant data lives on the Profile row that shares this id.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	DisplayName  string    `json:"display_name"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshTokenRow mirrors the `refresh_tokens` table. The plain token is
// never stored, only its SHA-256 hash.
type RefreshTokenRow struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
