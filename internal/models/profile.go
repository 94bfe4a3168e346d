package models

import (
	"fmt"
	"time"
)

// ProfileRole represents a user role stored on a profile
type ProfileRole string

const (
	RoleAdmin ProfileRole = "admin"
	RoleUser  ProfileRole = "user"
)

// Profile represents an auth-provider user profile. The reply handler uses it
// for the admin role check; broadcasts read profile email addresses.
type Profile struct {
	ID        string      `json:"id" db:"id" validate:"required"`
	Email     *string     `json:"email,omitempty" db:"email"`
	Role      ProfileRole `json:"role" db:"role" validate:"required,oneof=admin user"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// Validate validates the profile data
func (p *Profile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("profile ID is required")
	}

	if p.Role != RoleAdmin && p.Role != RoleUser {
		return fmt.Errorf("invalid profile role: %s", p.Role)
	}

	return nil
}

// IsAdmin returns true if the profile carries the admin role
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// GetEmail returns the profile email or empty string if none is set
func (p *Profile) GetEmail() string {
	if p.Email == nil {
		return ""
	}
	return *p.Email
}
