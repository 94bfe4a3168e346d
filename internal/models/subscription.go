package models

import (
	"fmt"
	"strings"
	"time"
)

// EmailSubscription represents a newsletter subscription row. Subscriptions
// are created outside this service; the handlers only ever read them.
type EmailSubscription struct {
	ID        string    `json:"id" db:"id" validate:"required,uuid"`
	Email     string    `json:"email" db:"email" validate:"required,email"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Validate validates the subscription data
func (es *EmailSubscription) Validate() error {
	if es.ID == "" {
		return fmt.Errorf("subscription ID is required")
	}

	if strings.TrimSpace(es.Email) == "" {
		return fmt.Errorf("subscription email is required")
	}

	if !IsValidEmail(es.Email) {
		return fmt.Errorf("invalid subscription email format: %s", es.Email)
	}

	return nil
}
