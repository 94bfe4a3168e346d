package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewsletterSend is an append-only audit row recording a completed broadcast.
type NewsletterSend struct {
	ID             string    `json:"id" db:"id" validate:"required,uuid"`
	Subject        string    `json:"subject" db:"subject" validate:"required"`
	Content        string    `json:"content" db:"content" validate:"required"`
	SentAt         time.Time `json:"sent_at" db:"sent_at"`
	RecipientCount int       `json:"recipient_count" db:"recipient_count"`
}

// NewNewsletterSend creates an audit record for a broadcast that was just sent
func NewNewsletterSend(subject, content string, recipientCount int) *NewsletterSend {
	return &NewsletterSend{
		ID:             uuid.New().String(),
		Subject:        subject,
		Content:        content,
		SentAt:         time.Now().UTC(),
		RecipientCount: recipientCount,
	}
}

// Validate validates the newsletter send data
func (ns *NewsletterSend) Validate() error {
	if ns.ID == "" {
		return fmt.Errorf("newsletter send ID is required")
	}

	if strings.TrimSpace(ns.Subject) == "" {
		return fmt.Errorf("newsletter subject is required")
	}

	if strings.TrimSpace(ns.Content) == "" {
		return fmt.Errorf("newsletter content is required")
	}

	if ns.RecipientCount < 0 {
		return fmt.Errorf("recipient count cannot be negative")
	}

	return nil
}
