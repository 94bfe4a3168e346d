package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContactStatus represents the lifecycle state of a contact message
type ContactStatus string

const (
	ContactStatusPending ContactStatus = "pending"
	ContactStatusReplied ContactStatus = "replied"
)

// ContactMessage represents a stored contact form submission
type ContactMessage struct {
	ID           string        `json:"id" db:"id" validate:"required,uuid"`
	Name         string        `json:"name" db:"name" validate:"required"`
	Email        string        `json:"email" db:"email" validate:"required,email"`
	Subject      string        `json:"subject" db:"subject" validate:"required"`
	Message      string        `json:"message" db:"message" validate:"required"`
	Status       ContactStatus `json:"status" db:"status" validate:"required,oneof=pending replied"`
	Reply        *string       `json:"reply,omitempty" db:"reply"`
	ReplySubject *string       `json:"reply_subject,omitempty" db:"reply_subject"`
	RepliedAt    *time.Time    `json:"replied_at,omitempty" db:"replied_at"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// NewContactMessage creates a pending contact message with the four submitted
// fields already HTML-escaped. Untrusted text must never reach a rendered
// email body unescaped.
func NewContactMessage(name, email, subject, message string) *ContactMessage {
	now := time.Now().UTC()
	return &ContactMessage{
		ID:        uuid.New().String(),
		Name:      EscapeHTML(name),
		Email:     EscapeHTML(email),
		Subject:   EscapeHTML(subject),
		Message:   EscapeHTML(message),
		Status:    ContactStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the contact message data
func (cm *ContactMessage) Validate() error {
	if cm.ID == "" {
		return fmt.Errorf("contact message ID is required")
	}

	if strings.TrimSpace(cm.Name) == "" {
		return fmt.Errorf("name is required")
	}

	if strings.TrimSpace(cm.Email) == "" {
		return fmt.Errorf("email is required")
	}

	if strings.TrimSpace(cm.Subject) == "" {
		return fmt.Errorf("subject is required")
	}

	if strings.TrimSpace(cm.Message) == "" {
		return fmt.Errorf("message is required")
	}

	if cm.Status != ContactStatusPending && cm.Status != ContactStatusReplied {
		return fmt.Errorf("invalid contact status: %s", cm.Status)
	}

	return nil
}

// IsReplied returns true if the message has been replied to
func (cm *ContactMessage) IsReplied() bool {
	return cm.Status == ContactStatusReplied
}

// ReplySubjectOrDefault returns the stored reply subject or the default
// "Re: <original subject>" when none was provided.
func (cm *ContactMessage) ReplySubjectOrDefault() string {
	if cm.ReplySubject != nil && strings.TrimSpace(*cm.ReplySubject) != "" {
		return *cm.ReplySubject
	}
	return "Re: " + cm.Subject
}

// GetReply returns the reply text or empty string if none is stored
func (cm *ContactMessage) GetReply() string {
	if cm.Reply == nil {
		return ""
	}
	return *cm.Reply
}
