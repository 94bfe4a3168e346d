package services

import (
	"context"

	"site-notify-api/internal/models"
)

// SubmitContactRequest is the input for a contact form submission
type SubmitContactRequest struct {
	Name    string `json:"name" binding:"required" validate:"required"`
	Email   string `json:"email" binding:"required" validate:"required"`
	Subject string `json:"subject" binding:"required" validate:"required"`
	Message string `json:"message" binding:"required" validate:"required"`
}

// SubmitContactResult reports a stored-and-notified submission
type SubmitContactResult struct {
	ContactID string `json:"contactId"`
	EmailID   string `json:"emailId"`
}

// ReplyRequest is the input for an admin reply to a stored contact message
type ReplyRequest struct {
	MessageID    string `json:"message_id" binding:"required" validate:"required"`
	Reply        string `json:"reply" binding:"required" validate:"required"`
	ReplySubject string `json:"reply_subject"`
}

// ReplyResult reports a completed reply
type ReplyResult struct {
	MessageID string `json:"messageId"`
	EmailID   string `json:"emailId"`
}

// BroadcastRequest is the input for a newsletter broadcast
type BroadcastRequest struct {
	Subject string `json:"subject" binding:"required" validate:"required"`
	Content string `json:"content" binding:"required" validate:"required"`
}

// BroadcastResult reports a completed (or empty) broadcast
type BroadcastResult struct {
	EmailID        string `json:"emailId"`
	RecipientCount int    `json:"recipientCount"`
}

// ContactService handles contact form intake and admin replies
type ContactService interface {
	// SubmitContact validates, stores and dispatches an admin notification
	// for a contact form submission.
	SubmitContact(ctx context.Context, req *SubmitContactRequest) (*SubmitContactResult, error)

	// ReplyToContact authorizes the bearer credential, records the reply and
	// emails the original sender.
	ReplyToContact(ctx context.Context, token string, req *ReplyRequest) (*ReplyResult, error)

	// GetMessage fetches a stored contact message by id. The caller must
	// present an admin bearer credential.
	GetMessage(ctx context.Context, token, id string) (*models.ContactMessage, error)
}

// NewsletterService handles newsletter broadcasts
type NewsletterService interface {
	// Broadcast evaluates the forwarded credential, gathers and deduplicates
	// recipients, sends one batched email and records an audit row.
	Broadcast(ctx context.Context, credential string, req *BroadcastRequest) (*BroadcastResult, error)
}

// TokenVerifier verifies a bearer credential and yields the subject identity
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
