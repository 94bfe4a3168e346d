package repositories

import (
	"context"
	"time"

	"site-notify-api/internal/models"
)

// ContactMessageRepository manages stored contact form submissions
type ContactMessageRepository interface {
	// Create inserts a new contact message with status pending
	Create(ctx context.Context, message *models.ContactMessage) error

	// GetByID retrieves a contact message; NotFoundError when the row is absent
	GetByID(ctx context.Context, id string) (*models.ContactMessage, error)

	// MarkReplied transitions the row to replied and stores the reply text,
	// reply subject and timestamps in a single update.
	MarkReplied(ctx context.Context, id, reply, replySubject string, repliedAt time.Time) error

	// List retrieves contact messages with optional filters
	List(ctx context.Context, filters map[string]interface{}) ([]*models.ContactMessage, error)
}

// SubscriptionRepository reads newsletter subscriptions. The handlers never
// create or modify subscription rows.
type SubscriptionRepository interface {
	// ListActiveEmails returns the addresses of all active subscriptions
	ListActiveEmails(ctx context.Context) ([]string, error)
}

// ProfileRepository reads auth-provider user profiles
type ProfileRepository interface {
	// GetByID retrieves a profile; NotFoundError when the row is absent
	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// ListEmailAddresses returns the addresses of all profiles with a
	// non-null email.
	ListEmailAddresses(ctx context.Context) ([]string, error)
}

// NewsletterSendRepository appends broadcast audit rows
type NewsletterSendRepository interface {
	// Create appends an audit row for a completed broadcast
	Create(ctx context.Context, send *models.NewsletterSend) error

	// List retrieves audit rows, most recent first
	List(ctx context.Context, filters map[string]interface{}) ([]*models.NewsletterSend, error)
}

// RepositoryContainer holds all repository dependencies
type RepositoryContainer struct {
	ContactMessageRepo ContactMessageRepository
	SubscriptionRepo   SubscriptionRepository
	ProfileRepo        ProfileRepository
	NewsletterSendRepo NewsletterSendRepository
}
