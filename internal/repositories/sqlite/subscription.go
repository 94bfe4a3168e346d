package sqlite

import (
	"context"
	"database/sql"

	"site-notify-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// SubscriptionRepository implements the SubscriptionRepository interface for SQLite
type SubscriptionRepository struct {
	*BaseRepository
}

// NewSubscriptionRepository creates a new SQLite subscription repository
func NewSubscriptionRepository(db *sql.DB, logger *logrus.Logger) repositories.SubscriptionRepository {
	return &SubscriptionRepository{
		BaseRepository: NewBaseRepository(db, "email_subscriptions", logger),
	}
}

// ListActiveEmails returns the addresses of all active subscriptions
func (r *SubscriptionRepository) ListActiveEmails(ctx context.Context) ([]string, error) {
	query := `
		SELECT email
		FROM email_subscriptions
		WHERE active = 1`

	rows, err := r.executeQuery(ctx, "list_active", query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, repositories.NewRepositoryError("list_active", "email_subscription", "", err)
		}
		emails = append(emails, email)
	}

	if err = rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list_active", "email_subscription", "", err)
	}

	return emails, nil
}
