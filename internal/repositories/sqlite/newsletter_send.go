package sqlite

import (
	"context"
	"database/sql"

	"site-notify-api/internal/models"
	"site-notify-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// NewsletterSendRepository implements the NewsletterSendRepository interface for SQLite
type NewsletterSendRepository struct {
	*BaseRepository
}

// NewNewsletterSendRepository creates a new SQLite newsletter send repository
func NewNewsletterSendRepository(db *sql.DB, logger *logrus.Logger) repositories.NewsletterSendRepository {
	return &NewsletterSendRepository{
		BaseRepository: NewBaseRepository(db, "newsletter_sends", logger),
	}
}

// Create appends an audit row for a completed broadcast
func (r *NewsletterSendRepository) Create(ctx context.Context, send *models.NewsletterSend) error {
	if err := send.Validate(); err != nil {
		return repositories.ValidationError("newsletter_send", send.ID, err)
	}

	query := `
		INSERT INTO newsletter_sends (id, subject, content, sent_at, recipient_count)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.executeExec(ctx, "create", query,
		send.ID,
		send.Subject,
		send.Content,
		send.SentAt,
		send.RecipientCount,
	)

	return err
}

// List retrieves audit rows, most recent first
func (r *NewsletterSendRepository) List(ctx context.Context, filters map[string]interface{}) ([]*models.NewsletterSend, error) {
	query := `
		SELECT id, subject, content, sent_at, recipient_count
		FROM newsletter_sends`

	whereClause, args := r.buildWhereClause(filters)
	if whereClause != "" {
		query += " " + whereClause
	}

	query += " ORDER BY sent_at DESC"

	rows, err := r.executeQuery(ctx, "list", query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sends []*models.NewsletterSend
	for rows.Next() {
		send := &models.NewsletterSend{}
		err := rows.Scan(
			&send.ID,
			&send.Subject,
			&send.Content,
			&send.SentAt,
			&send.RecipientCount,
		)
		if err != nil {
			return nil, repositories.NewRepositoryError("list", "newsletter_send", "", err)
		}
		sends = append(sends, send)
	}

	if err = rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "newsletter_send", "", err)
	}

	return sends, nil
}
