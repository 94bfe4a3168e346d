package sqlite

import (
	"context"
	"database/sql"
	"time"

	"site-notify-api/internal/models"
	"site-notify-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ContactMessageRepository implements the ContactMessageRepository interface for SQLite
type ContactMessageRepository struct {
	*BaseRepository
}

// NewContactMessageRepository creates a new SQLite contact message repository
func NewContactMessageRepository(db *sql.DB, logger *logrus.Logger) repositories.ContactMessageRepository {
	return &ContactMessageRepository{
		BaseRepository: NewBaseRepository(db, "contact_messages", logger),
	}
}

// Create inserts a new contact message row
func (r *ContactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	if err := message.Validate(); err != nil {
		return repositories.ValidationError("contact_message", message.ID, err)
	}

	query := `
		INSERT INTO contact_messages (
			id, name, email, subject, message, status, reply, reply_subject,
			replied_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.executeExec(ctx, "create", query,
		message.ID,
		message.Name,
		message.Email,
		message.Subject,
		message.Message,
		message.Status,
		message.Reply,
		message.ReplySubject,
		message.RepliedAt,
		message.CreatedAt,
		message.UpdatedAt,
	)

	return err
}

// GetByID retrieves a contact message by ID
func (r *ContactMessageRepository) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, email, subject, message, status, reply, reply_subject,
			replied_at, created_at, updated_at
		FROM contact_messages
		WHERE id = ?`

	row := r.executeQueryRow(ctx, "get_by_id", query, id)

	message := &models.ContactMessage{}
	err := row.Scan(
		&message.ID,
		&message.Name,
		&message.Email,
		&message.Subject,
		&message.Message,
		&message.Status,
		&message.Reply,
		&message.ReplySubject,
		&message.RepliedAt,
		&message.CreatedAt,
		&message.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.NotFoundError("contact_message", id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "contact_message", id, err)
	}

	return message, nil
}

// MarkReplied stores the reply and flips the status in one update
func (r *ContactMessageRepository) MarkReplied(ctx context.Context, id, reply, replySubject string, repliedAt time.Time) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	query := `
		UPDATE contact_messages
		SET status = ?, reply = ?, reply_subject = ?, replied_at = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.executeExec(ctx, "mark_replied", query,
		models.ContactStatusReplied,
		reply,
		replySubject,
		repliedAt,
		repliedAt,
		id,
	)

	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "mark_replied", id)
}

// List retrieves contact messages with optional filters, newest first
func (r *ContactMessageRepository) List(ctx context.Context, filters map[string]interface{}) ([]*models.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, message, status, reply, reply_subject,
			replied_at, created_at, updated_at
		FROM contact_messages`

	whereClause, args := r.buildWhereClause(filters)
	if whereClause != "" {
		query += " " + whereClause
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.executeQuery(ctx, "list", query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.ContactMessage
	for rows.Next() {
		message := &models.ContactMessage{}
		err := rows.Scan(
			&message.ID,
			&message.Name,
			&message.Email,
			&message.Subject,
			&message.Message,
			&message.Status,
			&message.Reply,
			&message.ReplySubject,
			&message.RepliedAt,
			&message.CreatedAt,
			&message.UpdatedAt,
		)
		if err != nil {
			return nil, repositories.NewRepositoryError("list", "contact_message", "", err)
		}
		messages = append(messages, message)
	}

	if err = rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "contact_message", "", err)
	}

	return messages, nil
}
