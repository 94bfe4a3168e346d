package sqlite

import (
	"context"
	"database/sql"

	"site-notify-api/internal/models"
	"site-notify-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ProfileRepository implements the ProfileRepository interface for SQLite
type ProfileRepository struct {
	*BaseRepository
}

// NewProfileRepository creates a new SQLite profile repository
func NewProfileRepository(db *sql.DB, logger *logrus.Logger) repositories.ProfileRepository {
	return &ProfileRepository{
		BaseRepository: NewBaseRepository(db, "profiles", logger),
	}
}

// GetByID retrieves a profile by user ID
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	query := `
		SELECT id, email, role, created_at
		FROM profiles
		WHERE id = ?`

	row := r.executeQueryRow(ctx, "get_by_id", query, id)

	profile := &models.Profile{}
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&profile.Role,
		&profile.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.NotFoundError("profile", id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "profile", id, err)
	}

	return profile, nil
}

// ListEmailAddresses returns the addresses of all profiles with a non-null email
func (r *ProfileRepository) ListEmailAddresses(ctx context.Context) ([]string, error) {
	query := `
		SELECT email
		FROM profiles
		WHERE email IS NOT NULL AND email != ''`

	rows, err := r.executeQuery(ctx, "list_emails", query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, repositories.NewRepositoryError("list_emails", "profile", "", err)
		}
		emails = append(emails, email)
	}

	if err = rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list_emails", "profile", "", err)
	}

	return emails, nil
}
