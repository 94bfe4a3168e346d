package sqlite

import (
	"database/sql"

	"site-notify-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// NewRepositoryContainer builds the full set of SQLite-backed repositories
func NewRepositoryContainer(db *sql.DB, logger *logrus.Logger) *repositories.RepositoryContainer {
	return &repositories.RepositoryContainer{
		ContactMessageRepo: NewContactMessageRepository(db, logger),
		SubscriptionRepo:   NewSubscriptionRepository(db, logger),
		ProfileRepo:        NewProfileRepository(db, logger),
		NewsletterSendRepo: NewNewsletterSendRepository(db, logger),
	}
}
