package server

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"site-notify-api/internal/config"
	"site-notify-api/internal/database"
	"site-notify-api/internal/middleware"
	"site-notify-api/internal/repositories/sqlite"
	"site-notify-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config            *config.Config
	ContactService    services.ContactService
	NewsletterService services.NewsletterService
	AuthService       *middleware.AuthService
	Logger            *logrus.Logger

	// Internal dependencies
	db     *sql.DB
	dbConn *database.ConnectionManager
}

// NewContainer creates a new dependency injection container. The database is
// opened and migrated here so a cold start fails fast on a broken schema.
func NewContainer(cfg *config.Config) (*Container, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "development" {
		logger.SetLevel(logrus.DebugLevel)
	}

	dbConn := database.NewConnectionManager(&database.ConnectionConfig{
		DatabasePath:    cfg.Database.ConnectionString,
		MigrationsPath:  cfg.Database.MigrationsPath,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Hour,
		Logger:          logger,
	})
	if err := dbConn.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	db := dbConn.GetDB()

	repos := sqlite.NewRepositoryContainer(db, logger)

	mailer := services.NewSMTPMailer(&services.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromEmail: cfg.SMTP.From,
		FromName:  cfg.SMTP.FromName,
	})

	authService := middleware.NewAuthService(&middleware.AuthConfig{
		JWTSecret:     cfg.JWT.Secret,
		TokenDuration: time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
	})

	contactService := services.NewContactService(
		repos.ContactMessageRepo,
		repos.ProfileRepo,
		mailer,
		authService,
		cfg.Notify.AdminEmail,
		logger,
	)

	newsletterService := services.NewNewsletterService(
		repos.SubscriptionRepo,
		repos.ProfileRepo,
		repos.NewsletterSendRepo,
		mailer,
		cfg.Notify.ServiceKey,
		logger,
	)

	return &Container{
		Config:            cfg,
		ContactService:    contactService,
		NewsletterService: newsletterService,
		AuthService:       authService,
		Logger:            logger,
		db:                db,
		dbConn:            dbConn,
	}, nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.dbConn != nil {
		if err := c.dbConn.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		c.db = nil
	}
	return nil
}

// HealthCheck verifies the container's backing resources are usable
func (c *Container) HealthCheck() error {
	if c.dbConn == nil {
		return fmt.Errorf("container not initialized")
	}
	return c.dbConn.HealthCheck()
}
