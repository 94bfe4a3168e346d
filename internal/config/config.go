package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Database    DatabaseConfig
	SMTP        SMTPConfig
	JWT         JWTConfig
	Notify      NotifyConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	ConnectionString string
	MigrationsPath   string
	MaxOpenConns     int
	MaxIdleConns     int
}

// SMTPConfig holds email provider configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// JWTConfig holds bearer-token verification configuration
type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// NotifyConfig holds notification-specific configuration
type NotifyConfig struct {
	// AdminEmail receives contact form notifications
	AdminEmail string
	// ServiceKey is the credential the newsletter endpoint forwards to the
	// datastore layer for access-control evaluation
	ServiceKey string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8082")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_CONNECTION_STRING", "./data/notify.db")
	viper.SetDefault("DB_MIGRATIONS_PATH", "./migrations")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 1)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 1)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM_NAME", "Site Notifications")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		Database: DatabaseConfig{
			ConnectionString: viper.GetString("DB_CONNECTION_STRING"),
			MigrationsPath:   viper.GetString("DB_MIGRATIONS_PATH"),
			MaxOpenConns:     viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:     viper.GetInt("DB_MAX_IDLE_CONNS"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			Username: viper.GetString("SMTP_USERNAME"),
			Password: viper.GetString("SMTP_PASSWORD"),
			From:     viper.GetString("SMTP_FROM"),
			FromName: viper.GetString("SMTP_FROM_NAME"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Notify: NotifyConfig{
			AdminEmail: viper.GetString("ADMIN_EMAIL"),
			ServiceKey: viper.GetString("NEWSLETTER_SERVICE_KEY"),
		},
	}

	return config, nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt gets an environment variable as integer with a fallback value
func GetEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
