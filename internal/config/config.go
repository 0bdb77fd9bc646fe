package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	Port         string
	Storage      string
	DBConn       string
	LogLevel     string
	JWTSecret    string
	TokenExpiry  time.Duration
	AuthRequired bool
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	ReminderCron string
}

// NewConfig loads configuration from environment variables. A .env file in
// the working directory is read first when present; real environment
// variables take precedence over it.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	expiry, err := time.ParseDuration(getEnv("TOKEN_EXPIRY", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_EXPIRY: %w", err)
	}
	authRequired, err := strconv.ParseBool(getEnv("AUTH_REQUIRED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_REQUIRED: %w", err)
	}

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Storage:      getEnv("STORAGE", StoragePostgres),
		DBConn:       getEnv("DB_CONN", "host=localhost port=5432 user=postgres password=postgres dbname=gastos sslmode=disable"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:    getEnv("JWT_SECRET", "secret"),
		TokenExpiry:  expiry,
		AuthRequired: authRequired,
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "noreply@gastos.local"),
		ReminderCron: getEnv("REMINDER_CRON", "0 8 * * *"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required values are present and well formed
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port '%s': must be a number", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	switch c.Storage {
	case StoragePostgres:
		if c.DBConn == "" {
			return fmt.Errorf("DB_CONN is required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("invalid STORAGE '%s': must be %s or %s", c.Storage, StoragePostgres, StorageMemory)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.TokenExpiry <= 0 {
		return fmt.Errorf("TOKEN_EXPIRY must be positive")
	}
	if c.ReminderCron == "" {
		return fmt.Errorf("REMINDER_CRON is required")
	}
	return nil
}

// EmailEnabled reports whether reminders are delivered over SMTP
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
