package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Port:         "8080",
		Storage:      StoragePostgres,
		DBConn:       "host=localhost",
		JWTSecret:    "secret",
		TokenExpiry:  time.Hour,
		ReminderCron: "0 8 * * *",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		errorString string
	}{
		{name: "valid postgres config", mutate: func(c *Config) {}},
		{name: "memory storage needs no DB_CONN", mutate: func(c *Config) {
			c.Storage = StorageMemory
			c.DBConn = ""
		}},
		{name: "non-numeric port", mutate: func(c *Config) { c.Port = "abc" },
			errorString: "invalid port 'abc': must be a number"},
		{name: "port out of range", mutate: func(c *Config) { c.Port = "70000" },
			errorString: "invalid port 70000: must be between 1 and 65535"},
		{name: "postgres without DB_CONN", mutate: func(c *Config) { c.DBConn = "" },
			errorString: "DB_CONN is required"},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage = "sqlite" },
			errorString: "invalid STORAGE 'sqlite': must be postgres or memory"},
		{name: "empty JWT secret", mutate: func(c *Config) { c.JWTSecret = "" },
			errorString: "JWT_SECRET is required"},
		{name: "zero token expiry", mutate: func(c *Config) { c.TokenExpiry = 0 },
			errorString: "TOKEN_EXPIRY must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errorString == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.errorString)
		})
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE", "memory")
	t.Setenv("TOKEN_EXPIRY", "2h")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 2*time.Hour, cfg.TokenExpiry)
	assert.True(t, cfg.AuthRequired)
	assert.True(t, cfg.EmailEnabled())
}

func TestNewConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("TOKEN_EXPIRY", "tomorrow")
	_, err := NewConfig()
	assert.ErrorContains(t, err, "invalid TOKEN_EXPIRY")
}
