package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/satheeshds/buildledger/internal/logger"
)

type Config struct {
	// HTTP
	Port           string
	RequestTimeout time.Duration

	// Database. An empty URL selects the in-memory store.
	DatabaseURL       string
	DBConnectAttempts uint64

	// Auth. An empty secret disables token checks and injects a development session.
	JWTSecret   string
	TokenTTL    time.Duration
	DevTenantID string

	// Attachment storage
	StorageDir        string
	StorageQuotaBytes int64
	MaxUploadBytes    int64

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		DevTenantID:   getEnv("DEV_TENANT_ID", "dev-tenant"),
		StorageDir:    getEnv("STORAGE_DIR", "./data/attachments"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stdout"),
	}

	var err error
	if config.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if config.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if config.StorageQuotaBytes, err = getInt("STORAGE_QUOTA_BYTES", 100<<20); err != nil {
		return nil, err
	}
	if config.MaxUploadBytes, err = getInt("MAX_UPLOAD_BYTES", 10<<20); err != nil {
		return nil, err
	}
	attempts, err := getInt("DB_CONNECT_ATTEMPTS", 10)
	if err != nil {
		return nil, err
	}
	config.DBConnectAttempts = uint64(max(attempts, 0))

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be a number")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.StorageQuotaBytes <= 0 {
		return fmt.Errorf("STORAGE_QUOTA_BYTES must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.StorageDir == "" {
		return fmt.Errorf("STORAGE_DIR is required")
	}
	if c.JWTSecret == "" && c.DevTenantID == "" {
		return fmt.Errorf("DEV_TENANT_ID is required when JWT_SECRET is empty")
	}
	return nil
}

// AuthEnabled reports whether requests must carry a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 30s: %w", key, err)
	}
	return d, nil
}
