package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "JWT_SECRET", "DEV_TENANT_ID", "STORAGE_DIR",
		"STORAGE_QUOTA_BYTES", "MAX_UPLOAD_BYTES", "REQUEST_TIMEOUT", "DB_CONNECT_ATTEMPTS", "TOKEN_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int64(100<<20), cfg.StorageQuotaBytes)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, uint64(10), cfg.DBConnectAttempts)
	assert.Equal(t, "dev-tenant", cfg.DevTenantID)
	assert.False(t, cfg.AuthEnabled())
	assert.Equal(t, "info", cfg.GetLoggerConfig().Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("STORAGE_QUOTA_BYTES", "2048")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int64(2048), cfg.StorageQuotaBytes)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PORT", "http"},
		{"REQUEST_TIMEOUT", "soon"},
		{"REQUEST_TIMEOUT", "-1s"},
		{"STORAGE_QUOTA_BYTES", "lots"},
		{"STORAGE_QUOTA_BYTES", "0"},
		{"MAX_UPLOAD_BYTES", "-5"},
		{"DB_CONNECT_ATTEMPTS", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
