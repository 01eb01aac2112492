package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "devlink", cfg.MongoDB)
	assert.Equal(t, "mongo", cfg.StorageBackend)
	assert.Equal(t, time.Hour, cfg.JWTExpiration)
	assert.Equal(t, 120, cfg.RateLimitRPM)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("RATE_LIMIT_RPM", "30")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.ServerAddress)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, 30, cfg.RateLimitRPM)
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPM", "not-a-number")

	cfg := Load()
	assert.Equal(t, 120, cfg.RateLimitRPM)
}
