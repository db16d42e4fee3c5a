package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("JWT_EXPIRY_MIN", "")
	t.Setenv("CACHE_TTL_SEC", "")

	cfg := LoadConfig()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 60*24, cfg.JWTExpiryMin)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.S3Enabled())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_EXPIRY_MIN", "15")
	t.Setenv("CACHE_TTL_SEC", "30")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("S3_REGION", "eu-west-1")
	t.Setenv("S3_BUCKET", "market-images")

	cfg := LoadConfig()
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, 15, cfg.JWTExpiryMin)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.S3Enabled())
}

func TestGetEnvAsDuration_IgnoresGarbage(t *testing.T) {
	t.Setenv("CACHE_TTL_SEC", "soon")
	assert.Equal(t, time.Minute, getEnvAsDuration("CACHE_TTL_SEC", time.Minute))

	t.Setenv("CACHE_TTL_SEC", "-4")
	assert.Equal(t, time.Minute, getEnvAsDuration("CACHE_TTL_SEC", time.Minute))
}
