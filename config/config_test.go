package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "BACKEND_URL", "UPSTREAM_TIMEOUT", "CATALOG_CACHE_TTL", "REDIS_HOST", "DB_HOST", "KAFKA_BROKER", "CORS_ALLOW_ORIGINS", "PUBLIC_BASE_URL", "ORDER_SUBMIT_RETRIES"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.BackendURL)
	assert.Equal(t, "http://localhost:8090", cfg.PublicBaseURL)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 2, cfg.OrderSubmitRetries)
	assert.Equal(t, "order-status", cfg.OrderStatusTopic)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.Empty(t, cfg.PostgresDSN())
	assert.Empty(t, cfg.RedisAddr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://gateway:8080/")
	t.Setenv("UPSTREAM_TIMEOUT", "not-a-duration")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("ORDER_SUBMIT_RETRIES", "4")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("DB_HOST", "postgres")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()

	assert.Equal(t, "http://gateway:8080", cfg.BackendURL)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
	assert.Equal(t, 4, cfg.OrderSubmitRetries)
	assert.Equal(t, "redis:6380", cfg.RedisAddr())
	assert.Equal(t, "host=postgres port=5432 user=app password=secret dbname=overcooked sslmode=disable", cfg.PostgresDSN())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(Config{LogLevel: "warn"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger(Config{LogLevel: "loud"})
	assert.Error(t, err)
}
