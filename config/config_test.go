package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/upstream"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("API_ENDPOINT", "https://example.stepzen.net/shopify/__graphql")
	t.Setenv("API_KEY", "secret")
}

func TestFromEnvDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, upstream.Config{
		Endpoint: "https://example.stepzen.net/shopify/__graphql",
		APIKey:   "secret",
		Timeout:  10 * time.Second,
	}, cfg.Upstream)
	assert.Equal(t, ":8911", cfg.ServerCfg.Addr())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestFromEnvOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("AWS_S3_DEFAULT_BUCKET_NAME", "snapshots")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "127.0.0.1:9000", cfg.ServerCfg.Addr())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "snapshots", cfg.S3.BucketName)
}

func TestFromEnvRequiresAPIKey(t *testing.T) {
	t.Setenv("API_ENDPOINT", "https://example.test")
	t.Setenv("API_KEY", "")

	_, err := fromEnv()
	assert.Error(t, err)
}

func TestFromEnvRequiresEndpoint(t *testing.T) {
	t.Setenv("API_ENDPOINT", "")
	t.Setenv("API_KEY", "secret")

	_, err := fromEnv()
	assert.Error(t, err)
}

func TestFromEnvBadTimeout(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("API_TIMEOUT", "soon")

	_, err := fromEnv()
	assert.Error(t, err)
}
