package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad_ValidConfig(t *testing.T) {
	// Создаем временный конфиг файл
	configContent := `
env: test
shopify:
  store_domain: "test-store.myshopify.com"
  access_token: "shpat_test"
  api_key: "key"
  api_secret: "secret"
  api_version: "2024-10"
  host_name: "localhost:8080"
  client_timeout: 15s
http_server:
  addresshttp: ":8080"
  timeouthttp: 30s
  idle_timeout: 60s
rate_limit:
  rps: 3
  burst: 6
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))
	t.Setenv("CONFIG_PATH", configPath)

	cfg := MustLoad()

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "test-store.myshopify.com", cfg.Shopify.StoreDomain)
	assert.Equal(t, "shpat_test", cfg.Shopify.AccessToken)
	assert.Equal(t, "2024-10", cfg.Shopify.APIVersion)
	assert.Equal(t, 15*time.Second, cfg.Shopify.ClientTimeout)
	assert.Equal(t, ":8080", cfg.AddressHTTP)
	assert.Equal(t, 30*time.Second, cfg.TimeoutHTTP)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 3.0, cfg.RateLimit.RPS)
	assert.Equal(t, 6, cfg.RateLimit.Burst)
}

func TestMustLoad_DefaultsApplied(t *testing.T) {
	configContent := `
env: test
shopify:
  store_domain: "test-store.myshopify.com"
  access_token: "shpat_test"
http_server:
  addresshttp: ":8080"
  timeouthttp: 10s
  idle_timeout: 60s
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))
	t.Setenv("CONFIG_PATH", configPath)

	cfg := MustLoad()

	assert.Equal(t, "2024-10", cfg.Shopify.APIVersion)
	assert.Equal(t, 15*time.Second, cfg.Shopify.ClientTimeout)
	assert.Equal(t, 2.0, cfg.RateLimit.RPS)
	assert.Equal(t, 4, cfg.RateLimit.Burst)
}
