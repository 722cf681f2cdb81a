package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, BackendMemory, cfg.State.Backend)
}

func TestNormalizeRequiresToken(t *testing.T) {
	err := Normalize(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestNormalizeWebhookMode(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Telegram.RunMode = "webhook"
	require.Error(t, Normalize(cfg), "webhook mode without url must fail")

	cfg.Webhook.URL = "https://bot.example.com"
	cfg.Webhook.Listen = "0.0.0.0"
	cfg.Webhook.Port = 8443
	require.NoError(t, Normalize(cfg))
}

func TestNormalizeStateBackends(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Telegram.Token = "123:abc"
		return cfg
	}

	cfg := base()
	cfg.State.Backend = "redis"
	require.Error(t, Normalize(cfg), "redis backend without addr must fail")
	cfg.State.Redis.Addr = "localhost:6379"
	require.NoError(t, Normalize(cfg))

	cfg = base()
	cfg.State.Backend = "postgres"
	require.Error(t, Normalize(cfg), "postgres backend without host must fail")
	cfg.Database.Host = "localhost"
	cfg.Database.Name = "shopbot"
	require.NoError(t, Normalize(cfg))

	cfg = base()
	cfg.State.Backend = "etcd"
	require.Error(t, Normalize(cfg))
}

func TestNormalizeRateLimitExclusions(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, []string{"callback", "message"}, cfg.RateLimit.ExcludeUpdates)

	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	require.Error(t, Normalize(cfg))
}
