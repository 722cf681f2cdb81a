package bootstrap

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/Niksavenkov/shopbot/core/config"
)

func noopLoggerInit(*coreconfig.Config) error { return nil }

func memoryConfig() *coreconfig.Config {
	return &coreconfig.Config{
		Telegram: coreconfig.TelegramConfig{Token: "123:abc"},
		State:    coreconfig.StateConfig{Backend: coreconfig.BackendMemory},
	}
}

func TestRunWithMemoryBackend(t *testing.T) {
	app, err := Run(Options{Config: memoryConfig(), LoggerInit: noopLoggerInit})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.NotNil(t, app.Store)
	assert.NotNil(t, app.Handler)
}

func TestRunWithRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := memoryConfig()
	cfg.State.Backend = coreconfig.BackendRedis
	cfg.State.Redis = coreconfig.RedisConfig{Addr: mr.Addr(), TTLSeconds: 60}

	app, err := Run(Options{Config: cfg, LoggerInit: noopLoggerInit})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.NotNil(t, app.Store)
}

func TestRunRejectsNilConfig(t *testing.T) {
	_, err := Run(Options{LoggerInit: noopLoggerInit})
	assert.Error(t, err)
}

func TestRunRejectsUnknownBackend(t *testing.T) {
	cfg := memoryConfig()
	cfg.State.Backend = "etcd"

	_, err := Run(Options{Config: cfg, LoggerInit: noopLoggerInit})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown state backend")
}
