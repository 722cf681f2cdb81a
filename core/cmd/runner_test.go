package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Niksavenkov/shopbot/core/bootstrap"
	coreconfig "github.com/Niksavenkov/shopbot/core/config"
	coretelegram "github.com/Niksavenkov/shopbot/core/telegram"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("telegram:\n  token: \"123:abc\"\nstate:\n  backend: memory\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRunRequiresConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	err := Run(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config path not provided")
}

func TestRunWiresHandlerIntoTransport(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t))

	var got coretelegram.RunOptions
	err := Run(Options{
		Bootstrap: func(opts bootstrap.Options) (*bootstrap.App, error) {
			opts.LoggerInit = func(*coreconfig.Config) error { return nil }
			return bootstrap.Run(opts)
		},
		RunTelegram: func(_ context.Context, opts coretelegram.RunOptions) error {
			got = opts
			return nil
		},
		ShutdownLogger: func() error { return nil },
	})

	require.NoError(t, err)
	assert.NotNil(t, got.Handler)
	assert.Equal(t, "123:abc", got.Config.Telegram.Token)
}
