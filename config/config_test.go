package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("POLL_TIMEOUT_SECONDS", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.TelegramToken)
	assert.Equal(t, "10000", cfg.Port)
	assert.Equal(t, "trades.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.PollTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/journal.db")
	t.Setenv("POLL_TIMEOUT_SECONDS", "10")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/journal.db", cfg.DBPath)
	assert.Equal(t, 10*time.Second, cfg.PollTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := Load()
	assert.ErrorContains(t, err, "TELEGRAM_BOT_TOKEN")
}

func TestLoadIgnoresInvalidPollTimeout(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("POLL_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.PollTimeout)
}
