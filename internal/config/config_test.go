package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10, cfg.RewardThreshold)
	assert.Equal(t, 2160*time.Hour, cfg.RewardWindow)
	assert.Equal(t, 2, cfg.SMSWorkerCount)
	assert.NotEmpty(t, cfg.DatabaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REWARD_THRESHOLD", "5")
	t.Setenv("REWARD_WINDOW", "720h")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5, cfg.RewardThreshold)
	assert.Equal(t, 720*time.Hour, cfg.RewardWindow)
	assert.Equal(t, "AC123", cfg.TwilioAccountSID)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("non-numeric port", func(t *testing.T) {
		t.Setenv("PORT", "not-a-port")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("zero threshold", func(t *testing.T) {
		t.Setenv("REWARD_THRESHOLD", "0")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("negative window", func(t *testing.T) {
		t.Setenv("REWARD_WINDOW", "-24h")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("malformed window", func(t *testing.T) {
		t.Setenv("REWARD_WINDOW", "3 months")
		_, err := Load()
		require.Error(t, err)
	})
}
