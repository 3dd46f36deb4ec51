package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8088", cfg.App.Port)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL())
	require.Equal(t, 7*24*time.Hour, cfg.BlacklistRetention())
	require.Equal(t, 365*24*time.Hour, cfg.SubscriptionDuration())
	require.InDelta(t, 0.9, cfg.Payment.SuccessRate, 1e-9)
	require.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("PAYMENT_SUCCESS_RATE", "0.5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
	require.Equal(t, "9000", cfg.App.Port)
	require.Equal(t, 2*time.Hour, cfg.TokenTTL())
	require.InDelta(t, 0.5, cfg.Payment.SuccessRate, 1e-9)
}

func TestLoadConfig_InvalidNumber(t *testing.T) {
	t.Setenv("JWT_EXPIRY_HOURS", "soon")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "JWT_EXPIRY_HOURS")
}

func TestValidate_RetentionMustCoverTokenLifetime(t *testing.T) {
	t.Setenv("JWT_EXPIRY_HOURS", "200")
	t.Setenv("BLACKLIST_RETENTION_DAYS", "7")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "BLACKLIST_RETENTION_DAYS")
}

func TestValidate_SuccessRateBounds(t *testing.T) {
	t.Setenv("PAYMENT_SUCCESS_RATE", "1.5")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "PAYMENT_SUCCESS_RATE")
}
