package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_LoadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payments.env")
	content := "SERVER_PORT=8088\nPAYMENT_DEFAULT_COMMISSION_RATE=0.12\nPAYMENT_PROVIDER_TIMEOUT=5s\nNSQ_LOOKUPD_ADDRESS=a:4161, b:4161\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("APP_ENV", "local")
	// godotenv does not override variables that already exist
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PAYMENT_DEFAULT_COMMISSION_RATE", "")
	t.Setenv("PAYMENT_PROVIDER_TIMEOUT", "")
	t.Setenv("NSQ_LOOKUPD_ADDRESS", "")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("PAYMENT_DEFAULT_COMMISSION_RATE")
	os.Unsetenv("PAYMENT_PROVIDER_TIMEOUT")
	os.Unsetenv("NSQ_LOOKUPD_ADDRESS")

	cfg := InitConfig(path)

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.True(t, decimal.RequireFromString("0.12").Equal(cfg.Payment.DefaultCommissionRate))
	assert.Equal(t, 5*time.Second, cfg.Payment.ProviderTimeout)
	assert.Equal(t, []string{"a:4161", "b:4161"}, cfg.NSQ.LookupdAddress)
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("PAYMENT_DEFAULT_COMMISSION_RATE", "")
	t.Setenv("PAYOUT_HOLD_HOURS", "")
	t.Setenv("PAYMENT_DEFAULT_CURRENCY", "")

	cfg := loadConfigFromEnv()

	assert.True(t, decimal.RequireFromString("0.10").Equal(cfg.Payment.DefaultCommissionRate))
	assert.Equal(t, 24, cfg.Payment.PayoutHoldHours)
	assert.Equal(t, "USD", cfg.Payment.DefaultCurrency)
	assert.Equal(t, "@every 5m", cfg.Scheduler.PayoutCron)
}

func TestGetEnvHelpers_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	t.Setenv("TEST_BOOL", "maybe")
	t.Setenv("TEST_DURATION", "soon")
	t.Setenv("TEST_DECIMAL", "1,5")

	assert.Equal(t, 7, GetEnvAsInt("TEST_INT", 7))
	assert.True(t, GetEnvAsBool("TEST_BOOL", true))
	assert.Equal(t, time.Minute, GetEnvAsDuration("TEST_DURATION", time.Minute))
	assert.True(t, decimal.NewFromInt(2).Equal(GetEnvAsDecimal("TEST_DECIMAL", decimal.NewFromInt(2))))
}
