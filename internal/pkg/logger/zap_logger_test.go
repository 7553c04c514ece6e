package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewZapLogger_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "payments.log")

	zl, err := NewZapLogger(ZapConfig{Service: "payments-test", Level: "debug", FilePath: path, MaxSize: 1}, nil)
	require.NoError(t, err)

	zl.Info("payout completed", String("payout_id", "p-1"))
	require.NoError(t, zl.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"payout completed"`)
	assert.Contains(t, string(data), `"service":"payments-test"`)
	assert.Contains(t, string(data), `"payout_id":"p-1"`)
}

func TestLogHTTPRequest_LevelFollowsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	zl := &ZapLogger{Logger: zap.New(core)}

	zl.LogHTTPRequest(nil, "GET", "/ok", "127.0.0.1", "u", "r1", 200, time.Millisecond, nil)
	zl.LogHTTPRequest(nil, "POST", "/bad", "127.0.0.1", "u", "r2", 422, time.Millisecond, nil)
	zl.LogHTTPRequest(nil, "POST", "/boom", "127.0.0.1", "u", "r3", 500, time.Millisecond, errors.New("db down"))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "db down", entries[2].ContextMap()["error"])
}

func TestGlobalLogger_FallsBackWhenUnset(t *testing.T) {
	SetGlobalLogger(nil)
	assert.NotNil(t, GetGlobalLogger())

	core, logs := observer.New(zapcore.InfoLevel)
	SetGlobalLogger(&ZapLogger{Logger: zap.New(core)})
	defer SetGlobalLogger(nil)

	Info("captured", Amount("amount", decimal.RequireFromString("120")))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "120.00", logs.All()[0].ContextMap()["amount"])
}
