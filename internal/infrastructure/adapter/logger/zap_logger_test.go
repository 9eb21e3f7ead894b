package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nepalipay/settlement-service/internal/domain/port/core"
)

func TestZapLogger_LevelFiltering(t *testing.T) {
	obsCore, logs := observer.New(zap.DebugLevel)
	l := NewZapLoggerWithCore(obsCore, core.LogLevelWarn)

	l.Debug("debug", nil)
	l.Info("info", nil)
	l.Warn("warn", nil)
	l.Error("error", nil)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "warn", logs.All()[0].Message)
	assert.Equal(t, "error", logs.All()[1].Message)

	l.SetLevel(core.LogLevelDebug)
	assert.Equal(t, core.LogLevelDebug, l.GetLevel())
	l.Debug("debug again", nil)
	assert.Equal(t, 3, logs.Len())
}

func TestZapLogger_Fields(t *testing.T) {
	obsCore, logs := observer.New(zap.DebugLevel)
	l := NewZapLoggerWithCore(obsCore, core.LogLevelInfo)

	l.Info("settled", map[string]any{
		"intent_id": "pi_123",
		"error":     errors.New("boom"),
	})

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "pi_123", ctx["intent_id"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestNoopLogger(t *testing.T) {
	l := NewNoopLogger()
	l.SetLevel(core.LogLevelError)
	assert.Equal(t, core.LogLevelError, l.GetLevel())
	assert.NoError(t, l.Flush())
}
