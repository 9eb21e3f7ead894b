package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/logger"
	realtime "github.com/nepalipay/settlement-service/internal/infrastructure/adapter/time"
)

func fastRetryConfig(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:    maxRetries,
		RetryInterval: time.Millisecond,
		MaxInterval:   5 * time.Millisecond,
	}
}

func TestRetryOnTransientError(t *testing.T) {
	tp := realtime.NewRealTimeProvider()
	log := logger.NewNoopLogger()

	t.Run("Succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetryConfig(3), func() error {
			calls++
			if calls < 3 {
				return errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
			}
			return nil
		}, tp, log)

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("Stops on a permanent error", func(t *testing.T) {
		calls := 0
		permanent := errors.New("syntax error at or near \"SELEC\"")
		err := RetryOnTransientError(context.Background(), fastRetryConfig(5), func() error {
			calls++
			return permanent
		}, tp, log)

		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("Gives up after MaxRetries", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetryConfig(2), func() error {
			calls++
			return errors.New("deadlock detected")
		}, tp, log)

		assert.EqualError(t, err, "deadlock detected")
		assert.Equal(t, 2, calls)
	})

	t.Run("Zero retries still runs once", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetryConfig(0), func() error {
			calls++
			return nil
		}, tp, log)

		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		cfg := fastRetryConfig(5)
		cfg.RetryInterval = time.Minute
		cfg.MaxInterval = time.Minute
		err := RetryOnTransientError(ctx, cfg, func() error {
			return errors.New("connection reset by peer")
		}, tp, log)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	cfg := RetryConfig{RetryInterval: 100 * time.Millisecond, MaxInterval: time.Second}

	assert.Equal(t, 100*time.Millisecond, calculateBackoffWithJitter(0, cfg))
	assert.Equal(t, 400*time.Millisecond, calculateBackoffWithJitter(2, cfg))
	assert.Equal(t, time.Second, calculateBackoffWithJitter(10, cfg))

	cfg.JitterFactor = 0.5
	for i := 0; i < 20; i++ {
		d := calculateBackoffWithJitter(1, cfg)
		assert.GreaterOrEqual(t, d, 200*time.Millisecond)
		assert.LessOrEqual(t, d, 300*time.Millisecond)
	}
}
