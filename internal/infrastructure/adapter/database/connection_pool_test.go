package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/logger"
	mockcore "github.com/nepalipay/settlement-service/mocks/port/core"
)

type stubStats struct {
	stats   sql.DBStats
	pingErr error
}

func (s *stubStats) Stats() sql.DBStats { return s.stats }

func (s *stubStats) PingContext(context.Context) error { return s.pingErr }

func TestConnectionPoolMonitor_Collect(t *testing.T) {
	t.Run("Publishes pool stats", func(t *testing.T) {
		source := &stubStats{stats: sql.DBStats{MaxOpenConnections: 25, OpenConnections: 6, InUse: 4, Idle: 2}}
		metrics := mockcore.NewMockMetricsRecorder(t)
		metrics.On("DBPoolStats", 6, 4, 2).Once()

		m := NewConnectionPoolMonitor(source, logger.NewNoopLogger(), metrics)
		m.Collect()

		got := m.GetMetrics()
		assert.Equal(t, 6, got.OpenConnections)
		assert.Equal(t, 4, got.InUse)
		assert.Equal(t, 25, got.MaxOpenConnections)
	})

	t.Run("Warns near exhaustion", func(t *testing.T) {
		source := &stubStats{stats: sql.DBStats{MaxOpenConnections: 10, OpenConnections: 10, InUse: 9, Idle: 1, WaitCount: 3}}
		metrics := mockcore.NewMockMetricsRecorder(t)
		metrics.On("DBPoolStats", 10, 9, 1).Once()
		log := mockcore.NewMockLogger(t)
		log.On("Warn", "Database connection pool nearly exhausted", mock.Anything).Once()

		NewConnectionPoolMonitor(source, log, metrics).Collect()
	})
}

func TestConnectionPoolMonitor_StartStop(t *testing.T) {
	source := &stubStats{stats: sql.DBStats{MaxOpenConnections: 25}}
	metrics := mockcore.NewMockMetricsRecorder(t)
	metrics.On("DBPoolStats", 0, 0, 0)

	m := NewConnectionPoolMonitor(source, logger.NewNoopLogger(), metrics)
	m.Start(5 * time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	m.Stop()
	m.Stop()

	assert.GreaterOrEqual(t, len(metrics.Calls), 2)
}

func TestConnectionPoolMonitor_Ping(t *testing.T) {
	source := &stubStats{pingErr: errors.New("connection refused")}
	m := NewConnectionPoolMonitor(source, logger.NewNoopLogger(), mockcore.NewMockMetricsRecorder(t))

	assert.EqualError(t, m.Ping(context.Background()), "connection refused")
}

func TestManager_NotConnected(t *testing.T) {
	m := NewManager(DefaultConfig(), logger.NewNoopLogger(), nil, nil)

	assert.ErrorIs(t, m.Ping(context.Background()), ErrNotConnected)
	assert.ErrorIs(t, m.Migrate(context.Background()), ErrNotConnected)
	assert.NoError(t, m.Close())
}
