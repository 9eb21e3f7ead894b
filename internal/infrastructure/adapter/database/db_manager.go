package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/domain/port/persistence"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/database/migration"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/repository"
)

// ErrNotConnected is returned when the manager is used before Connect
var ErrNotConnected = errors.New("database is not connected")

// Repositories groups the repositories built on the manager's connection
type Repositories struct {
	Purchases    persistence.PurchaseRepository
	Transactions persistence.TransactionRepository
	Users        persistence.UserRepository
	Wallets      persistence.WalletRepository
}

// Manager manages the database connection and its lifecycle
type Manager struct {
	config            *Config
	db                *gorm.DB
	logger            coreport.Logger
	timeProvider      coreport.TimeProvider
	metrics           coreport.MetricsRecorder
	connectionMonitor *ConnectionPoolMonitor
}

// NewManager creates a new database manager
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider, metrics coreport.MetricsRecorder) *Manager {
	return &Manager{
		config:       config,
		logger:       logger,
		timeProvider: timeProvider,
		metrics:      metrics,
	}
}

// Connect opens the pool, retrying transient failures, and starts pool monitoring
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	m.logger.Info("Connecting to database", map[string]any{
		"host": m.config.Host,
		"port": m.config.Port,
		"name": m.config.Database,
	})

	retryCfg := DefaultRetryConfig()
	retryCfg.MaxRetries = m.config.RetryAttempts
	retryCfg.RetryInterval = m.config.RetryDelay
	retryCfg.MaxInterval = 4 * m.config.RetryDelay

	var gormDB *gorm.DB
	err := RetryOnTransientError(ctx, retryCfg, func() error {
		db, err := gorm.Open(postgres.Open(m.config.DSN()), &gorm.Config{
			Logger:      NewDatabaseLogger(m.logger, m.timeProvider, m.config.LogLevel, m.config.SlowThreshold),
			NowFunc:     m.timeProvider.Now,
			PrepareStmt: true,
		})
		if err != nil {
			return err
		}
		gormDB = db
		return nil
	}, m.timeProvider, m.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	m.logger.Info("Successfully connected to database", map[string]any{
		"host":           m.config.Host,
		"port":           m.config.Port,
		"name":           m.config.Database,
		"max_open_conns": m.config.MaxOpenConns,
		"max_idle_conns": m.config.MaxIdleConns,
		"query_timeout":  m.config.QueryTimeout.String(),
	})

	m.db = gormDB
	m.connectionMonitor = NewConnectionPoolMonitor(sqlDB, m.logger, m.metrics)
	m.connectionMonitor.Start(m.config.MonitorInterval)

	return m.db, nil
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Migrate brings the schema up to date
func (m *Manager) Migrate(ctx context.Context) error {
	if m.db == nil {
		return ErrNotConnected
	}
	return migration.NewMigrationManager(m.db, m.logger, m.timeProvider).MigrateAll(ctx)
}

// Ping checks the database is reachable within the query timeout
func (m *Manager) Ping(ctx context.Context) error {
	if m.connectionMonitor == nil {
		return ErrNotConnected
	}
	ctx, cancel := m.WithTimeout(ctx)
	defer cancel()
	return m.connectionMonitor.Ping(ctx)
}

// Close stops pool monitoring and closes the connection
func (m *Manager) Close() error {
	m.logger.Info("Closing database connection", nil)

	if m.connectionMonitor != nil {
		m.connectionMonitor.Stop()
	}
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// WithTimeout returns a context with timeout for database operations
func (m *Manager) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.config.QueryTimeout)
}

// CreateUnitOfWork creates a new UnitOfWork instance
func (m *Manager) CreateUnitOfWork() persistence.UnitOfWork {
	return NewUnitOfWork(m.db, m.logger, m.timeProvider)
}

// Repositories builds the repositories on the pooled connection
func (m *Manager) Repositories() Repositories {
	return Repositories{
		Purchases:    repository.NewPurchaseRepository(m.db, m.timeProvider, m.logger),
		Transactions: repository.NewTransactionRepository(m.db, m.timeProvider, m.logger),
		Users:        repository.NewUserRepository(m.db, m.logger),
		Wallets:      repository.NewWalletRepository(m.db, m.timeProvider, m.logger),
	}
}
