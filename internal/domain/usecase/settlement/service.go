package settlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
	"github.com/nepalipay/settlement-service/internal/domain/port/chain"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/domain/port/gateway"
	"github.com/nepalipay/settlement-service/internal/domain/port/persistence"
	"github.com/nepalipay/settlement-service/internal/domain/port/usecase"
)

// Config tunes settlement behaviour
type Config struct {
	// ExchangeRate is the number of tokens credited per major fiat unit
	ExchangeRate decimal.Decimal
	// QueueTimeout bounds how long a claimed transfer may wait for the transfer worker.
	// The transfer itself is bounded by the queue once picked up.
	QueueTimeout time.Duration
	// PersistAttempts is how often an outcome write is tried on transient database errors
	PersistAttempts int
	// PersistBackoff is the initial wait between outcome write attempts
	PersistBackoff time.Duration
	// StuckAfter is how long a purchase may stay in processing before it is reported
	StuckAfter time.Duration
	// StuckScanLimit caps the number of purchases a single report returns
	StuckScanLimit int
}

// DefaultConfig returns the settlement defaults
func DefaultConfig() Config {
	return Config{
		ExchangeRate:    entity.DefaultExchangeRate,
		QueueTimeout:    time.Minute,
		PersistAttempts: 5,
		PersistBackoff:  200 * time.Millisecond,
		StuckAfter:      15 * time.Minute,
		StuckScanLimit:  100,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if !c.ExchangeRate.IsPositive() {
		c.ExchangeRate = d.ExchangeRate
	}
	if c.QueueTimeout <= 0 {
		c.QueueTimeout = d.QueueTimeout
	}
	if c.PersistAttempts <= 0 {
		c.PersistAttempts = d.PersistAttempts
	}
	if c.PersistBackoff <= 0 {
		c.PersistBackoff = d.PersistBackoff
	}
	if c.StuckAfter <= 0 {
		c.StuckAfter = d.StuckAfter
	}
	if c.StuckScanLimit <= 0 {
		c.StuckScanLimit = d.StuckScanLimit
	}
	return c
}

// Service settles confirmed payments by transferring tokens from the hot wallet.
// It is the only component that moves a purchase out of pending.
type Service struct {
	purchaseRepo    persistence.PurchaseRepository
	transactionRepo persistence.TransactionRepository
	gateway         gateway.PaymentGateway
	transfers       *TransferQueue
	chain           chain.TokenClient
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	metrics         coreport.MetricsRecorder
	cfg             Config
}

// NewService creates a settlement service
func NewService(
	purchaseRepo persistence.PurchaseRepository,
	transactionRepo persistence.TransactionRepository,
	paymentGateway gateway.PaymentGateway,
	transfers *TransferQueue,
	chainClient chain.TokenClient,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
	cfg Config,
) *Service {
	if transfers == nil {
		panic("transfer queue cannot be nil")
	}
	return &Service{
		purchaseRepo:    purchaseRepo,
		transactionRepo: transactionRepo,
		gateway:         paymentGateway,
		transfers:       transfers,
		chain:           chainClient,
		timeProvider:    timeProvider,
		logger:          logger,
		metrics:         metrics,
		cfg:             cfg.withDefaults(),
	}
}

var _ usecase.SettlementUseCase = (*Service)(nil)
