package settlement

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	"github.com/nepalipay/settlement-service/internal/domain/port/gateway"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/logger"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/metrics"
	realtime "github.com/nepalipay/settlement-service/internal/infrastructure/adapter/time"
	mockchain "github.com/nepalipay/settlement-service/mocks/port/chain"
)

const testWallet = "0x52908400098527886E0F7030069857D2E4169EE7"

// memoryPurchaseRepo applies every status change as a compare-and-set on the current status
type memoryPurchaseRepo struct {
	mu        sync.Mutex
	purchases map[string]*entity.TokenPurchase

	// transientMarkFailures makes the next N outcome writes fail with a connection error
	transientMarkFailures int
	markCalls             int
}

func newMemoryPurchaseRepo(purchases ...*entity.TokenPurchase) *memoryPurchaseRepo {
	r := &memoryPurchaseRepo{purchases: make(map[string]*entity.TokenPurchase)}
	for _, p := range purchases {
		r.purchases[p.ID] = p
	}
	return r
}

func (r *memoryPurchaseRepo) Create(_ context.Context, p *entity.TokenPurchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.purchases[p.ID]; ok {
		return errs.ErrDuplicatePurchase
	}
	r.purchases[p.ID] = p
	return nil
}

func (r *memoryPurchaseRepo) GetByID(_ context.Context, id string) (*entity.TokenPurchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[id]
	if !ok {
		return nil, errs.ErrPurchaseNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memoryPurchaseRepo) ClaimForSettlement(_ context.Context, id string, tokenAmount decimal.Decimal) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[id]
	if !ok || p.Status != entity.PurchasePending {
		return false, nil
	}
	p.Status = entity.PurchaseProcessing
	p.TokenAmount = tokenAmount
	p.ErrorMessage = ""
	p.Attempts++
	return true, nil
}

func (r *memoryPurchaseRepo) ClaimForRetry(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[id]
	if !ok || p.Status != entity.PurchaseTransferFailed {
		return false, nil
	}
	p.Status = entity.PurchaseProcessing
	p.ErrorMessage = ""
	p.Attempts++
	return true, nil
}

func (r *memoryPurchaseRepo) injectedFailure() error {
	r.markCalls++
	if r.transientMarkFailures > 0 {
		r.transientMarkFailures--
		return errs.ErrDatabaseConnection
	}
	return nil
}

func (r *memoryPurchaseRepo) MarkSucceeded(_ context.Context, id, txHash string, settledAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.injectedFailure(); err != nil {
		return err
	}
	p, ok := r.purchases[id]
	if !ok || p.Status != entity.PurchaseProcessing {
		return errs.ErrInvalidStatusTransition
	}
	p.Status = entity.PurchaseSucceeded
	p.TxHash = &txHash
	p.SettledAt = &settledAt
	return nil
}

func (r *memoryPurchaseRepo) MarkTransferFailed(_ context.Context, id, reason, submittedTxHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.injectedFailure(); err != nil {
		return err
	}
	p, ok := r.purchases[id]
	if !ok || p.Status != entity.PurchaseProcessing {
		return errs.ErrInvalidStatusTransition
	}
	p.Status = entity.PurchaseTransferFailed
	p.ErrorMessage = reason
	if submittedTxHash != "" {
		p.SubmittedTxHash = &submittedTxHash
	}
	return nil
}

func (r *memoryPurchaseRepo) RecordPaymentError(_ context.Context, id, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[id]
	if !ok {
		return false, errs.ErrPurchaseNotFound
	}
	if p.Status != entity.PurchasePending {
		return false, nil
	}
	p.ErrorMessage = reason
	return true, nil
}

func (r *memoryPurchaseRepo) MarkPaymentFailed(_ context.Context, id, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[id]
	if !ok {
		return false, errs.ErrPurchaseNotFound
	}
	if p.Status != entity.PurchasePending {
		return false, nil
	}
	p.Status = entity.PurchaseFailed
	p.ErrorMessage = reason
	return true, nil
}

func (r *memoryPurchaseRepo) ListStale(_ context.Context, status entity.PurchaseStatus, updatedBefore time.Time, limit int) ([]*entity.TokenPurchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.TokenPurchase
	for _, p := range r.purchases {
		if p.Status == status && p.UpdatedAt.Before(updatedBefore) && len(out) < limit {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryPurchaseRepo) get(t *testing.T, id string) *entity.TokenPurchase {
	t.Helper()
	p, err := r.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

// memoryLedger keeps ledger rows keyed by reference
type memoryLedger struct {
	mu   sync.Mutex
	rows map[string]*entity.Transaction
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{rows: make(map[string]*entity.Transaction)}
}

func (l *memoryLedger) Create(_ context.Context, tx *entity.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.rows[tx.Reference]; ok {
		return errs.ErrConstraintViolation
	}
	l.rows[tx.Reference] = tx
	return nil
}

func (l *memoryLedger) GetByReference(_ context.Context, txType entity.TransactionType, reference string) (*entity.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tx, ok := l.rows[reference]
	if !ok || tx.Type != txType {
		return nil, errs.ErrTransactionNotFound
	}
	cp := *tx
	return &cp, nil
}

func (l *memoryLedger) UpdateStatusByReference(_ context.Context, txType entity.TransactionType, reference string, status entity.TransactionStatus, txHash string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	tx, ok := l.rows[reference]
	if !ok || tx.Type != txType {
		return errs.ErrTransactionNotFound
	}
	tx.Status = status
	if txHash != "" {
		tx.TxHash = &txHash
	}
	return nil
}

// fakeTransferer counts transfers and fails on demand
type fakeTransferer struct {
	mu     sync.Mutex
	calls  int
	amount []decimal.Decimal
	err    error
	delay  time.Duration
}

func (f *fakeTransferer) Transfer(_ context.Context, to string, amount decimal.Decimal) (string, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.amount = append(f.amount, amount)
	if f.err != nil {
		return "", f.err
	}
	return "0xabc123", nil
}

func (f *fakeTransferer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newPendingPurchase(t *testing.T, id string, amountCents int64) *entity.TokenPurchase {
	t.Helper()
	quote := entity.DefaultFeeSchedule().Quote(amountCents)
	p, err := entity.NewTokenPurchase(id, nil, testWallet, amountCents, "usd", quote, realtime.NewRealTimeProvider())
	require.NoError(t, err)
	return p
}

func seedLedger(t *testing.T, l *memoryLedger, p *entity.TokenPurchase) {
	t.Helper()
	tx, err := entity.NewTokenPurchaseTransaction(p, realtime.NewRealTimeProvider())
	require.NoError(t, err)
	require.NoError(t, l.Create(context.Background(), tx))
}

type fixture struct {
	purchases  *memoryPurchaseRepo
	ledger     *memoryLedger
	transferer *fakeTransferer
	chain      *mockchain.MockTokenClient
	queue      *TransferQueue
	service    *Service
}

func newFixture(t *testing.T, pg gateway.PaymentGateway, purchases ...*entity.TokenPurchase) *fixture {
	t.Helper()
	f := &fixture{
		purchases:  newMemoryPurchaseRepo(purchases...),
		ledger:     newMemoryLedger(),
		transferer: &fakeTransferer{},
		chain:      mockchain.NewMockTokenClient(t),
	}
	for _, p := range purchases {
		seedLedger(t, f.ledger, p)
	}

	log := logger.NewNoopLogger()
	f.queue = NewTransferQueue(log, f.transferer.Transfer, 10, time.Second)
	t.Cleanup(f.queue.Shutdown)

	cfg := DefaultConfig()
	cfg.PersistBackoff = time.Millisecond
	f.service = NewService(f.purchases, f.ledger, pg, f.queue, f.chain, realtime.NewRealTimeProvider(), log, metrics.NewNoopRecorder(), cfg)
	return f
}
