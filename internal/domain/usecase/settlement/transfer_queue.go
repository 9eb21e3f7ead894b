package settlement

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
)

// ErrQueueClosed is returned when a transfer is enqueued after Shutdown
var ErrQueueClosed = errors.New("transfer queue is shut down")

// ErrTransferNotStarted is returned when a request was withdrawn before the worker
// picked it up. Nothing was signed or broadcast for it.
var ErrTransferNotStarted = errors.New("transfer not started")

const defaultTransferTimeout = 3 * time.Minute

// TransferFunc performs one token transfer and returns its transaction hash
type TransferFunc func(ctx context.Context, to string, amount decimal.Decimal) (string, error)

// TransferQueue funnels every use of the hot-wallet signer through a single
// worker goroutine, so nonces are consumed strictly one transfer at a time.
type TransferQueue struct {
	logger          coreport.Logger
	transfer        TransferFunc
	transferTimeout time.Duration

	queue  chan *transferRequest
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// request states; the worker and the caller race on queued
const (
	requestQueued int32 = iota
	requestRunning
	requestWithdrawn
)

// transferRequest represents a queued transfer
type transferRequest struct {
	ctx        context.Context
	intentID   string
	to         string
	amount     decimal.Decimal
	state      atomic.Int32
	resultChan chan transferResult
}

// transferResult represents the outcome of a processed transfer
type transferResult struct {
	txHash string
	err    error
}

// NewTransferQueue creates the queue and starts its worker.
// transferTimeout bounds each transfer from the moment the worker picks it up.
func NewTransferQueue(logger coreport.Logger, transfer TransferFunc, capacity int, transferTimeout time.Duration) *TransferQueue {
	if transfer == nil {
		panic("transfer function cannot be nil")
	}
	if capacity <= 0 {
		capacity = 100
	}
	if transferTimeout <= 0 {
		transferTimeout = defaultTransferTimeout
	}

	q := &TransferQueue{
		logger:          logger,
		transfer:        transfer,
		transferTimeout: transferTimeout,
		queue:           make(chan *transferRequest, capacity),
	}

	q.wg.Add(1)
	go q.run()

	return q
}

// Enqueue submits a transfer and blocks until the worker has processed it.
//
// ctx only bounds the wait for the worker. A request still queued when ctx is done
// is withdrawn and ErrTransferNotStarted is returned. Once the worker has picked the
// request up, Enqueue waits for its result regardless of ctx, so a broadcast
// transfer is never reported as anything but its real outcome.
func (q *TransferQueue) Enqueue(ctx context.Context, intentID, to string, amount decimal.Decimal) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransferNotStarted, err)
	}

	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return "", ErrQueueClosed
	}

	req := &transferRequest{
		ctx:        ctx,
		intentID:   intentID,
		to:         to,
		amount:     amount,
		resultChan: make(chan transferResult, 1),
	}

	select {
	case q.queue <- req:
		q.mu.RUnlock()
		q.logger.Debug("Transfer enqueued", map[string]any{
			"intent_id": intentID,
			"to":        to,
			"amount":    amount.String(),
		})
	case <-ctx.Done():
		q.mu.RUnlock()
		q.logger.Warn("Context canceled while enqueueing transfer", map[string]any{
			"intent_id": intentID,
			"error":     ctx.Err().Error(),
		})
		return "", fmt.Errorf("%w: %w", ErrTransferNotStarted, ctx.Err())
	}

	select {
	case res := <-req.resultChan:
		return res.txHash, res.err
	case <-ctx.Done():
	}

	if req.state.CompareAndSwap(requestQueued, requestWithdrawn) {
		q.logger.Warn("Transfer withdrawn before the worker picked it up", map[string]any{
			"intent_id": intentID,
			"error":     ctx.Err().Error(),
		})
		return "", fmt.Errorf("%w: %w", ErrTransferNotStarted, ctx.Err())
	}

	q.logger.Warn("Transfer already running, waiting for its result", map[string]any{
		"intent_id": intentID,
	})
	res := <-req.resultChan
	return res.txHash, res.err
}

// run is the single worker that owns the signer
func (q *TransferQueue) run() {
	defer q.wg.Done()

	q.logger.Info("Transfer queue worker started", nil)

	for req := range q.queue {
		if !req.state.CompareAndSwap(requestQueued, requestRunning) {
			continue
		}
		if err := req.ctx.Err(); err != nil {
			req.resultChan <- transferResult{err: fmt.Errorf("%w: %w", ErrTransferNotStarted, err)}
			continue
		}

		q.logger.Debug("Processing queued transfer", map[string]any{
			"intent_id": req.intentID,
			"to":        req.to,
		})

		transferCtx, cancel := context.WithTimeout(context.WithoutCancel(req.ctx), q.transferTimeout)
		txHash, err := q.transfer(transferCtx, req.to, req.amount)
		cancel()
		req.resultChan <- transferResult{txHash: txHash, err: err}
	}

	q.logger.Info("Transfer queue worker stopped", nil)
}

// Shutdown stops accepting transfers, drains the queue and waits for the worker
func (q *TransferQueue) Shutdown() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.queue)
	q.mu.Unlock()

	q.wg.Wait()
	q.logger.Info("Transfer queue shut down", nil)
}
