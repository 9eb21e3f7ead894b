package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	"github.com/nepalipay/settlement-service/internal/domain/port/chain"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/domain/port/usecase"
)

// Settle transfers tokens for a confirmed payment. The pending to processing
// claim is a conditional update, so concurrent or repeated calls for the same
// intent produce at most one transfer.
func (s *Service) Settle(ctx context.Context, intentID string, amountCents int64) (*usecase.SettlementResult, error) {
	start := s.timeProvider.Now()

	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: confirmed amount must be positive", errs.ErrInvalidAmount)
	}

	purchase, err := s.purchaseRepo.GetByID(ctx, intentID)
	if err != nil {
		return nil, err
	}

	if result, done, err := s.existingOutcome(purchase); done {
		s.metrics.SettlementFinished(coreport.OutcomeDuplicate, s.timeProvider.Since(start).Std())
		return result, err
	}

	if amountCents != purchase.FiatAmount {
		s.logger.Warn("Confirmed amount differs from requested amount", map[string]any{
			"intent_id":        intentID,
			"requested_amount": purchase.FiatAmount,
			"confirmed_amount": amountCents,
		})
	}

	tokenAmount := entity.TokensForPayment(amountCents, s.cfg.ExchangeRate)

	claimed, err := s.purchaseRepo.ClaimForSettlement(ctx, intentID, tokenAmount)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// Another caller moved the purchase first; report its state instead.
		return s.reportCurrent(ctx, intentID, start)
	}

	s.logger.Info("Settlement claimed", map[string]any{
		"intent_id":    intentID,
		"wallet":       purchase.WalletAddress,
		"token_amount": tokenAmount.String(),
	})

	result := s.executeTransfer(ctx, purchase, tokenAmount)
	s.metrics.SettlementFinished(outcomeOf(result), s.timeProvider.Since(start).Std())
	return result, nil
}

// RetryTransfer re-attempts the transfer of a purchase left in transfer_failed.
// The token amount fixed at the original claim is reused. When an earlier attempt
// was broadcast, its transaction is looked up first: a mined one settles the
// purchase without sending again and a pending one blocks the retry.
func (s *Service) RetryTransfer(ctx context.Context, intentID string) (*usecase.SettlementResult, error) {
	start := s.timeProvider.Now()

	purchase, err := s.purchaseRepo.GetByID(ctx, intentID)
	if err != nil {
		return nil, err
	}

	switch purchase.Status {
	case entity.PurchaseTransferFailed:
	case entity.PurchaseSucceeded, entity.PurchaseProcessing:
		result, _, err := s.existingOutcome(purchase)
		return result, err
	default:
		return nil, errs.NewStatusTransitionError(intentID, string(purchase.Status), string(entity.PurchaseProcessing))
	}

	if hash := purchase.SubmittedTxHashValue(); hash != "" {
		status, err := s.chain.TransferStatus(ctx, hash)
		if err != nil {
			return nil, err
		}

		switch status {
		case chain.TxPending:
			s.logger.Warn("Retry refused, earlier transfer still pending", map[string]any{
				"intent_id": intentID,
				"tx_hash":   hash,
			})
			return nil, fmt.Errorf("%w: %s", errs.ErrTransferPending, hash)
		case chain.TxConfirmed:
			return s.adoptSubmittedTransfer(ctx, purchase, hash, start)
		default:
			s.logger.Info("Earlier transfer will not be mined, sending again", map[string]any{
				"intent_id": intentID,
				"tx_hash":   hash,
				"status":    string(status),
			})
		}
	}

	claimed, err := s.purchaseRepo.ClaimForRetry(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return s.reportCurrent(ctx, intentID, start)
	}

	s.logger.Info("Retrying failed transfer", map[string]any{
		"intent_id":    intentID,
		"attempts":     purchase.Attempts,
		"token_amount": purchase.TokenAmount.String(),
	})

	result := s.executeTransfer(ctx, purchase, purchase.TokenAmount)
	s.metrics.SettlementFinished(outcomeOf(result), s.timeProvider.Since(start).Std())
	return result, nil
}

// adoptSubmittedTransfer settles a transfer_failed purchase whose earlier transfer
// was mined after its confirmation wait gave up. Nothing is sent.
func (s *Service) adoptSubmittedTransfer(ctx context.Context, p *entity.TokenPurchase, txHash string, start time.Time) (*usecase.SettlementResult, error) {
	claimed, err := s.purchaseRepo.ClaimForRetry(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return s.reportCurrent(ctx, p.ID, start)
	}

	s.logger.Info("Earlier transfer confirmed on chain", map[string]any{
		"intent_id": p.ID,
		"tx_hash":   txHash,
	})

	result := s.recordTransferSuccess(context.WithoutCancel(ctx), p, p.TokenAmount, txHash)
	s.metrics.SettlementFinished(outcomeOf(result), s.timeProvider.Since(start).Std())
	return result, nil
}

// existingOutcome reports a purchase that is no longer pending.
// done is false only for pending purchases.
func (s *Service) existingOutcome(p *entity.TokenPurchase) (*usecase.SettlementResult, bool, error) {
	switch p.Status {
	case entity.PurchasePending:
		return nil, false, nil
	case entity.PurchaseSucceeded:
		return &usecase.SettlementResult{
			IntentID:       p.ID,
			Success:        true,
			Status:         string(p.Status),
			TxHash:         p.TxHashValue(),
			AlreadySettled: true,
		}, true, nil
	case entity.PurchaseProcessing:
		return &usecase.SettlementResult{
			IntentID: p.ID,
			Success:  false,
			Status:   string(p.Status),
			Error:    errs.ErrSettlementInProgress.Error(),
		}, true, nil
	case entity.PurchaseTransferFailed:
		return &usecase.SettlementResult{
			IntentID: p.ID,
			Success:  false,
			Status:   string(p.Status),
			Error:    p.ErrorMessage,
		}, true, nil
	default:
		return nil, true, errs.NewStatusTransitionError(p.ID, string(p.Status), string(entity.PurchaseProcessing))
	}
}

func (s *Service) reportCurrent(ctx context.Context, intentID string, start time.Time) (*usecase.SettlementResult, error) {
	current, err := s.purchaseRepo.GetByID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	result, done, err := s.existingOutcome(current)
	if !done {
		result = &usecase.SettlementResult{
			IntentID: intentID,
			Success:  false,
			Status:   string(current.Status),
			Error:    errs.ErrSettlementInProgress.Error(),
		}
	}
	s.metrics.SettlementFinished(coreport.OutcomeDuplicate, s.timeProvider.Since(start).Std())
	return result, err
}

// executeTransfer runs the transfer of a claimed purchase and records the outcome.
// The transfer and the outcome writes are detached from ctx so a disconnecting
// caller cannot leave a sent transfer unrecorded. QueueTimeout only bounds the
// wait for the transfer worker.
func (s *Service) executeTransfer(ctx context.Context, p *entity.TokenPurchase, amount decimal.Decimal) *usecase.SettlementResult {
	detached := context.WithoutCancel(ctx)

	queueCtx, cancel := s.timeProvider.WithTimeout(detached, coreport.Duration(s.cfg.QueueTimeout))
	defer cancel()

	transferStart := s.timeProvider.Now()
	txHash, err := s.transfers.Enqueue(queueCtx, p.ID, p.WalletAddress, amount)
	transferDuration := s.timeProvider.Since(transferStart).Std()

	if err != nil {
		s.metrics.TransferFinished(coreport.OutcomeFailure, transferDuration)
		return s.recordTransferFailure(detached, p, err)
	}

	s.metrics.TransferFinished(coreport.OutcomeSuccess, transferDuration)
	s.logger.Info("Token transfer confirmed", map[string]any{
		"intent_id": p.ID,
		"tx_hash":   txHash,
		"wallet":    p.WalletAddress,
		"amount":    amount.String(),
	})

	return s.recordTransferSuccess(detached, p, amount, txHash)
}

func (s *Service) recordTransferSuccess(ctx context.Context, p *entity.TokenPurchase, amount decimal.Decimal, txHash string) *usecase.SettlementResult {
	settledAt := s.timeProvider.Now()
	if perr := s.persist(ctx, "mark_succeeded", p.ID, func(ctx context.Context) error {
		return s.purchaseRepo.MarkSucceeded(ctx, p.ID, txHash, settledAt)
	}); perr != nil {
		// Tokens are on chain; the purchase stays in processing and surfaces in the stuck report.
		s.logger.Error("Transfer confirmed but outcome not persisted", map[string]any{
			"intent_id": p.ID,
			"tx_hash":   txHash,
			"amount":    amount.String(),
			"error":     perr.Error(),
		})
	}

	s.backfillLedger(ctx, p.ID, entity.TransactionCompleted, txHash)

	return &usecase.SettlementResult{
		IntentID: p.ID,
		Success:  true,
		Status:   string(entity.PurchaseSucceeded),
		TxHash:   txHash,
	}
}

func (s *Service) recordTransferFailure(ctx context.Context, p *entity.TokenPurchase, transferErr error) *usecase.SettlementResult {
	reason := transferErr.Error()

	fields := map[string]any{
		"intent_id": p.ID,
		"wallet":    p.WalletAddress,
		"error":     reason,
	}
	// a broadcast transaction may still be mined; its hash gates the next retry
	var submittedTxHash string
	var te *errs.TransferError
	if errors.As(transferErr, &te) {
		submittedTxHash = te.TxHash
		for k, v := range te.LogFields() {
			fields[k] = v
		}
	}
	s.logger.Error("Token transfer failed", fields)

	if perr := s.persist(ctx, "mark_transfer_failed", p.ID, func(ctx context.Context) error {
		return s.purchaseRepo.MarkTransferFailed(ctx, p.ID, reason, submittedTxHash)
	}); perr != nil {
		s.logger.Error("Transfer failure not persisted", map[string]any{
			"intent_id": p.ID,
			"tx_hash":   submittedTxHash,
			"error":     perr.Error(),
		})
	}

	s.backfillLedger(ctx, p.ID, entity.TransactionFailed, "")

	return &usecase.SettlementResult{
		IntentID: p.ID,
		Success:  false,
		Status:   string(entity.PurchaseTransferFailed),
		Error:    reason,
	}
}

// backfillLedger mirrors the settlement outcome onto the purchase's ledger row
func (s *Service) backfillLedger(ctx context.Context, intentID string, status entity.TransactionStatus, txHash string) {
	err := s.persist(ctx, "update_ledger", intentID, func(ctx context.Context) error {
		return s.transactionRepo.UpdateStatusByReference(ctx, entity.TransactionTokenPurchase, intentID, status, txHash)
	})
	if err == nil {
		return
	}

	level := s.logger.Error
	if errors.Is(err, errs.ErrTransactionNotFound) {
		level = s.logger.Warn
	}
	level("Ledger row not updated", map[string]any{
		"intent_id": intentID,
		"status":    string(status),
		"error":     err.Error(),
	})
}

// persist runs write with exponential backoff while it fails with a transient database error
func (s *Service) persist(ctx context.Context, operation, intentID string, write func(context.Context) error) error {
	backoff := s.cfg.PersistBackoff

	var err error
	for attempt := 1; attempt <= s.cfg.PersistAttempts; attempt++ {
		if err = write(ctx); err == nil || !errs.IsTransientError(err) {
			return err
		}
		if attempt == s.cfg.PersistAttempts {
			break
		}

		s.logger.Warn("Transient error persisting settlement outcome, retrying", map[string]any{
			"operation": operation,
			"intent_id": intentID,
			"attempt":   attempt,
			"error":     err.Error(),
		})

		select {
		case <-s.timeProvider.After(coreport.Duration(backoff)):
		case <-ctx.Done():
			return ctx.Err()
		}
		backoff *= 2
	}
	return err
}

func outcomeOf(result *usecase.SettlementResult) string {
	if result.Success {
		return coreport.OutcomeSuccess
	}
	return coreport.OutcomeFailure
}
