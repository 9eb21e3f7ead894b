package settlement

import (
	"context"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/domain/port/gateway"
	"github.com/nepalipay/settlement-service/internal/domain/port/usecase"
)

const (
	canceledReason = "payment canceled"
	declinedReason = "payment declined"
)

// HandleWebhook verifies a processor notification and applies it
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseWebhookEvent(payload, signature)
	if err != nil {
		s.metrics.WebhookReceived("unverified", coreport.OutcomeFailure)
		s.logger.Warn("Rejected webhook", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	return s.HandlePaymentEvent(ctx, event)
}

// HandlePaymentEvent applies a verified event. Transfer failures are recorded on
// the purchase and do not fail the event; only errors worth a redelivery are returned.
func (s *Service) HandlePaymentEvent(ctx context.Context, event *gateway.Event) error {
	eventType := string(event.Type)

	if event.Intent == nil {
		s.metrics.WebhookReceived(eventType, coreport.OutcomeSkipped)
		s.logger.Debug("Ignoring event without payment intent", map[string]any{
			"event_id":   event.ID,
			"event_type": eventType,
		})
		return nil
	}

	intent := event.Intent
	fields := map[string]any{
		"event_id":   event.ID,
		"event_type": eventType,
		"intent_id":  intent.ID,
	}

	switch event.Type {
	case gateway.EventPaymentSucceeded:
		result, err := s.Settle(ctx, intent.ID, intent.ConfirmedAmount())
		if err != nil {
			if errs.IsNotFoundError(err) {
				s.logger.Warn("Payment succeeded for unknown purchase", fields)
				s.metrics.WebhookReceived(eventType, coreport.OutcomeSkipped)
				return nil
			}
			s.metrics.WebhookReceived(eventType, coreport.OutcomeFailure)
			return err
		}

		outcome := coreport.OutcomeSuccess
		if result.AlreadySettled || result.Status == string(entity.PurchaseProcessing) {
			outcome = coreport.OutcomeDuplicate
		}
		s.metrics.WebhookReceived(eventType, outcome)
		return nil

	case gateway.EventPaymentFailed:
		// The intent returns to requires_payment_method and the customer may pay again.
		if err := s.recordDecline(ctx, intent.ID, intent.LastError); err != nil {
			if errs.IsNotFoundError(err) {
				s.metrics.WebhookReceived(eventType, coreport.OutcomeSkipped)
				return nil
			}
			s.metrics.WebhookReceived(eventType, coreport.OutcomeFailure)
			return err
		}
		s.metrics.WebhookReceived(eventType, coreport.OutcomeSuccess)
		return nil

	case gateway.EventPaymentCanceled:
		reason := intent.LastError
		if reason == "" {
			reason = canceledReason
		}
		if _, err := s.failPayment(ctx, intent.ID, reason); err != nil {
			if errs.IsNotFoundError(err) {
				s.metrics.WebhookReceived(eventType, coreport.OutcomeSkipped)
				return nil
			}
			s.metrics.WebhookReceived(eventType, coreport.OutcomeFailure)
			return err
		}
		s.metrics.WebhookReceived(eventType, coreport.OutcomeSuccess)
		return nil

	default:
		s.metrics.WebhookReceived(eventType, coreport.OutcomeSkipped)
		s.logger.Debug("Ignoring unhandled event type", fields)
		return nil
	}
}

// ConfirmPayment polls the processor for an intent and settles it when the charge succeeded.
// It is the fallback for clients that return before the webhook arrives.
func (s *Service) ConfirmPayment(ctx context.Context, intentID string) (*usecase.SettlementResult, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, intentID)
	if err != nil {
		return nil, err
	}

	// only cancellation fails a purchase, and a canceled intent cannot succeed later
	if purchase.Status == entity.PurchaseFailed {
		return &usecase.SettlementResult{
			IntentID: intentID,
			Success:  false,
			Status:   string(purchase.Status),
			Error:    purchase.ErrorMessage,
		}, nil
	}
	if result, done, err := s.existingOutcome(purchase); done {
		return result, err
	}

	intent, err := s.gateway.RetrievePaymentIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	switch intent.Status {
	case gateway.IntentSucceeded:
		return s.Settle(ctx, intentID, intent.ConfirmedAmount())
	case gateway.IntentCanceled:
		reason := intent.LastError
		if reason == "" {
			reason = canceledReason
		}
		if _, err := s.failPayment(ctx, intentID, reason); err != nil {
			return nil, err
		}
		return &usecase.SettlementResult{
			IntentID: intentID,
			Success:  false,
			Status:   string(entity.PurchaseFailed),
			Error:    reason,
		}, nil
	default:
		return &usecase.SettlementResult{
			IntentID: intentID,
			Success:  false,
			Status:   string(entity.PurchasePending),
			Error:    "payment not completed: " + string(intent.Status),
		}, nil
	}
}

// recordDecline keeps a declined attempt on the still pending purchase
func (s *Service) recordDecline(ctx context.Context, intentID, reason string) error {
	if reason == "" {
		reason = declinedReason
	}
	recorded, err := s.purchaseRepo.RecordPaymentError(ctx, intentID, reason)
	if err != nil {
		return err
	}
	if !recorded {
		s.logger.Info("Payment decline ignored for purchase no longer pending", map[string]any{
			"intent_id": intentID,
		})
		return nil
	}
	s.logger.Info("Payment attempt declined, purchase stays pending", map[string]any{
		"intent_id": intentID,
		"reason":    reason,
	})
	return nil
}

// failPayment moves a pending purchase to failed and marks its ledger row.
// Purchases that already left pending are untouched.
func (s *Service) failPayment(ctx context.Context, intentID, reason string) (bool, error) {
	failed, err := s.purchaseRepo.MarkPaymentFailed(ctx, intentID, reason)
	if err != nil {
		return false, err
	}
	if !failed {
		s.logger.Info("Payment failure ignored for purchase no longer pending", map[string]any{
			"intent_id": intentID,
		})
		return false, nil
	}

	s.logger.Info("Payment marked failed", map[string]any{
		"intent_id": intentID,
		"reason":    reason,
	})
	s.backfillLedger(ctx, intentID, entity.TransactionFailed, "")
	return true, nil
}
