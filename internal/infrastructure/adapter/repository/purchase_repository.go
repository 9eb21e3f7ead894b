package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/model"
)

// PurchaseRepository implements persistence.PurchaseRepository using GORM.
// Status changes are single UPDATE statements guarded by the expected current status.
type PurchaseRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewPurchaseRepository creates a new PurchaseRepository instance
func NewPurchaseRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *PurchaseRepository {
	return &PurchaseRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func purchaseToModel(p *entity.TokenPurchase) model.TokenPurchase {
	return model.TokenPurchase{
		ID:              p.ID,
		UserID:          p.UserID,
		WalletAddress:   p.WalletAddress,
		FiatAmount:      p.FiatAmount,
		FiatCurrency:    p.FiatCurrency,
		TokenAmount:     p.TokenAmount,
		GasFee:          p.GasFee,
		ServiceFee:      p.ServiceFee,
		Status:          string(p.Status),
		TxHash:          p.TxHash,
		SubmittedTxHash: p.SubmittedTxHash,
		ErrorMessage:    p.ErrorMessage,
		Attempts:        p.Attempts,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		SettledAt:       p.SettledAt,
	}
}

func purchaseToEntity(m *model.TokenPurchase) *entity.TokenPurchase {
	return &entity.TokenPurchase{
		ID:              m.ID,
		UserID:          m.UserID,
		WalletAddress:   m.WalletAddress,
		FiatAmount:      m.FiatAmount,
		FiatCurrency:    m.FiatCurrency,
		TokenAmount:     m.TokenAmount,
		GasFee:          m.GasFee,
		ServiceFee:      m.ServiceFee,
		Status:          entity.PurchaseStatus(m.Status),
		TxHash:          m.TxHash,
		SubmittedTxHash: m.SubmittedTxHash,
		ErrorMessage:    m.ErrorMessage,
		Attempts:        m.Attempts,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		SettledAt:       m.SettledAt,
	}
}

// Create saves a new pending purchase
func (r *PurchaseRepository) Create(ctx context.Context, purchase *entity.TokenPurchase) error {
	m := purchaseToModel(purchase)

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate purchase detected", map[string]any{
				"intent_id": purchase.ID,
			})
			return errs.ErrDuplicatePurchase
		}
		r.logger.Error("Failed to create purchase", map[string]any{
			"intent_id": purchase.ID,
			"error":     err.Error(),
		})
		return r.errorClassifier.mapError(err, errs.ErrPurchaseNotFound)
	}

	r.logger.Debug("Purchase created", map[string]any{
		"intent_id": purchase.ID,
		"wallet":    purchase.WalletAddress,
	})
	return nil
}

// GetByID retrieves a purchase by payment intent ID
func (r *PurchaseRepository) GetByID(ctx context.Context, id string) (*entity.TokenPurchase, error) {
	var m model.TokenPurchase
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Error("Failed to get purchase", map[string]any{
				"intent_id": id,
				"error":     err.Error(),
			})
		}
		return nil, r.errorClassifier.mapError(err, errs.ErrPurchaseNotFound)
	}
	return purchaseToEntity(&m), nil
}

// transition applies updates only when the purchase is currently in from.
// It reports whether a row was changed.
func (r *PurchaseRepository) transition(ctx context.Context, id string, from entity.PurchaseStatus, updates map[string]any) (bool, error) {
	updates["updated_at"] = r.timeProvider.Now()

	result := r.db.WithContext(ctx).Model(&model.TokenPurchase{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if result.Error != nil {
		r.logger.Error("Failed to update purchase status", map[string]any{
			"intent_id": id,
			"from":      string(from),
			"to":        updates["status"],
			"error":     result.Error.Error(),
		})
		return false, r.errorClassifier.mapError(result.Error, errs.ErrPurchaseNotFound)
	}
	return result.RowsAffected == 1, nil
}

// rejected explains why a guarded update changed nothing
func (r *PurchaseRepository) rejected(ctx context.Context, id string, to entity.PurchaseStatus) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return errs.NewStatusTransitionError(id, string(current.Status), string(to))
}

// ClaimForSettlement moves a pending purchase to processing and fixes its token amount
func (r *PurchaseRepository) ClaimForSettlement(ctx context.Context, id string, tokenAmount decimal.Decimal) (bool, error) {
	return r.transition(ctx, id, entity.PurchasePending, map[string]any{
		"status":        string(entity.PurchaseProcessing),
		"token_amount":  tokenAmount,
		"attempts":      gorm.Expr("attempts + 1"),
		"error_message": "",
	})
}

// ClaimForRetry moves a transfer_failed purchase back to processing
func (r *PurchaseRepository) ClaimForRetry(ctx context.Context, id string) (bool, error) {
	return r.transition(ctx, id, entity.PurchaseTransferFailed, map[string]any{
		"status":        string(entity.PurchaseProcessing),
		"attempts":      gorm.Expr("attempts + 1"),
		"error_message": "",
	})
}

// MarkSucceeded records the transfer hash on a processing purchase
func (r *PurchaseRepository) MarkSucceeded(ctx context.Context, id, txHash string, settledAt time.Time) error {
	ok, err := r.transition(ctx, id, entity.PurchaseProcessing, map[string]any{
		"status":     string(entity.PurchaseSucceeded),
		"tx_hash":    txHash,
		"settled_at": settledAt,
	})
	if err != nil {
		return err
	}
	if !ok {
		return r.rejected(ctx, id, entity.PurchaseSucceeded)
	}
	return nil
}

// MarkTransferFailed records the transfer error on a processing purchase.
// A non-empty submittedTxHash replaces the stored one; an empty one keeps it.
func (r *PurchaseRepository) MarkTransferFailed(ctx context.Context, id, reason, submittedTxHash string) error {
	updates := map[string]any{
		"status":        string(entity.PurchaseTransferFailed),
		"error_message": reason,
	}
	if submittedTxHash != "" {
		updates["submitted_tx_hash"] = submittedTxHash
	}
	ok, err := r.transition(ctx, id, entity.PurchaseProcessing, updates)
	if err != nil {
		return err
	}
	if !ok {
		return r.rejected(ctx, id, entity.PurchaseTransferFailed)
	}
	return nil
}

// RecordPaymentError stores a declined attempt on a purchase that stays pending
func (r *PurchaseRepository) RecordPaymentError(ctx context.Context, id, reason string) (bool, error) {
	ok, err := r.transition(ctx, id, entity.PurchasePending, map[string]any{
		"error_message": reason,
	})
	if err != nil || ok {
		return ok, err
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

// MarkPaymentFailed moves a pending purchase to failed
func (r *PurchaseRepository) MarkPaymentFailed(ctx context.Context, id, reason string) (bool, error) {
	ok, err := r.transition(ctx, id, entity.PurchasePending, map[string]any{
		"status":        string(entity.PurchaseFailed),
		"error_message": reason,
	})
	if err != nil || ok {
		return ok, err
	}

	// nothing changed: unknown purchase or no longer pending
	if _, err := r.GetByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

// ListStale returns purchases in the given status last updated before the cutoff, oldest first
func (r *PurchaseRepository) ListStale(ctx context.Context, status entity.PurchaseStatus, updatedBefore time.Time, limit int) ([]*entity.TokenPurchase, error) {
	var models []model.TokenPurchase
	err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", string(status), updatedBefore).
		Order("updated_at ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		r.logger.Error("Failed to list stale purchases", map[string]any{
			"status": string(status),
			"error":  err.Error(),
		})
		return nil, r.errorClassifier.mapError(err, errs.ErrPurchaseNotFound)
	}

	purchases := make([]*entity.TokenPurchase, 0, len(models))
	for i := range models {
		purchases = append(purchases, purchaseToEntity(&models[i]))
	}
	return purchases, nil
}
