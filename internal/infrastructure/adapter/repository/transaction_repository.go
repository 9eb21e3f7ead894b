package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/model"
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a ledger entity to a database model
func (r *TransactionRepository) entityToModel(tx *entity.Transaction) model.Transaction {
	return model.Transaction{
		ID:         tx.ID,
		SenderID:   tx.SenderID,
		ReceiverID: tx.ReceiverID,
		Amount:     tx.Amount,
		Currency:   tx.Currency,
		Type:       string(tx.Type),
		Status:     string(tx.Status),
		TxHash:     tx.TxHash,
		Reference:  tx.Reference,
		Note:       tx.Note,
		CreatedAt:  tx.CreatedAt,
		UpdatedAt:  tx.UpdatedAt,
	}
}

// modelToEntity converts a ledger model to an entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Amount:     m.Amount,
		Currency:   m.Currency,
		Type:       entity.TransactionType(m.Type),
		Status:     entity.TransactionStatus(m.Status),
		TxHash:     m.TxHash,
		Reference:  m.Reference,
		Note:       m.Note,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// Create saves a new ledger row
func (r *TransactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	m := r.entityToModel(tx)

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate ledger row detected", map[string]any{
				"type":      string(tx.Type),
				"reference": tx.Reference,
			})
		} else {
			r.logger.Error("Failed to create ledger row", map[string]any{
				"type":      string(tx.Type),
				"reference": tx.Reference,
				"error":     err.Error(),
			})
		}
		return r.errorClassifier.mapError(err, errs.ErrTransactionNotFound)
	}

	r.logger.Debug("Ledger row created", map[string]any{
		"transaction_id": tx.ID,
		"type":           string(tx.Type),
		"reference":      tx.Reference,
	})
	return nil
}

// GetByReference retrieves the ledger row of the given type for an external reference
func (r *TransactionRepository) GetByReference(ctx context.Context, txType entity.TransactionType, reference string) (*entity.Transaction, error) {
	var m model.Transaction
	err := r.db.WithContext(ctx).
		Where("type = ? AND reference = ?", string(txType), reference).
		First(&m).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Error("Failed to get ledger row", map[string]any{
				"type":      string(txType),
				"reference": reference,
				"error":     err.Error(),
			})
		}
		return nil, r.errorClassifier.mapError(err, errs.ErrTransactionNotFound)
	}
	return r.modelToEntity(&m), nil
}

// UpdateStatusByReference backfills status and, when non-empty, the transfer hash
func (r *TransactionRepository) UpdateStatusByReference(ctx context.Context, txType entity.TransactionType, reference string, status entity.TransactionStatus, txHash string) error {
	updates := map[string]any{
		"status":     string(status),
		"updated_at": r.timeProvider.Now(),
	}
	if txHash != "" {
		updates["tx_hash"] = txHash
	}

	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("type = ? AND reference = ?", string(txType), reference).
		Updates(updates)
	if result.Error != nil {
		r.logger.Error("Failed to update ledger row", map[string]any{
			"type":      string(txType),
			"reference": reference,
			"error":     result.Error.Error(),
		})
		return r.errorClassifier.mapError(result.Error, errs.ErrTransactionNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}

	r.logger.Debug("Ledger row updated", map[string]any{
		"type":      string(txType),
		"reference": reference,
		"status":    string(status),
	})
	return nil
}
