package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/model"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var m model.User
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("User not found", map[string]any{
				"user_id": id,
			})
		} else {
			r.logger.Error("Database error when getting user", map[string]any{
				"user_id": id,
				"error":   err.Error(),
			})
		}
		return nil, r.errorClassifier.mapError(err, errs.ErrUserNotFound)
	}

	return &entity.User{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// WalletRepository implements persistence.WalletRepository using GORM
type WalletRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewWalletRepository creates a new WalletRepository instance
func NewWalletRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *WalletRepository {
	return &WalletRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func walletToEntity(m *model.Wallet) *entity.Wallet {
	return &entity.Wallet{
		ID:                  m.ID,
		UserID:              m.UserID,
		Address:             m.Address,
		NPTBalance:          m.NPTBalance,
		BNBBalance:          m.BNBBalance,
		BalancesRefreshedAt: m.BalancesRefreshedAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// GetByUserID retrieves the wallet owned by a user
func (r *WalletRepository) GetByUserID(ctx context.Context, userID uint64) (*entity.Wallet, error) {
	var m model.Wallet
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Error("Database error when getting wallet", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		return nil, r.errorClassifier.mapError(err, errs.ErrWalletNotFound)
	}
	return walletToEntity(&m), nil
}

// List returns wallets ordered by ID starting after afterID
func (r *WalletRepository) List(ctx context.Context, afterID uint64, limit int) ([]*entity.Wallet, error) {
	var models []model.Wallet
	err := r.db.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		r.logger.Error("Failed to list wallets", map[string]any{
			"after_id": afterID,
			"error":    err.Error(),
		})
		return nil, r.errorClassifier.mapError(err, errs.ErrWalletNotFound)
	}

	wallets := make([]*entity.Wallet, 0, len(models))
	for i := range models {
		wallets = append(wallets, walletToEntity(&models[i]))
	}
	return wallets, nil
}

// UpdateBalances replaces the cached balances of a wallet
func (r *WalletRepository) UpdateBalances(ctx context.Context, walletID uint64, npt, bnb decimal.Decimal) error {
	now := r.timeProvider.Now()
	result := r.db.WithContext(ctx).Model(&model.Wallet{}).
		Where("id = ?", walletID).
		Updates(map[string]any{
			"npt_balance":           npt,
			"bnb_balance":           bnb,
			"balances_refreshed_at": now,
			"updated_at":            now,
		})
	if result.Error != nil {
		r.logger.Error("Failed to update wallet balances", map[string]any{
			"wallet_id": walletID,
			"error":     result.Error.Error(),
		})
		return r.errorClassifier.mapError(result.Error, errs.ErrWalletNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrWalletNotFound
	}
	return nil
}
