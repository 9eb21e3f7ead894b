package persistence

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
)

// UserRepository defines read access to users
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)
}

// WalletRepository defines methods to interact with custodial wallets
type WalletRepository interface {
	// GetByUserID retrieves the wallet owned by a user
	//
	// Possible errors:
	// - ErrWalletNotFound: If the user has no wallet
	// - ErrDatabaseConnection: If database connection fails
	GetByUserID(ctx context.Context, userID uint64) (*entity.Wallet, error)

	// List returns wallets ordered by ID starting after afterID
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	List(ctx context.Context, afterID uint64, limit int) ([]*entity.Wallet, error)

	// UpdateBalances replaces the cached balances of a wallet
	//
	// Possible errors:
	// - ErrWalletNotFound: If the wallet doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	UpdateBalances(ctx context.Context, walletID uint64, npt, bnb decimal.Decimal) error
}
