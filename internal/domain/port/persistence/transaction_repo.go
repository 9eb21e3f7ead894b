package persistence

import (
	"context"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
)

// TransactionRepository defines methods to interact with ledger rows
type TransactionRepository interface {
	// Create saves a new ledger row
	//
	// Possible errors:
	// - ErrConstraintViolation: If a row of the same type already references the same purchase
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByReference retrieves the ledger row of the given type for an external reference
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no row matches
	// - ErrDatabaseConnection: If database connection fails
	GetByReference(ctx context.Context, txType entity.TransactionType, reference string) (*entity.Transaction, error)

	// UpdateStatusByReference backfills status and, when non-empty, the transfer hash
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no row matches
	// - ErrDatabaseConnection: If database connection fails
	UpdateStatusByReference(ctx context.Context, txType entity.TransactionType, reference string, status entity.TransactionStatus, txHash string) error
}
