package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating writes across repositories
// so a purchase and its ledger row are stored together or not at all
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetPurchaseRepository returns a purchase repository bound to the current transaction
	GetPurchaseRepository(ctx context.Context) PurchaseRepository

	// GetTransactionRepository returns a ledger repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository
}
