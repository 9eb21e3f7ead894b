package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
)

// PurchaseRepository defines methods to interact with token purchase records.
// Every status change is a conditional update on the current status, so two
// callers racing on the same purchase cannot both win.
type PurchaseRepository interface {
	// Create saves a new pending purchase
	//
	// Possible errors:
	// - ErrDuplicatePurchase: If a purchase for the intent already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, purchase *entity.TokenPurchase) error

	// GetByID retrieves a purchase by payment intent ID
	//
	// Possible errors:
	// - ErrPurchaseNotFound: If no purchase exists for the ID
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.TokenPurchase, error)

	// ClaimForSettlement moves a pending purchase to processing and fixes its token amount.
	// Returns false when the purchase was not pending.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ClaimForSettlement(ctx context.Context, id string, tokenAmount decimal.Decimal) (bool, error)

	// ClaimForRetry moves a transfer_failed purchase back to processing.
	// Returns false when the purchase was not transfer_failed.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ClaimForRetry(ctx context.Context, id string) (bool, error)

	// MarkSucceeded records the transfer hash on a processing purchase
	//
	// Possible errors:
	// - ErrInvalidStatusTransition: If the purchase is not processing
	// - ErrDatabaseConnection: If database connection fails
	MarkSucceeded(ctx context.Context, id, txHash string, settledAt time.Time) error

	// MarkTransferFailed records the transfer error on a processing purchase.
	// submittedTxHash is the broadcast transaction, if any, and is kept across retries when empty.
	//
	// Possible errors:
	// - ErrInvalidStatusTransition: If the purchase is not processing
	// - ErrDatabaseConnection: If database connection fails
	MarkTransferFailed(ctx context.Context, id, reason, submittedTxHash string) error

	// RecordPaymentError stores the latest declined attempt on a pending purchase
	// without changing its status. Returns false when the purchase was not pending.
	//
	// Possible errors:
	// - ErrPurchaseNotFound: If no purchase exists for the ID
	// - ErrDatabaseConnection: If database connection fails
	RecordPaymentError(ctx context.Context, id, reason string) (bool, error)

	// MarkPaymentFailed moves a pending purchase to failed.
	// Returns false when the purchase was not pending.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	MarkPaymentFailed(ctx context.Context, id, reason string) (bool, error)

	// ListStale returns purchases in the given status last updated before the cutoff
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListStale(ctx context.Context, status entity.PurchaseStatus, updatedBefore time.Time, limit int) ([]*entity.TokenPurchase, error)
}
