package usecase

import "context"

// SettlementResult is the outcome of one settlement attempt.
// Transfer failures are reported here, not as Go errors.
type SettlementResult struct {
	IntentID       string `json:"intentId"`
	Success        bool   `json:"success"`
	Status         string `json:"status"`
	TxHash         string `json:"txHash,omitempty"`
	Error          string `json:"error,omitempty"`
	AlreadySettled bool   `json:"alreadySettled,omitempty"`
}

// SettlementUseCase defines the post-payment settlement operations
type SettlementUseCase interface {
	// Settle transfers tokens for a confirmed payment of amountCents. At most one
	// transfer happens per intent regardless of how often it is called.
	Settle(ctx context.Context, intentID string, amountCents int64) (*SettlementResult, error)

	// ConfirmPayment re-reads the intent from the processor and settles it if it succeeded
	ConfirmPayment(ctx context.Context, intentID string) (*SettlementResult, error)

	// HandleWebhook verifies and applies a processor webhook
	HandleWebhook(ctx context.Context, payload []byte, signature string) error

	// RetryTransfer re-attempts a transfer for a purchase in transfer_failed
	RetryTransfer(ctx context.Context, intentID string) (*SettlementResult, error)

	// ReportStuckSettlements logs purchases stuck in processing and returns how many were found
	ReportStuckSettlements(ctx context.Context) (int, error)
}
