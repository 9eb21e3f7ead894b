package usecase

import (
	"context"
	"time"
)

// CreatePaymentIntentRequest represents an incoming request to buy tokens
type CreatePaymentIntentRequest struct {
	AmountCents   int64
	Currency      string
	WalletAddress string
	TokenAmount   string // optional; derived from the amount when empty
	UserID        *uint64
}

// QuoteView is the priced breakdown returned to the client
type QuoteView struct {
	TokenCost   string `json:"tokenCost"`
	TokenAmount string `json:"tokenAmount"`
	GasFee      string `json:"gasFee"`
	ServiceFee  string `json:"serviceFee"`
	TotalCost   string `json:"totalCost"`
}

// CreatePaymentIntentResult contains what the client needs to confirm the payment
type CreatePaymentIntentResult struct {
	IntentID      string
	ClientSecret  string
	WalletAddress string
	Quote         QuoteView
}

// PaymentStatus is the persisted state of one purchase
type PaymentStatus struct {
	ID            string
	Status        string
	Amount        int64
	Currency      string
	TokenAmount   string
	WalletAddress string
	TxHash        string
	Error         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentUseCase defines the payment intent operations
type PaymentUseCase interface {
	// CreatePaymentIntent validates the request, prices it, creates the processor
	// intent and stores a pending purchase with its ledger row
	CreatePaymentIntent(ctx context.Context, req CreatePaymentIntentRequest) (*CreatePaymentIntentResult, error)

	// GetPaymentStatus reads the persisted purchase; it never triggers settlement
	GetPaymentStatus(ctx context.Context, intentID string) (*PaymentStatus, error)
}
