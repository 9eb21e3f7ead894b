package dto

import (
	"time"

	"github.com/nepalipay/settlement-service/internal/domain/port/usecase"
)

// CreatePaymentIntentRequest is the body of POST /api/create-payment-intent.
// Amount is in minor units (cents); a zero or negative value is rejected by the payment service.
type CreatePaymentIntentRequest struct {
	Amount        *int64  `json:"amount" binding:"required"`
	Currency      string  `json:"currency" binding:"omitempty,len=3,alpha"`
	WalletAddress string  `json:"walletAddress" binding:"omitempty,ethaddr"`
	TokenAmount   string  `json:"tokenAmount" binding:"omitempty,numeric"`
	UserID        *uint64 `json:"userId" binding:"omitempty,gt=0"`
}

// ToUseCase maps the request onto the payment use case input
func (r CreatePaymentIntentRequest) ToUseCase() usecase.CreatePaymentIntentRequest {
	var amount int64
	if r.Amount != nil {
		amount = *r.Amount
	}
	return usecase.CreatePaymentIntentRequest{
		AmountCents:   amount,
		Currency:      r.Currency,
		WalletAddress: r.WalletAddress,
		TokenAmount:   r.TokenAmount,
		UserID:        r.UserID,
	}
}

// CreatePaymentIntentResponse carries the client secret the frontend confirms the card payment with
type CreatePaymentIntentResponse struct {
	ClientSecret  string            `json:"clientSecret"`
	IntentID      string            `json:"intentId"`
	WalletAddress string            `json:"walletAddress"`
	Quote         usecase.QuoteView `json:"quote"`
}

// NewCreatePaymentIntentResponse maps a use case result to the response body
func NewCreatePaymentIntentResponse(result *usecase.CreatePaymentIntentResult) CreatePaymentIntentResponse {
	return CreatePaymentIntentResponse{
		ClientSecret:  result.ClientSecret,
		IntentID:      result.IntentID,
		WalletAddress: result.WalletAddress,
		Quote:         result.Quote,
	}
}

// PaymentStatusResponse is the persisted state of a purchase
type PaymentStatusResponse struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	TokenAmount   string    `json:"tokenAmount"`
	WalletAddress string    `json:"walletAddress"`
	TxHash        string    `json:"txHash,omitempty"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewPaymentStatusResponse maps a use case status to the response body
func NewPaymentStatusResponse(status *usecase.PaymentStatus) PaymentStatusResponse {
	return PaymentStatusResponse{
		ID:            status.ID,
		Status:        status.Status,
		Amount:        status.Amount,
		Currency:      status.Currency,
		TokenAmount:   status.TokenAmount,
		WalletAddress: status.WalletAddress,
		TxHash:        status.TxHash,
		Error:         status.Error,
		CreatedAt:     status.CreatedAt,
		UpdatedAt:     status.UpdatedAt,
	}
}

// WebhookAck is returned to the payment processor once an event is accepted
type WebhookAck struct {
	Received bool `json:"received"`
}

// HealthResponse reports service health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
