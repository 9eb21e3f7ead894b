package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
)

// PurchaseStatus is the lifecycle state of a token purchase
type PurchaseStatus string

// PurchaseStatus constants
const (
	PurchasePending        PurchaseStatus = "pending"
	PurchaseProcessing     PurchaseStatus = "processing"
	PurchaseSucceeded      PurchaseStatus = "succeeded"
	PurchaseFailed         PurchaseStatus = "failed"
	PurchaseTransferFailed PurchaseStatus = "transfer_failed"
)

var purchaseTransitions = map[PurchaseStatus][]PurchaseStatus{
	PurchasePending:        {PurchaseProcessing, PurchaseFailed},
	PurchaseProcessing:     {PurchaseSucceeded, PurchaseTransferFailed},
	PurchaseTransferFailed: {PurchaseProcessing},
}

// IsValid reports whether s is a known status
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchasePending, PurchaseProcessing, PurchaseSucceeded, PurchaseFailed, PurchaseTransferFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s PurchaseStatus) IsTerminal() bool {
	return s == PurchaseSucceeded || s == PurchaseFailed
}

// CanTransitionTo reports whether next is reachable from s in one step
func (s PurchaseStatus) CanTransitionTo(next PurchaseStatus) bool {
	for _, allowed := range purchaseTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TokenPurchase is one fiat-to-token purchase attempt keyed by the payment intent ID.
// TxHash is set only once Status is PurchaseSucceeded. SubmittedTxHash keeps the
// last broadcast transaction of a failed transfer, which may still be mined.
type TokenPurchase struct {
	ID              string
	UserID          *uint64
	WalletAddress   string
	FiatAmount      int64 // minor units
	FiatCurrency    string
	TokenAmount     decimal.Decimal
	GasFee          decimal.Decimal
	ServiceFee      decimal.Decimal
	Status          PurchaseStatus
	TxHash          *string
	SubmittedTxHash *string
	ErrorMessage    string
	Attempts        int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	SettledAt       *time.Time
}

// NewTokenPurchase creates a pending purchase for a freshly created payment intent
func NewTokenPurchase(
	intentID string,
	userID *uint64,
	walletAddress string,
	fiatAmount int64,
	currency string,
	quote Quote,
	timeProvider coreport.TimeProvider,
) (*TokenPurchase, error) {
	if strings.TrimSpace(intentID) == "" {
		return nil, fmt.Errorf("%w: payment intent ID is required", errs.ErrInvalidRequest)
	}
	if fiatAmount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", errs.ErrInvalidAmount)
	}
	if !quote.TokenAmount.IsPositive() {
		return nil, fmt.Errorf("%w: token amount must be positive", errs.ErrInvalidAmount)
	}

	address, err := NormalizeWalletAddress(walletAddress)
	if err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &TokenPurchase{
		ID:            intentID,
		UserID:        userID,
		WalletAddress: address,
		FiatAmount:    fiatAmount,
		FiatCurrency:  strings.ToLower(currency),
		TokenAmount:   quote.TokenAmount,
		GasFee:        quote.GasFee,
		ServiceFee:    quote.ServiceFee,
		Status:        PurchasePending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// TxHashValue returns the transfer hash or an empty string
func (p *TokenPurchase) TxHashValue() string {
	if p.TxHash == nil {
		return ""
	}
	return *p.TxHash
}

// SubmittedTxHashValue returns the last broadcast hash of a failed transfer or an empty string
func (p *TokenPurchase) SubmittedTxHashValue() string {
	if p.SubmittedTxHash == nil {
		return ""
	}
	return *p.SubmittedTxHash
}

// IsSettled reports whether the tokens reached the buyer
func (p *TokenPurchase) IsSettled() bool {
	return p.Status == PurchaseSucceeded && p.TxHashValue() != ""
}
