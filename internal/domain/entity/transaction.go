package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
)

// TransactionType is the kind of ledger event
type TransactionType string

// Transaction types
const (
	TransactionSend              TransactionType = "send"
	TransactionReceive           TransactionType = "receive"
	TransactionDeposit           TransactionType = "deposit"
	TransactionWithdrawal        TransactionType = "withdrawal"
	TransactionLoanDisbursement  TransactionType = "loan_disbursement"
	TransactionLoanRepayment     TransactionType = "loan_repayment"
	TransactionCollateralDeposit TransactionType = "collateral_deposit"
	TransactionCollateralRelease TransactionType = "collateral_release"
	TransactionTokenPurchase     TransactionType = "token_purchase"
)

// IsValid reports whether t is a known transaction type
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionSend, TransactionReceive, TransactionDeposit, TransactionWithdrawal,
		TransactionLoanDisbursement, TransactionLoanRepayment,
		TransactionCollateralDeposit, TransactionCollateralRelease, TransactionTokenPurchase:
		return true
	}
	return false
}

// TransactionStatus defines possible status values for a ledger row
type TransactionStatus string

// TransactionStatus constants
const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is a ledger row. Amount is always positive; direction comes from
// Type and the sender/receiver pair. Rows are written once and afterwards only
// Status and TxHash are backfilled.
type Transaction struct {
	ID         string
	SenderID   *uint64 // nil for transfers from outside the platform
	ReceiverID *uint64
	Amount     decimal.Decimal
	Currency   string
	Type       TransactionType
	Status     TransactionStatus
	TxHash     *string
	Reference  string
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTransaction creates a pending ledger row
func NewTransaction(
	txType TransactionType,
	senderID, receiverID *uint64,
	amount decimal.Decimal,
	currency, reference, note string,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if !txType.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", errs.ErrInvalidRequest, txType)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: ledger amount must be positive", errs.ErrInvalidAmount)
	}

	now := timeProvider.Now()
	return &Transaction{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		Currency:   currency,
		Type:       txType,
		Status:     TransactionPending,
		Reference:  reference,
		Note:       note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// NewTokenPurchaseTransaction creates the ledger row that mirrors a token purchase.
// Tokens come from the custodial hot wallet, so there is no platform sender.
func NewTokenPurchaseTransaction(purchase *TokenPurchase, timeProvider coreport.TimeProvider) (*Transaction, error) {
	note := fmt.Sprintf("Purchase of %s %s for %s %s",
		purchase.TokenAmount.String(), TokenSymbol,
		FormatMinorUnits(purchase.FiatAmount), purchase.FiatCurrency)

	return NewTransaction(
		TransactionTokenPurchase,
		nil,
		purchase.UserID,
		purchase.TokenAmount,
		TokenSymbol,
		purchase.ID,
		note,
		timeProvider,
	)
}
