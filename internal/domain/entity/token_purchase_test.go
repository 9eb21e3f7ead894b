package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	"github.com/nepalipay/settlement-service/mocks/port/core"
)

func TestPurchaseStatus_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		from     PurchaseStatus
		to       PurchaseStatus
		expected bool
	}{
		{PurchasePending, PurchaseProcessing, true},
		{PurchasePending, PurchaseFailed, true},
		{PurchasePending, PurchaseSucceeded, false},
		{PurchaseProcessing, PurchaseSucceeded, true},
		{PurchaseProcessing, PurchaseTransferFailed, true},
		{PurchaseProcessing, PurchasePending, false},
		{PurchaseTransferFailed, PurchaseProcessing, true},
		{PurchaseTransferFailed, PurchaseSucceeded, false},
		{PurchaseSucceeded, PurchaseProcessing, false},
		{PurchaseFailed, PurchaseProcessing, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestPurchaseStatus_IsTerminal(t *testing.T) {
	assert.True(t, PurchaseSucceeded.IsTerminal())
	assert.True(t, PurchaseFailed.IsTerminal())
	assert.False(t, PurchasePending.IsTerminal())
	assert.False(t, PurchaseProcessing.IsTerminal())
	assert.False(t, PurchaseTransferFailed.IsTerminal())
	assert.False(t, PurchaseStatus("refunded").IsValid())
}

func TestNewTokenPurchase(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	wallet := "0x2234567890abcdef1234567890abcdef12347890"
	quote := DefaultFeeSchedule().Quote(5000)

	t.Run("creates pending purchase", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)

		purchase, err := NewTokenPurchase("pi_123", nil, wallet, 5000, "USD", quote, mockTimeProvider)

		require.NoError(t, err)
		assert.Equal(t, "pi_123", purchase.ID)
		assert.Equal(t, PurchasePending, purchase.Status)
		assert.Equal(t, "usd", purchase.FiatCurrency)
		assert.True(t, purchase.TokenAmount.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, "", purchase.TxHashValue())
		assert.Equal(t, "", purchase.SubmittedTxHashValue())
		assert.False(t, purchase.IsSettled())
		assert.Equal(t, fixedTime, purchase.CreatedAt)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		_, err := NewTokenPurchase("", nil, wallet, 5000, "usd", quote, mockTimeProvider)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)

		_, err = NewTokenPurchase("pi_1", nil, wallet, 0, "usd", quote, mockTimeProvider)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		_, err = NewTokenPurchase("pi_1", nil, "0x1234", 5000, "usd", quote, mockTimeProvider)
		assert.ErrorIs(t, err, errs.ErrInvalidWalletAddress)

		mockTimeProvider.AssertNotCalled(t, "Now")
	})
}

func TestTokenPurchase_IsSettled(t *testing.T) {
	hash := "0xabcdef"
	purchase := &TokenPurchase{Status: PurchaseSucceeded, TxHash: &hash}
	assert.True(t, purchase.IsSettled())

	purchase.Status = PurchaseTransferFailed
	assert.False(t, purchase.IsSettled())
}
