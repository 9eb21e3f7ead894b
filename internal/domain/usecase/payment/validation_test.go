package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrs "github.com/nepalipay/settlement-service/internal/domain/error"
)

func TestRequestValidator_Validate(t *testing.T) {
	v := NewRequestValidator(50, 100000, []string{"USD", "npr"})

	tests := []struct {
		name          string
		amount        int64
		currency      string
		wallet        string
		tokenAmount   string
		expectedError error
	}{
		{name: "Valid request", amount: 5000, currency: "usd", wallet: "0x52908400098527886E0F7030069857D2E4169EE7"},
		{name: "Valid without wallet", amount: 5000, currency: "npr"},
		{name: "Currency is case-insensitive", amount: 5000, currency: "NPR"},
		{name: "Explicit token amount", amount: 5000, currency: "usd", tokenAmount: "49.5"},
		{name: "Zero amount", amount: 0, currency: "usd", expectedError: domainerrs.ErrInvalidAmount},
		{name: "Negative amount", amount: -100, currency: "usd", expectedError: domainerrs.ErrInvalidAmount},
		{name: "Below minimum", amount: 49, currency: "usd", expectedError: domainerrs.ErrInvalidAmount},
		{name: "Above maximum", amount: 100001, currency: "usd", expectedError: domainerrs.ErrInvalidAmount},
		{name: "Unsupported currency", amount: 5000, currency: "eur", expectedError: domainerrs.ErrUnsupportedCurrency},
		{name: "Empty currency", amount: 5000, currency: "", expectedError: domainerrs.ErrUnsupportedCurrency},
		{name: "Malformed wallet", amount: 5000, currency: "usd", wallet: "0x1234", expectedError: domainerrs.ErrInvalidWalletAddress},
		{name: "Non-numeric token amount", amount: 5000, currency: "usd", tokenAmount: "lots", expectedError: domainerrs.ErrInvalidAmount},
		{name: "Negative token amount", amount: 5000, currency: "usd", tokenAmount: "-1", expectedError: domainerrs.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.amount, tt.currency, tt.wallet, tt.tokenAmount)
			if tt.expectedError == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectedError)
		})
	}
}

func TestRequestValidator_NoUpperBound(t *testing.T) {
	v := NewRequestValidator(1, 0, []string{"usd"})
	assert.NoError(t, v.Validate(1_000_000_000, "usd", "", ""))
}
