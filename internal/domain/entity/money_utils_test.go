package entity

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/nepalipay/settlement-service/internal/domain/error"
)

func TestTokensForPayment(t *testing.T) {
	t.Run("Default rate is amount divided by 100", func(t *testing.T) {
		testCases := []struct {
			cents    int64
			expected string
		}{
			{5000, "50"},
			{1, "0.01"},
			{99, "0.99"},
			{100, "1"},
			{123456789, "1234567.89"},
		}

		for _, tc := range testCases {
			t.Run(tc.expected, func(t *testing.T) {
				tokens := TokensForPayment(tc.cents, DefaultExchangeRate)
				assert.Equal(t, tc.expected, tokens.String())
				assert.True(t, tokens.Equal(decimal.NewFromInt(tc.cents).Div(decimal.NewFromInt(100))))
			})
		}
	})

	t.Run("Injected rate is applied", func(t *testing.T) {
		rate := decimal.RequireFromString("133.5")
		tokens := TokensForPayment(5000, rate)
		assert.Equal(t, "6675", tokens.String())
	})
}

func TestFormatMinorUnits(t *testing.T) {
	assert.Equal(t, "10.15", FormatMinorUnits(1015))
	assert.Equal(t, "10.00", FormatMinorUnits(1000))
	assert.Equal(t, "0.05", FormatMinorUnits(5))
}

func TestValidateAmountCents(t *testing.T) {
	assert.NoError(t, ValidateAmountCents(5000, 50, 1_000_000))
	assert.NoError(t, ValidateAmountCents(5000, 0, 0))
	assert.ErrorIs(t, ValidateAmountCents(0, 0, 0), errs.ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmountCents(-100, 0, 0), errs.ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmountCents(49, 50, 0), errs.ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmountCents(1_000_001, 50, 1_000_000), errs.ErrInvalidAmount)
}

func TestParseTokenAmount(t *testing.T) {
	amount, err := ParseTokenAmount(" 50.25 ")
	require.NoError(t, err)
	assert.Equal(t, "50.25", amount.String())

	for _, input := range []string{"", "abc", "0", "-1"} {
		t.Run("rejects "+input, func(t *testing.T) {
			_, err := ParseTokenAmount(input)
			assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		})
	}
}

func TestNormalizeWalletAddress(t *testing.T) {
	raw := "0x2234567890abcdef1234567890abcdef12347890"

	address, err := NormalizeWalletAddress(raw)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(raw).Hex(), address)

	for _, input := range []string{"", "0x1234", "not-an-address", "0xZZ34567890abcdef1234567890abcdef12347890"} {
		t.Run(input, func(t *testing.T) {
			_, err := NormalizeWalletAddress(input)
			assert.ErrorIs(t, err, errs.ErrInvalidWalletAddress)
		})
	}
}

func TestFeeSchedule_Quote(t *testing.T) {
	schedule := FeeSchedule{
		ExchangeRate:   decimal.NewFromInt(1),
		GasFee:         decimal.RequireFromString("0.5"),
		ServiceFeeRate: DefaultServiceFeeRate,
	}

	quote := schedule.Quote(5000)

	assert.Equal(t, "50", quote.TokenCost.String())
	assert.Equal(t, "50", quote.TokenAmount.String())
	assert.Equal(t, "1", quote.ServiceFee.String())
	assert.Equal(t, "0.5", quote.GasFee.String())
	assert.Equal(t, "51.5", quote.TotalCost.String())
}

func TestDefaultFeeSchedule(t *testing.T) {
	quote := DefaultFeeSchedule().Quote(1000)

	assert.Equal(t, "10", quote.TokenAmount.String())
	assert.Equal(t, "0.2", quote.ServiceFee.String())
	assert.True(t, quote.GasFee.IsZero())
	assert.Equal(t, "10.2", quote.TotalCost.String())
}
