package entity

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	errs "github.com/nepalipay/settlement-service/internal/domain/error"
)

// FiatMinorUnits is the number of minor units in one major fiat unit (cents per dollar)
const FiatMinorUnits = 100

// TokenSymbol is the ticker of the token sold by the service
const TokenSymbol = "NPT"

var (
	minorUnitsPerMajor = decimal.NewFromInt(FiatMinorUnits)

	// DefaultServiceFeeRate is the share of the token cost billed as a service fee
	DefaultServiceFeeRate = decimal.RequireFromString("0.02")

	// DefaultExchangeRate converts one major fiat unit into one token
	DefaultExchangeRate = decimal.NewFromInt(1)
)

// MinorUnitsToDecimal converts an integer minor-unit amount to major units.
// For example 5000 cents becomes 50.
func MinorUnitsToDecimal(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount).Div(minorUnitsPerMajor)
}

// FormatMinorUnits renders a minor-unit amount with exactly two decimal places.
// For example:
// - 1015 becomes "10.15"
// - 1000 becomes "10.00"
func FormatMinorUnits(amount int64) string {
	return MinorUnitsToDecimal(amount).StringFixed(2)
}

// TokensForPayment converts a confirmed fiat amount in minor units into tokens at the given rate
func TokensForPayment(amountCents int64, rate decimal.Decimal) decimal.Decimal {
	return MinorUnitsToDecimal(amountCents).Mul(rate)
}

// ValidateAmountCents checks a fiat amount against the accepted bounds.
// A max of zero disables the upper bound.
func ValidateAmountCents(amount, min, max int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", errs.ErrInvalidAmount)
	}
	if amount < min {
		return fmt.Errorf("%w: amount must be at least %d", errs.ErrInvalidAmount, min)
	}
	if max > 0 && amount > max {
		return fmt.Errorf("%w: amount must not exceed %d", errs.ErrInvalidAmount, max)
	}
	return nil
}

// ParseTokenAmount parses a human-decimal token amount and requires it to be positive
func ParseTokenAmount(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, fmt.Errorf("%w: empty token amount", errs.ErrInvalidAmount)
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: token amount must be positive", errs.ErrInvalidAmount)
	}
	return amount, nil
}

// NormalizeWalletAddress validates a hex address and returns its checksummed form
func NormalizeWalletAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidWalletAddress, address)
	}
	return common.HexToAddress(address).Hex(), nil
}

// Quote is the priced breakdown of a token purchase
type Quote struct {
	TokenCost   decimal.Decimal // fiat cost of the tokens in major units
	TokenAmount decimal.Decimal
	GasFee      decimal.Decimal
	ServiceFee  decimal.Decimal
	TotalCost   decimal.Decimal
}

// FeeSchedule holds the values used to price a purchase
type FeeSchedule struct {
	ExchangeRate   decimal.Decimal
	GasFee         decimal.Decimal
	ServiceFeeRate decimal.Decimal
}

// DefaultFeeSchedule returns the schedule with a 1:1 rate, no gas fee and a 2% service fee
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		ExchangeRate:   DefaultExchangeRate,
		GasFee:         decimal.Zero,
		ServiceFeeRate: DefaultServiceFeeRate,
	}
}

// Quote prices a purchase of amountCents.
// Fees are for display and billing only and are never enforced on chain.
func (f FeeSchedule) Quote(amountCents int64) Quote {
	tokenCost := MinorUnitsToDecimal(amountCents)
	serviceFee := tokenCost.Mul(f.ServiceFeeRate)

	return Quote{
		TokenCost:   tokenCost,
		TokenAmount: tokenCost.Mul(f.ExchangeRate),
		GasFee:      f.GasFee,
		ServiceFee:  serviceFee,
		TotalCost:   tokenCost.Add(f.GasFee).Add(serviceFee),
	}
}
