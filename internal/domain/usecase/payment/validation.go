package payment

import (
	"fmt"
	"strings"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
	errs "github.com/nepalipay/settlement-service/internal/domain/error"
)

// RequestValidator checks intent requests against the configured limits
type RequestValidator struct {
	minAmountCents int64
	maxAmountCents int64
	currencies     map[string]struct{}
}

// NewRequestValidator creates a validator; currencies are matched case-insensitively
func NewRequestValidator(minAmountCents, maxAmountCents int64, currencies []string) *RequestValidator {
	set := make(map[string]struct{}, len(currencies))
	for _, c := range currencies {
		set[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}
	return &RequestValidator{
		minAmountCents: minAmountCents,
		maxAmountCents: maxAmountCents,
		currencies:     set,
	}
}

// Validate checks the amount, the currency and, when given, the wallet address and token amount
func (v *RequestValidator) Validate(amountCents int64, currency, walletAddress, tokenAmount string) error {
	if err := entity.ValidateAmountCents(amountCents, v.minAmountCents, v.maxAmountCents); err != nil {
		return err
	}

	if err := v.validateCurrency(currency); err != nil {
		return err
	}

	if walletAddress != "" {
		if _, err := entity.NormalizeWalletAddress(walletAddress); err != nil {
			return err
		}
	}

	if strings.TrimSpace(tokenAmount) != "" {
		if _, err := entity.ParseTokenAmount(tokenAmount); err != nil {
			return err
		}
	}

	return nil
}

func (v *RequestValidator) validateCurrency(currency string) error {
	if currency == "" {
		return fmt.Errorf("%w: currency is required", errs.ErrUnsupportedCurrency)
	}
	if _, ok := v.currencies[strings.ToLower(currency)]; !ok {
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedCurrency, currency)
	}
	return nil
}
