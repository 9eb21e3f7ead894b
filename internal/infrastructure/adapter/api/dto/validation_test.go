package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEthAddrValidation(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterOn(v))

	amount := int64(5000)
	valid := CreatePaymentIntentRequest{
		Amount:        &amount,
		Currency:      "usd",
		WalletAddress: "0x2234567890123456789012345678901234567890",
	}
	assert.NoError(t, v.Struct(valid))

	empty := valid
	empty.WalletAddress = ""
	assert.NoError(t, v.Struct(empty))

	bad := valid
	bad.WalletAddress = "0x1234"
	assert.Error(t, v.Struct(bad))

	missingAmount := valid
	missingAmount.Amount = nil
	assert.Error(t, v.Struct(missingAmount))

	badCurrency := valid
	badCurrency.Currency = "us1"
	assert.Error(t, v.Struct(badCurrency))
}

func TestCreatePaymentIntentRequest_ToUseCase(t *testing.T) {
	amount := int64(2500)
	userID := uint64(7)
	req := CreatePaymentIntentRequest{Amount: &amount, Currency: "usd", TokenAmount: "25", UserID: &userID}

	got := req.ToUseCase()
	assert.Equal(t, int64(2500), got.AmountCents)
	assert.Equal(t, "25", got.TokenAmount)
	assert.Equal(t, &userID, got.UserID)

	assert.Zero(t, CreatePaymentIntentRequest{}.ToUseCase().AmountCents)
}
