package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InvalidAmount", ErrInvalidAmount, 4001},
		{"InvalidWalletAddress", ErrInvalidWalletAddress, 4002},
		{"UnsupportedCurrency", ErrUnsupportedCurrency, 4003},
		{"InvalidStatusTransition", ErrInvalidStatusTransition, 4005},
		{"SettlementInProgress", ErrSettlementInProgress, 4006},
		{"TransferPending", ErrTransferPending, 4009},
		{"PurchaseNotFound", ErrPurchaseNotFound, 4040},
		{"UserNotFound", ErrUserNotFound, 4041},
		{"ProviderError", NewProviderError("rpc", "BalanceAt", errors.New("dial tcp")), 5020},
		{"PaymentProviderError", NewPaymentProviderError("amount_too_small", "too small", 400), 5021},
		{"ContractCallError", NewContractCallError("0xabc", "balanceOf", "0xdef", errors.New("revert")), 5022},
		{"TransferError", NewTransferError("0xdef", "50", "", "Insufficient balance", nil), 5023},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidAmount), 4001},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestTransferError(t *testing.T) {
	t.Run("reason only", func(t *testing.T) {
		err := NewTransferError("0x2234", "50", "", "Insufficient balance", nil)
		if err.Error() != "Insufficient balance" {
			t.Errorf("TransferError.Error() = %q, want %q", err.Error(), "Insufficient balance")
		}
		if !errors.Is(err, ErrTransfer) {
			t.Error("TransferError should match ErrTransfer")
		}
	})

	t.Run("wrapped cause", func(t *testing.T) {
		cause := errors.New("nonce too low")
		err := NewTransferError("0x2234", "50", "", "send transaction", cause)
		if err.Error() != "send transaction: nonce too low" {
			t.Errorf("unexpected message: %s", err.Error())
		}
		if !errors.Is(err, cause) {
			t.Error("TransferError should unwrap to its cause")
		}

		var transferErr *TransferError
		if !errors.As(err, &transferErr) {
			t.Fatal("errors.As should find *TransferError")
		}
		fields := transferErr.LogFields()
		if fields["error_code"] != CodeTransfer {
			t.Errorf("unexpected error_code: %v", fields["error_code"])
		}
		if _, ok := fields["tx_hash"]; ok {
			t.Error("tx_hash should be omitted when empty")
		}
	})
}

func TestProviderError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewProviderError("rpc", "BalanceAt", cause)

	if !errors.Is(err, ErrProvider) {
		t.Error("ProviderError should match ErrProvider")
	}
	if !errors.Is(err, cause) {
		t.Error("ProviderError should unwrap to its cause")
	}
	if errors.Is(err, ErrPaymentProvider) {
		t.Error("ProviderError should not match ErrPaymentProvider")
	}
	if !IsUpstreamError(err) {
		t.Error("ProviderError should be an upstream error")
	}
}

func TestPaymentProviderError(t *testing.T) {
	err := NewPaymentProviderError("", "currency not supported", 400)
	expected := "payment provider rejected request: currency not supported"
	if err.Error() != expected {
		t.Errorf("PaymentProviderError.Error() = %q, want %q", err.Error(), expected)
	}

	err = NewPaymentProviderError("amount_too_small", "Amount must be at least 50 cents", 400)
	expected = "payment provider rejected request (amount_too_small): Amount must be at least 50 cents"
	if err.Error() != expected {
		t.Errorf("PaymentProviderError.Error() = %q, want %q", err.Error(), expected)
	}
}

func TestStatusTransitionError(t *testing.T) {
	err := NewStatusTransitionError("pi_123", "failed", "processing")

	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Error("StatusTransitionError should match ErrInvalidStatusTransition")
	}
	if !IsConflictError(err) {
		t.Error("StatusTransitionError should be a conflict error")
	}
	if err.Error() != "purchase pi_123 cannot move from failed to processing" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestErrorClassHelpers(t *testing.T) {
	if !IsNotFoundError(fmt.Errorf("lookup: %w", ErrPurchaseNotFound)) {
		t.Error("wrapped ErrPurchaseNotFound should be a not-found error")
	}
	if !IsNotFoundError(ErrWalletNotFound) {
		t.Error("ErrWalletNotFound should be a not-found error")
	}
	if IsNotFoundError(ErrInvalidAmount) {
		t.Error("ErrInvalidAmount should not be a not-found error")
	}
	if !IsValidationError(ErrUnsupportedCurrency) {
		t.Error("ErrUnsupportedCurrency should be a validation error")
	}
	if !IsTransientError(fmt.Errorf("%w: connection reset", ErrDatabaseConnection)) {
		t.Error("wrapped ErrDatabaseConnection should be transient")
	}
	if IsTransientError(ErrPurchaseNotFound) {
		t.Error("ErrPurchaseNotFound should not be transient")
	}
}
