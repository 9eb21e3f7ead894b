package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidAmount           = 4001
	CodeInvalidWalletAddress    = 4002
	CodeUnsupportedCurrency     = 4003
	CodeInvalidRequest          = 4004
	CodeInvalidStatusTransition = 4005
	CodeSettlementInProgress    = 4006
	CodeInvalidSignature        = 4007
	CodeDuplicatePurchase       = 4008
	CodeTransferPending         = 4009
	CodeUnauthorized            = 4010
	CodePurchaseNotFound        = 4040
	CodeUserNotFound            = 4041
	CodeWalletNotFound          = 4042
	CodeRateLimited             = 4290

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeProvider           = 5020
	CodePaymentProvider    = 5021
	CodeContractCall       = 5022
	CodeTransfer           = 5023
	CodeDatabaseConnection = 5030
)

// Base error types
var (
	// ErrInvalidAmount is returned when a fiat or token amount is zero, negative or out of range
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidWalletAddress is returned when an address is not a 20-byte hex address
	ErrInvalidWalletAddress = errors.New("invalid wallet address")

	// ErrUnsupportedCurrency is returned when the fiat currency is not accepted
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidStatusTransition is returned when a purchase is not in a state that allows the operation
	ErrInvalidStatusTransition = errors.New("invalid purchase status transition")

	// ErrSettlementInProgress is returned when another worker holds the settlement claim
	ErrSettlementInProgress = errors.New("settlement already in progress")

	// ErrTransferPending is returned when an earlier broadcast transfer has not been mined yet
	ErrTransferPending = errors.New("previous transfer still pending on chain")

	// ErrInvalidSignature is returned when a webhook payload fails signature verification
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrDuplicatePurchase is returned when a purchase with the same intent ID already exists
	ErrDuplicatePurchase = errors.New("purchase with this intent ID already exists")

	// ErrUnauthorized is returned when an operator endpoint is called without a valid key
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited is returned when a client exceeds its request budget
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrPurchaseNotFound is returned when no purchase exists for an intent ID
	ErrPurchaseNotFound = errors.New("payment not found")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrWalletNotFound is returned when the requested wallet doesn't exist
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrTransactionNotFound is returned when the requested ledger row doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrProvider is returned when the RPC endpoint or payment processor is unreachable
	ErrProvider = errors.New("provider unavailable")

	// ErrPaymentProvider is returned when the payment processor rejects a request
	ErrPaymentProvider = errors.New("payment provider rejected request")

	// ErrContractCall is returned when a read-only contract call fails or reverts
	ErrContractCall = errors.New("contract call failed")

	// ErrTransfer is returned when a token transfer did not complete
	ErrTransfer = errors.New("token transfer failed")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidWalletAddress):
		return CodeInvalidWalletAddress
	case errors.Is(err, ErrUnsupportedCurrency):
		return CodeUnsupportedCurrency
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrInvalidStatusTransition):
		return CodeInvalidStatusTransition
	case errors.Is(err, ErrSettlementInProgress):
		return CodeSettlementInProgress
	case errors.Is(err, ErrTransferPending):
		return CodeTransferPending
	case errors.Is(err, ErrInvalidSignature):
		return CodeInvalidSignature
	case errors.Is(err, ErrDuplicatePurchase):
		return CodeDuplicatePurchase
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	case errors.Is(err, ErrPurchaseNotFound):
		return CodePurchaseNotFound
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrWalletNotFound):
		return CodeWalletNotFound
	case errors.Is(err, ErrPaymentProvider):
		return CodePaymentProvider
	case errors.Is(err, ErrProvider):
		return CodeProvider
	case errors.Is(err, ErrContractCall):
		return CodeContractCall
	case errors.Is(err, ErrTransfer):
		return CodeTransfer
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	default:
		return CodeInternalServer
	}
}

// ProviderError describes an unreachable upstream (blockchain RPC or payment processor)
type ProviderError struct {
	Provider  string
	Operation string
	Err       error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Operation, e.Err)
}

// Unwrap returns the underlying error
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrProvider
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// LogFields returns a map of fields for structured logging
func (e *ProviderError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "provider_error",
		"provider":   e.Provider,
		"operation":  e.Operation,
		"error":      e.Err.Error(),
		"error_code": CodeProvider,
	}
}

// NewProviderError creates a new provider error
func NewProviderError(provider, operation string, err error) error {
	return &ProviderError{Provider: provider, Operation: operation, Err: err}
}

// ContractCallError describes a failed read-only contract call
type ContractCallError struct {
	Contract string
	Method   string
	Address  string
	Err      error
}

// Error implements the error interface
func (e *ContractCallError) Error() string {
	return fmt.Sprintf("contract call %s on %s for %s failed: %v", e.Method, e.Contract, e.Address, e.Err)
}

// Unwrap returns the underlying error
func (e *ContractCallError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrContractCall
func (e *ContractCallError) Is(target error) bool {
	return target == ErrContractCall
}

// LogFields returns a map of fields for structured logging
func (e *ContractCallError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "contract_call_error",
		"contract":   e.Contract,
		"method":     e.Method,
		"address":    e.Address,
		"error":      e.Err.Error(),
		"error_code": CodeContractCall,
	}
}

// NewContractCallError creates a new contract call error
func NewContractCallError(contract, method, address string, err error) error {
	return &ContractCallError{Contract: contract, Method: method, Address: address, Err: err}
}

// TransferError describes a token transfer that did not complete.
// Reason is the human readable message surfaced to API callers.
type TransferError struct {
	To     string
	Amount string
	TxHash string
	Reason string
	Err    error
}

// Error implements the error interface
func (e *TransferError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *TransferError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrTransfer
func (e *TransferError) Is(target error) bool {
	return target == ErrTransfer
}

// LogFields returns a map of fields for structured logging
func (e *TransferError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "transfer_error",
		"to":         e.To,
		"amount":     e.Amount,
		"reason":     e.Reason,
		"error_code": CodeTransfer,
	}
	if e.TxHash != "" {
		fields["tx_hash"] = e.TxHash
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewTransferError creates a new transfer error
func NewTransferError(to, amount, txHash, reason string, err error) error {
	return &TransferError{To: to, Amount: amount, TxHash: txHash, Reason: reason, Err: err}
}

// PaymentProviderError describes a request rejected by the payment processor
type PaymentProviderError struct {
	Code    string
	Message string
	Status  int
}

// Error implements the error interface
func (e *PaymentProviderError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("payment provider rejected request: %s", e.Message)
	}
	return fmt.Sprintf("payment provider rejected request (%s): %s", e.Code, e.Message)
}

// Is checks if the target error is an ErrPaymentProvider
func (e *PaymentProviderError) Is(target error) bool {
	return target == ErrPaymentProvider
}

// LogFields returns a map of fields for structured logging
func (e *PaymentProviderError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "payment_provider_error",
		"provider_code":   e.Code,
		"provider_status": e.Status,
		"message":         e.Message,
		"error_code":      CodePaymentProvider,
	}
}

// NewPaymentProviderError creates a new payment provider error
func NewPaymentProviderError(code, message string, status int) error {
	return &PaymentProviderError{Code: code, Message: message, Status: status}
}

// StatusTransitionError describes a purchase that is not in the state an operation requires
type StatusTransitionError struct {
	PurchaseID string
	From       string
	To         string
}

// Error implements the error interface
func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("purchase %s cannot move from %s to %s", e.PurchaseID, e.From, e.To)
}

// Is checks if the target error is an ErrInvalidStatusTransition
func (e *StatusTransitionError) Is(target error) bool {
	return target == ErrInvalidStatusTransition
}

// LogFields returns a map of fields for structured logging
func (e *StatusTransitionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "status_transition",
		"purchase_id": e.PurchaseID,
		"from":        e.From,
		"to":          e.To,
		"error_code":  CodeInvalidStatusTransition,
	}
}

// NewStatusTransitionError creates a new status transition error
func NewStatusTransitionError(purchaseID, from, to string) error {
	return &StatusTransitionError{PurchaseID: purchaseID, From: from, To: to}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPurchaseNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrWalletNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsValidationError checks if the error was caused by bad caller input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidWalletAddress) ||
		errors.Is(err, ErrUnsupportedCurrency) ||
		errors.Is(err, ErrInvalidRequest)
}

// IsConflictError checks if the error reflects the purchase's current state
func IsConflictError(err error) bool {
	return errors.Is(err, ErrInvalidStatusTransition) ||
		errors.Is(err, ErrSettlementInProgress) ||
		errors.Is(err, ErrTransferPending) ||
		errors.Is(err, ErrDuplicatePurchase)
}

// IsUpstreamError checks if the error came from the chain or the payment processor
func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrProvider) ||
		errors.Is(err, ErrPaymentProvider) ||
		errors.Is(err, ErrContractCall) ||
		errors.Is(err, ErrTransfer)
}

// IsTransientError checks if the error is a database fault worth retrying
func IsTransientError(err error) bool {
	return errors.Is(err, ErrDatabaseConnection)
}
