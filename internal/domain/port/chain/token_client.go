package chain

import (
	"context"

	"github.com/shopspring/decimal"
)

// TxStatus is what the chain currently knows about a broadcast transaction
type TxStatus string

// TxStatus constants
const (
	TxConfirmed TxStatus = "confirmed"
	TxReverted  TxStatus = "reverted"
	TxPending   TxStatus = "pending"
	TxNotFound  TxStatus = "not_found"
)

// TokenClient wraps the blockchain RPC connection, the custodial hot-wallet
// signer and the token contract.
type TokenClient interface {
	// GetWalletBalance returns the hot wallet's native balance in decimal units ("1.0" for 1e18 wei)
	//
	// Possible errors:
	// - ErrProvider: If the RPC endpoint is unreachable
	GetWalletBalance(ctx context.Context) (string, error)

	// GetNativeBalance returns the native balance of any address in decimal units
	//
	// Possible errors:
	// - ErrInvalidWalletAddress: If address is not a hex address
	// - ErrProvider: If the RPC endpoint is unreachable
	GetNativeBalance(ctx context.Context, address string) (string, error)

	// GetTokenBalance returns the raw token balance of address in the token's smallest unit
	//
	// Possible errors:
	// - ErrContractCall: If the address is invalid or the call fails or reverts
	GetTokenBalance(ctx context.Context, address string) (string, error)

	// TransferTokens sends amount (human decimal) from the hot wallet to address,
	// waits for confirmation and returns the transaction hash.
	// Any error means the transfer did not complete.
	//
	// Possible errors:
	// - ErrTransfer: On insufficient balance, send failure, revert or confirmation timeout
	TransferTokens(ctx context.Context, to string, amount decimal.Decimal) (string, error)

	// TransferStatus looks up the receipt of a previously broadcast transaction.
	// TxNotFound means the node has neither a receipt nor a pooled transaction for the hash.
	//
	// Possible errors:
	// - ErrProvider: If the hash is malformed or the RPC endpoint is unreachable
	TransferStatus(ctx context.Context, txHash string) (TxStatus, error)

	// HotWalletAddress returns the checksummed custodial address
	HotWalletAddress() string

	// TokenDecimals returns the number of decimals of the token contract
	TokenDecimals() int32
}
