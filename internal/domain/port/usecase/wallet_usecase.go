package usecase

import "context"

// HotWalletBalance is the custodial wallet's native balance
type HotWalletBalance struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// TokenBalance is a token balance in raw and formatted units
type TokenBalance struct {
	Address   string `json:"address"`
	Raw       string `json:"raw"`
	Formatted string `json:"formatted"`
	Decimals  int32  `json:"decimals"`
}

// RefreshSummary reports a wallet cache refresh sweep
type RefreshSummary struct {
	Refreshed int
	Failed    int
}

// WalletUseCase defines wallet balance operations
type WalletUseCase interface {
	// GetHotWalletBalance returns the hot wallet's native balance
	GetHotWalletBalance(ctx context.Context) (*HotWalletBalance, error)

	// GetTokenBalance returns the token balance of address
	GetTokenBalance(ctx context.Context, address string) (*TokenBalance, error)

	// RefreshBalances re-reads every wallet's balances from the chain into the cache columns
	RefreshBalances(ctx context.Context) (*RefreshSummary, error)
}
