package entity

import (
	"time"

	"github.com/shopspring/decimal"

	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
)

// User represents a platform user. Identity management lives outside this service.
type User struct {
	ID        uint64
	Username  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Wallet is the custodial address held for a user together with cached balances.
// The chain is the source of truth; the cached values are refreshed periodically.
type Wallet struct {
	ID                  uint64
	UserID              uint64
	Address             string
	NPTBalance          decimal.Decimal
	BNBBalance          decimal.Decimal
	BalancesRefreshedAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RefreshBalances replaces the cached balances with values read from the chain
func (w *Wallet) RefreshBalances(npt, bnb decimal.Decimal, timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	w.NPTBalance = npt
	w.BNBBalance = bnb
	w.BalancesRefreshedAt = &now
	w.UpdatedAt = now
}
