package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents the database model for users
type User struct {
	ID        uint64    `gorm:"primaryKey"`
	Username  string    `gorm:"not null;size:64;uniqueIndex"`
	Email     string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// Wallet is the custodial wallet of one user with its cached balances
type Wallet struct {
	ID                  uint64          `gorm:"primaryKey"`
	UserID              uint64          `gorm:"not null;uniqueIndex"`
	Address             string          `gorm:"not null;size:42;uniqueIndex"`
	NPTBalance          decimal.Decimal `gorm:"column:npt_balance;type:numeric(36,18);not null;default:0"`
	BNBBalance          decimal.Decimal `gorm:"column:bnb_balance;type:numeric(36,18);not null;default:0"`
	BalancesRefreshedAt *time.Time
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Wallet
func (Wallet) TableName() string {
	return "wallets"
}
