package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TokenPurchase is the database model for token purchases, keyed by payment intent ID
type TokenPurchase struct {
	ID              string          `gorm:"primaryKey;size:255"`
	UserID          *uint64         `gorm:"index"`
	WalletAddress   string          `gorm:"not null;size:42;index"`
	FiatAmount      int64           `gorm:"not null"`
	FiatCurrency    string          `gorm:"not null;size:3"`
	TokenAmount     decimal.Decimal `gorm:"type:numeric(36,18);not null"`
	GasFee          decimal.Decimal `gorm:"type:numeric(36,18);not null"`
	ServiceFee      decimal.Decimal `gorm:"type:numeric(36,18);not null"`
	Status          string          `gorm:"not null;size:20;index:idx_token_purchases_status_updated,priority:1"`
	TxHash          *string         `gorm:"size:66"`
	SubmittedTxHash *string         `gorm:"size:66"`
	ErrorMessage    string          `gorm:"type:text"`
	Attempts        int             `gorm:"not null"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null;index:idx_token_purchases_status_updated,priority:2"`
	SettledAt       *time.Time
}

// TableName specifies the table name for TokenPurchase
func (TokenPurchase) TableName() string {
	return "token_purchases"
}
