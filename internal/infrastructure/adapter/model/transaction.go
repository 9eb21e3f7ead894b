package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents the database model for ledger rows
type Transaction struct {
	ID         string          `gorm:"primaryKey;size:36"`
	SenderID   *uint64         `gorm:"index"`
	ReceiverID *uint64         `gorm:"index"`
	Amount     decimal.Decimal `gorm:"type:numeric(36,18);not null"`
	Currency   string          `gorm:"not null;size:10"`
	Type       string          `gorm:"not null;size:32"`
	Status     string          `gorm:"not null;size:20"`
	TxHash     *string         `gorm:"size:66"`
	Reference  string          `gorm:"size:255"`
	Note       string          `gorm:"type:text"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
