package migration

import (
	"context"

	"gorm.io/gorm"

	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
)

// AddStatusConstraints adds CHECK constraints for status enums and positive amounts
type AddStatusConstraints struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAddStatusConstraints creates a new migration instance
func NewAddStatusConstraints(db *gorm.DB, logger coreport.Logger) *AddStatusConstraints {
	return &AddStatusConstraints{
		db:     db,
		logger: logger,
	}
}

var checkConstraints = []struct {
	table string
	name  string
	check string
}{
	{"token_purchases", "chk_token_purchases_status",
		"status IN ('pending','processing','succeeded','failed','transfer_failed')"},
	{"token_purchases", "chk_token_purchases_fiat_amount", "fiat_amount > 0"},
	{"token_purchases", "chk_token_purchases_tx_hash",
		"(status = 'succeeded') = (tx_hash IS NOT NULL AND tx_hash <> '')"},
	{"transactions", "chk_transactions_amount", "amount > 0"},
	{"transactions", "chk_transactions_status", "status IN ('pending','completed','failed')"},
}

// Run adds every constraint that is not present yet
func (m *AddStatusConstraints) Run(ctx context.Context) error {
	m.logger.Info("Adding check constraints", nil)

	existing, err := m.existingConstraints(ctx)
	if err != nil {
		return err
	}

	for _, c := range checkConstraints {
		if existing[c.name] {
			continue
		}
		sql := "ALTER TABLE " + c.table + " ADD CONSTRAINT " + c.name + " CHECK (" + c.check + ")"
		if err := m.db.WithContext(ctx).Exec(sql).Error; err != nil {
			m.logger.Error("Failed to add check constraint", map[string]any{
				"constraint": c.name,
				"error":      err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Check constraints in place", nil)
	return nil
}

func (m *AddStatusConstraints) existingConstraints(ctx context.Context) (map[string]bool, error) {
	var rows []struct {
		ConstraintName string `gorm:"column:constraint_name"`
	}

	err := m.db.WithContext(ctx).Raw(`
		SELECT constraint_name
		FROM information_schema.table_constraints
		WHERE table_name IN ('token_purchases', 'transactions') AND constraint_type = 'CHECK'
	`).Scan(&rows).Error
	if err != nil {
		m.logger.Error("Failed to read existing constraints", map[string]any{"error": err.Error()})
		return nil, err
	}

	existing := make(map[string]bool, len(rows))
	for _, r := range rows {
		existing[r.ConstraintName] = true
	}
	return existing, nil
}
