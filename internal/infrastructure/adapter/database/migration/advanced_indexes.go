package migration

import (
	"context"

	"gorm.io/gorm"

	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
)

// AdvancedIndexManager manages PostgreSQL-specific indexes GORM tags cannot express
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

var advancedIndexes = []struct {
	name string
	sql  string
}{
	{
		// one ledger row per purchase; rows of other types may leave reference empty
		name: "idx_transactions_type_reference",
		sql: `CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_type_reference
			ON transactions (type, reference) WHERE reference <> ''`,
	},
	{
		// stuck settlement scan only ever looks at processing rows
		name: "idx_token_purchases_processing",
		sql: `CREATE INDEX IF NOT EXISTS idx_token_purchases_processing
			ON token_purchases (updated_at) WHERE status = 'processing'`,
	},
	{
		name: "idx_token_purchases_tx_hash",
		sql: `CREATE UNIQUE INDEX IF NOT EXISTS idx_token_purchases_tx_hash
			ON token_purchases (tx_hash) WHERE tx_hash IS NOT NULL`,
	},
	{
		name: "idx_transactions_created_at_brin",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_created_at_brin
			ON transactions USING BRIN (created_at) WITH (pages_per_range = 32)`,
	},
}

// CreateAdvancedIndexes creates partial and BRIN indexes
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	for _, idx := range advancedIndexes {
		if err := m.db.WithContext(ctx).Exec(idx.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// CreatePerformanceTweaks applies storage settings. Failures are logged and ignored.
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) error {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// purchases are updated several times each; leave room for HOT updates
	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE token_purchases SET (fillfactor = 80)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for token_purchases table", map[string]any{
			"error": err.Error(),
		})
	}

	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE transactions ALTER COLUMN reference SET STATISTICS 1000`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for transactions.reference", map[string]any{
			"error": err.Error(),
		})
	}

	return nil
}
