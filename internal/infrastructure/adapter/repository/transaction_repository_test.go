package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/logger"
	realtime "github.com/nepalipay/settlement-service/internal/infrastructure/adapter/time"
)

func newTransactionRepo(t *testing.T) (*TransactionRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return NewTransactionRepository(db, realtime.NewRealTimeProvider(), logger.NewNoopLogger()), mock
}

func newLedgerRow(t *testing.T) *entity.Transaction {
	t.Helper()
	tp := realtime.NewRealTimeProvider()
	purchase, err := entity.NewTokenPurchase("pi_1", nil, "0x2234567890123456789012345678901234567890", 5000, "usd", entity.DefaultFeeSchedule().Quote(5000), tp)
	require.NoError(t, err)
	tx, err := entity.NewTokenPurchaseTransaction(purchase, tp)
	require.NoError(t, err)
	return tx
}

func TestTransactionRepository_Create(t *testing.T) {
	t.Run("Inserts the row", func(t *testing.T) {
		repo, mock := newTransactionRepo(t)
		mock.ExpectExec(`INSERT INTO "transactions"`).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), newLedgerRow(t)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Second row for the same purchase violates the constraint", func(t *testing.T) {
		repo, mock := newTransactionRepo(t)
		mock.ExpectExec(`INSERT INTO "transactions"`).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"idx_transactions_type_reference\""})

		err := repo.Create(context.Background(), newLedgerRow(t))
		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	})
}

func TestTransactionRepository_GetByReference(t *testing.T) {
	repo, mock := newTransactionRepo(t)
	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE type = \$1 AND reference = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "sender_id", "receiver_id", "amount", "currency", "type", "status",
			"tx_hash", "reference", "note", "created_at", "updated_at",
		}).AddRow("b7c1", nil, uint64(7), "50", "NPT", "token_purchase", "completed", "0xabc", "pi_1", "", now, now))

	tx, err := repo.GetByReference(context.Background(), entity.TransactionTokenPurchase, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionCompleted, tx.Status)
	assert.Nil(t, tx.SenderID)
	require.NotNil(t, tx.ReceiverID)
	assert.Equal(t, uint64(7), *tx.ReceiverID)
}

func TestTransactionRepository_UpdateStatusByReference(t *testing.T) {
	t.Run("Backfills status and hash", func(t *testing.T) {
		repo, mock := newTransactionRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "transactions" SET "status"=$1,"tx_hash"=$2,"updated_at"=$3 WHERE type = $4 AND reference = $5`)).
			WithArgs("completed", "0xabc", sqlmock.AnyArg(), "token_purchase", "pi_1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatusByReference(context.Background(), entity.TransactionTokenPurchase, "pi_1", entity.TransactionCompleted, "0xabc")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failed status leaves the hash alone", func(t *testing.T) {
		repo, mock := newTransactionRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "transactions" SET "status"=$1,"updated_at"=$2 WHERE type = $3 AND reference = $4`)).
			WithArgs("failed", sqlmock.AnyArg(), "token_purchase", "pi_1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatusByReference(context.Background(), entity.TransactionTokenPurchase, "pi_1", entity.TransactionFailed, "")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing row", func(t *testing.T) {
		repo, mock := newTransactionRepo(t)
		mock.ExpectExec(`UPDATE "transactions"`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatusByReference(context.Background(), entity.TransactionTokenPurchase, "pi_1", entity.TransactionFailed, "")
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}
