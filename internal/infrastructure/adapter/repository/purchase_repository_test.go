package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/logger"
	realtime "github.com/nepalipay/settlement-service/internal/infrastructure/adapter/time"
)

var purchaseColumns = []string{
	"id", "user_id", "wallet_address", "fiat_amount", "fiat_currency", "token_amount",
	"gas_fee", "service_fee", "status", "tx_hash", "submitted_tx_hash", "error_message", "attempts",
	"created_at", "updated_at", "settled_at",
}

func newPurchaseRepo(t *testing.T) (*PurchaseRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return NewPurchaseRepository(db, realtime.NewRealTimeProvider(), logger.NewNoopLogger()), mock
}

func purchaseRow(status string, txHash any) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(purchaseColumns).AddRow(
		"pi_1", nil, "0x2234567890123456789012345678901234567890", int64(5000), "usd", "50",
		"0.001", "1", status, txHash, nil, "", 1, now, now, nil,
	)
}

func TestPurchaseRepository_Create(t *testing.T) {
	quote := entity.DefaultFeeSchedule().Quote(5000)
	purchase, err := entity.NewTokenPurchase("pi_1", nil, "0x2234567890123456789012345678901234567890", 5000, "usd", quote, realtime.NewRealTimeProvider())
	require.NoError(t, err)

	t.Run("Inserts the row", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectExec(`INSERT INTO "token_purchases"`).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), purchase))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate intent", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectExec(`INSERT INTO "token_purchases"`).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"token_purchases_pkey\""})

		err := repo.Create(context.Background(), purchase)
		assert.ErrorIs(t, err, errs.ErrDuplicatePurchase)
	})
}

func TestPurchaseRepository_GetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "token_purchases" WHERE id = \$1`).
			WillReturnRows(purchaseRow("succeeded", "0xabc"))

		p, err := repo.GetByID(context.Background(), "pi_1")
		require.NoError(t, err)
		assert.Equal(t, entity.PurchaseSucceeded, p.Status)
		assert.True(t, p.TokenAmount.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, "0xabc", p.TxHashValue())
		assert.Nil(t, p.UserID)
	})

	t.Run("Not found", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "token_purchases"`).
			WillReturnRows(sqlmock.NewRows(purchaseColumns))

		_, err := repo.GetByID(context.Background(), "pi_missing")
		assert.ErrorIs(t, err, errs.ErrPurchaseNotFound)
	})

	t.Run("Connection failure is transient", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "token_purchases"`).
			WillReturnError(errors.New("read tcp: connection reset by peer"))

		_, err := repo.GetByID(context.Background(), "pi_1")
		assert.True(t, errs.IsTransientError(err))
	})
}

func TestPurchaseRepository_ClaimForSettlement(t *testing.T) {
	claim := `UPDATE "token_purchases" SET .*"attempts"=attempts \+ 1.* WHERE id = \$\d+ AND status = \$\d+`

	t.Run("Wins the claim", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectExec(claim).
			WithArgs("", "processing", sqlmock.AnyArg(), sqlmock.AnyArg(), "pi_1", "pending").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.ClaimForSettlement(context.Background(), "pi_1", decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Loses the claim", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectExec(claim).WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.ClaimForSettlement(context.Background(), "pi_1", decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPurchaseRepository_ClaimForRetry(t *testing.T) {
	repo, mock := newPurchaseRepo(t)
	mock.ExpectExec(`UPDATE "token_purchases" SET .* WHERE id = \$\d+ AND status = \$\d+`).
		WithArgs("", "processing", sqlmock.AnyArg(), "pi_1", "transfer_failed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.ClaimForRetry(context.Background(), "pi_1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRepository_MarkSucceeded(t *testing.T) {
	t.Run("Records the hash", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectExec(`UPDATE "token_purchases" SET .*"tx_hash"=.* WHERE id = \$\d+ AND status = \$\d+`).
			WithArgs(sqlmock.AnyArg(), "succeeded", "0xabc", sqlmock.AnyArg(), "pi_1", "processing").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkSucceeded(context.Background(), "pi_1", "0xabc", time.Now()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rejected when no longer processing", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectExec(`UPDATE "token_purchases"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "token_purchases"`).WillReturnRows(purchaseRow("succeeded", "0xold"))

		err := repo.MarkSucceeded(context.Background(), "pi_1", "0xabc", time.Now())
		require.ErrorIs(t, err, errs.ErrInvalidStatusTransition)

		var ste *errs.StatusTransitionError
		require.True(t, errors.As(err, &ste))
		assert.Equal(t, "succeeded", ste.From)
	})
}

func TestPurchaseRepository_MarkTransferFailed(t *testing.T) {
	t.Run("Without a broadcast transaction", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectExec(`UPDATE "token_purchases" SET "error_message"=\$1,"status"=\$2,"updated_at"=\$3 WHERE id = \$\d+ AND status = \$\d+`).
			WithArgs("Insufficient balance", "transfer_failed", sqlmock.AnyArg(), "pi_1", "processing").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkTransferFailed(context.Background(), "pi_1", "Insufficient balance", ""))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Keeps the submitted hash", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectExec(`UPDATE "token_purchases" SET .*"submitted_tx_hash"=.* WHERE id = \$\d+ AND status = \$\d+`).
			WithArgs("Transfer not confirmed", "transfer_failed", "0xsent", sqlmock.AnyArg(), "pi_1", "processing").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkTransferFailed(context.Background(), "pi_1", "Transfer not confirmed", "0xsent"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPurchaseRepository_GetByID_SubmittedHash(t *testing.T) {
	repo, mock := newPurchaseRepo(t)
	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT \* FROM "token_purchases" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(purchaseColumns).AddRow(
			"pi_1", nil, "0x2234567890123456789012345678901234567890", int64(5000), "usd", "50",
			"0.001", "1", "transfer_failed", nil, "0xsent", "Transfer not confirmed", 1, now, now, nil,
		))

	p, err := repo.GetByID(context.Background(), "pi_1")
	require.NoError(t, err)
	require.NotNil(t, p.SubmittedTxHash)
	assert.Equal(t, "0xsent", *p.SubmittedTxHash)
	assert.Nil(t, p.TxHash)
}

func TestPurchaseRepository_RecordPaymentError(t *testing.T) {
	t.Run("Pending purchase keeps its status", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectExec(`UPDATE "token_purchases" SET "error_message"=\$1,"updated_at"=\$2 WHERE id = \$3 AND status = \$4`).
			WithArgs("card declined", sqlmock.AnyArg(), "pi_1", "pending").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.RecordPaymentError(context.Background(), "pi_1", "card declined")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Settled purchase is untouched", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectExec(`UPDATE "token_purchases"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "token_purchases"`).WillReturnRows(purchaseRow("succeeded", "0xabc"))

		ok, err := repo.RecordPaymentError(context.Background(), "pi_1", "card declined")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Unknown purchase", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectExec(`UPDATE "token_purchases"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "token_purchases"`).WillReturnRows(sqlmock.NewRows(purchaseColumns))

		_, err := repo.RecordPaymentError(context.Background(), "pi_x", "card declined")
		assert.ErrorIs(t, err, errs.ErrPurchaseNotFound)
	})
}

func TestPurchaseRepository_MarkPaymentFailed(t *testing.T) {
	t.Run("Pending purchase fails", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectExec(`UPDATE "token_purchases"`).WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.MarkPaymentFailed(context.Background(), "pi_1", "card declined")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Already settled purchase is untouched", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectExec(`UPDATE "token_purchases"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "token_purchases"`).WillReturnRows(purchaseRow("succeeded", "0xabc"))

		ok, err := repo.MarkPaymentFailed(context.Background(), "pi_1", "card declined")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Unknown purchase", func(t *testing.T) {
		repo, mock := newPurchaseRepo(t)
		mock.ExpectExec(`UPDATE "token_purchases"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "token_purchases"`).WillReturnRows(sqlmock.NewRows(purchaseColumns))

		_, err := repo.MarkPaymentFailed(context.Background(), "pi_x", "card declined")
		assert.ErrorIs(t, err, errs.ErrPurchaseNotFound)
	})
}

func TestPurchaseRepository_ListStale(t *testing.T) {
	repo, mock := newPurchaseRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "token_purchases" WHERE status = \$1 AND updated_at < \$2 ORDER BY updated_at ASC LIMIT`).
		WillReturnRows(purchaseRow("processing", nil))

	stuck, err := repo.ListStale(context.Background(), entity.PurchaseProcessing, time.Now(), 10)
	require.NoError(t, err)
	require.Len(t, stuck, 1)
	assert.Equal(t, entity.PurchaseProcessing, stuck[0].Status)
	assert.Nil(t, stuck[0].TxHash)
}
