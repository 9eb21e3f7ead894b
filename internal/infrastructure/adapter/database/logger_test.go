package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	realtime "github.com/nepalipay/settlement-service/internal/infrastructure/adapter/time"
	mockcore "github.com/nepalipay/settlement-service/mocks/port/core"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, ParseLogLevel("silent"))
	assert.Equal(t, logger.Error, ParseLogLevel("ERROR"))
	assert.Equal(t, logger.Info, ParseLogLevel("info"))
	assert.Equal(t, logger.Warn, ParseLogLevel("warn"))
	assert.Equal(t, logger.Warn, ParseLogLevel("whatever"))
}

func TestExtractQueryDetails(t *testing.T) {
	cases := []struct {
		sql   string
		verb  string
		table string
	}{
		{`SELECT * FROM "token_purchases" WHERE id = $1`, "SELECT", "token_purchases"},
		{`INSERT INTO "transactions" ("id") VALUES ($1)`, "INSERT", "transactions"},
		{`UPDATE "wallets" SET "npt_balance"=$1`, "UPDATE", "wallets"},
		{`ALTER TABLE token_purchases SET (fillfactor = 80)`, "", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.verb, extractQueryType(tc.sql), tc.sql)
		assert.Equal(t, tc.table, extractTableName(tc.sql), tc.sql)
	}
}

func TestDatabaseLogger_Trace(t *testing.T) {
	tp := realtime.NewRealTimeProvider()
	query := func() (string, int64) { return `SELECT * FROM "token_purchases" WHERE id = $1`, 1 }

	t.Run("Errors carry request id and table", func(t *testing.T) {
		log := mockcore.NewMockLogger(t)
		log.On("Error", "SQL error", mock.MatchedBy(func(f map[string]any) bool {
			return f["request_id"] == "req-1" && f["table"] == "token_purchases" && f["error"] == "boom"
		})).Once()

		l := NewDatabaseLogger(log, tp, "warn", 200*time.Millisecond)
		l.Trace(WithRequestID(context.Background(), "req-1"), time.Now(), query, errors.New("boom"))
	})

	t.Run("Record not found is not logged at warn", func(t *testing.T) {
		log := mockcore.NewMockLogger(t)
		l := NewDatabaseLogger(log, tp, "warn", 200*time.Millisecond)
		l.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	})

	t.Run("Slow queries are warnings", func(t *testing.T) {
		log := mockcore.NewMockLogger(t)
		log.On("Warn", "Slow SQL query", mock.Anything).Once()

		l := NewDatabaseLogger(log, tp, "warn", 10*time.Millisecond)
		l.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)
	})

	t.Run("Silent logs nothing", func(t *testing.T) {
		log := mockcore.NewMockLogger(t)
		l := NewDatabaseLogger(log, tp, "silent", time.Millisecond)
		l.Trace(context.Background(), time.Now().Add(-time.Second), query, errors.New("boom"))
	})
}
