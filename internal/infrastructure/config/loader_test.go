package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: 9090
  readTimeout: 5s
database:
  host: localhost
  username: nepalipay
  database: nepalipay_test
payment:
  supportedCurrencies: [usd, npr]
chain:
  rpcURL: http://localhost:8545
  tokenAddress: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
scheduler:
  walletRefresh: "@every 1m"
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o600))
	return dir
}

func TestLoadConfigFrom(t *testing.T) {
	dir := writeConfig(t, Test, testYAML)

	cfg, err := LoadConfigFrom(Test, dir)
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 4*time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 200*time.Millisecond, cfg.Database.SlowThreshold)
	assert.Equal(t, []string{"usd", "npr"}, cfg.Payment.SupportedCurrencies)
	assert.Equal(t, "0.02", cfg.Payment.ServiceFeeRate)
	assert.Equal(t, "1", cfg.Settlement.ExchangeRate)
	assert.Equal(t, 15*time.Minute, cfg.Settlement.StuckAfter)
	assert.Equal(t, 3*time.Minute, cfg.Settlement.TransferTimeout)
	assert.Equal(t, time.Minute, cfg.Settlement.QueueTimeout)
	assert.Equal(t, "@every 1m", cfg.Scheduler.WalletRefresh)
	assert.Equal(t, "@every 5m", cfg.Scheduler.StuckReport)
	assert.Equal(t, 2*time.Minute, cfg.Chain.ReceiptTimeout)
	assert.Equal(t, uint64(100000), cfg.Chain.GasLimit)
}

func TestLoadConfigFrom_SecretsFromEnvironment(t *testing.T) {
	dir := writeConfig(t, Test, testYAML)
	t.Setenv("NP_DB_PASSWORD", "s3cret")
	t.Setenv("NP_STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("NP_CHAIN_PRIVATE_KEY", "0xabc")
	t.Setenv("NP_ADMIN_API_KEY", "admin-key")
	t.Setenv("NP_DB_PORT", "6543")

	cfg, err := LoadConfigFrom(Test, dir)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "sk_test_123", cfg.Stripe.SecretKey)
	assert.Equal(t, "0xabc", cfg.Chain.PrivateKey)
	assert.Equal(t, "admin-key", cfg.Admin.APIKey)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestLoadConfigFrom_MissingFile(t *testing.T) {
	_, err := LoadConfigFrom(Production, t.TempDir())
	assert.Error(t, err)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("NP_ENV", "")
	assert.Equal(t, Development, getEnvironment())

	t.Setenv("NP_ENV", "PRODUCTION")
	assert.Equal(t, Production, getEnvironment())
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("NP_TEST_INT", "42")
	assert.Equal(t, 42, getEnvInt("NP_TEST_INT", 1))

	t.Setenv("NP_TEST_INT", "forty-two")
	assert.Equal(t, 1, getEnvInt("NP_TEST_INT", 1))
}
