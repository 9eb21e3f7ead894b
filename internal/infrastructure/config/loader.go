package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "NP"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// LoadConfig loads configuration from configs/<env>.yaml, then applies .env and NP_* overrides
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	return LoadConfigFrom(getEnvironment(), ConfigPaths...)
}

// LoadConfigFrom reads <env>.yaml from the given directories
func LoadConfigFrom(env string, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.Environment = env

	return &config, nil
}

// loadDotEnvFile loads the first .env file found in DotEnvPaths
func loadDotEnvFile() error {
	var lastError error
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "15s")
	v.SetDefault("server.writeTimeout", "4m") // confirm waits for the on-chain receipt
	v.SetDefault("server.idleTimeout", "60s")
	v.SetDefault("server.readHeaderTimeout", "10s")
	v.SetDefault("server.shutdownTimeout", "30s")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", "30m")
	v.SetDefault("database.connMaxIdleTime", "15m")
	v.SetDefault("database.queryTimeout", "10s")
	v.SetDefault("database.slowThreshold", "200ms")
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", "2s")
	v.SetDefault("database.monitorInterval", "30s")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.service", "settlement-service")

	v.SetDefault("payment.defaultCurrency", "usd")
	v.SetDefault("payment.supportedCurrencies", []string{"usd"})
	v.SetDefault("payment.minAmountCents", 50)
	v.SetDefault("payment.maxAmountCents", 1000000)
	v.SetDefault("payment.gasFee", "0")
	v.SetDefault("payment.serviceFeeRate", "0.02")

	v.SetDefault("stripe.timeout", "30s")
	v.SetDefault("stripe.maxNetworkRetries", 2)
	v.SetDefault("stripe.webhookTolerance", "5m")

	v.SetDefault("chain.gasLimit", 100000)
	v.SetDefault("chain.receiptPollInterval", "3s")
	v.SetDefault("chain.receiptTimeout", "2m")
	v.SetDefault("chain.dialTimeout", "10s")
	v.SetDefault("chain.balanceCacheTTL", "15s")

	v.SetDefault("settlement.exchangeRate", "1")
	v.SetDefault("settlement.transferTimeout", "3m")
	v.SetDefault("settlement.queueTimeout", "1m")
	v.SetDefault("settlement.queueCapacity", 100)
	v.SetDefault("settlement.persistAttempts", 5)
	v.SetDefault("settlement.persistBackoff", "200ms")
	v.SetDefault("settlement.stuckAfter", "15m")
	v.SetDefault("settlement.stuckScanLimit", 100)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.walletRefresh", "@every 10m")
	v.SetDefault("scheduler.stuckReport", "@every 5m")
	v.SetDefault("scheduler.jobTimeout", "5m")

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerSecond", 1)
	v.SetDefault("rateLimit.burst", 5)
	v.SetDefault("rateLimit.idleTTL", "10m")
}

// getEnvironment determines the environment from NP_ENV, defaulting to development
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides applies the NP_* variables that do not follow the key path naming,
// mostly secrets that must never be committed to a config file
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"NP_DB_HOST":               "database.host",
		"NP_DB_USERNAME":           "database.username",
		"NP_DB_PASSWORD":           "database.password",
		"NP_DB_NAME":               "database.database",
		"NP_DB_SSL_MODE":           "database.sslMode",
		"NP_SERVER_HOST":           "server.host",
		"NP_LOGGER_LEVEL":          "logger.level",
		"NP_STRIPE_SECRET_KEY":     "stripe.secretKey",
		"NP_STRIPE_WEBHOOK_SECRET": "stripe.webhookSecret",
		"NP_CHAIN_RPC_URL":         "chain.rpcURL",
		"NP_CHAIN_PRIVATE_KEY":     "chain.privateKey",
		"NP_CHAIN_TOKEN_ADDRESS":   "chain.tokenAddress",
		"NP_ADMIN_API_KEY":         "admin.apiKey",
		"NP_EXCHANGE_RATE":         "settlement.exchangeRate",
	}
	for env, key := range stringOverrides {
		if value := os.Getenv(env); value != "" {
			v.Set(key, value)
		}
	}

	if port := getEnvInt("NP_DB_PORT", 0); port > 0 {
		v.Set("database.port", port)
	}
	if port := getEnvInt("NP_SERVER_PORT", 0); port > 0 {
		v.Set("server.port", port)
	}
	if maxOpenConns := getEnvInt("NP_DB_MAX_OPEN_CONNS", 0); maxOpenConns > 0 {
		v.Set("database.maxOpenConns", maxOpenConns)
	}
	if chainID := getEnvInt("NP_CHAIN_ID", 0); chainID > 0 {
		v.Set("chain.chainID", chainID)
	}
}

// getEnvInt reads an integer environment variable, falling back to defaultVal
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}
