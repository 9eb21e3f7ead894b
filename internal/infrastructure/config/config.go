package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Logger      LoggerConfig     `mapstructure:"logger"`
	Payment     PaymentConfig    `mapstructure:"payment"`
	Stripe      StripeConfig     `mapstructure:"stripe"`
	Chain       ChainConfig      `mapstructure:"chain"`
	Settlement  SettlementConfig `mapstructure:"settlement"`
	Scheduler   SchedulerConfig  `mapstructure:"scheduler"`
	RateLimit   RateLimitConfig  `mapstructure:"rateLimit"`
	Admin       AdminConfig      `mapstructure:"admin"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`
	AllowedOrigins    []string      `mapstructure:"allowedOrigins"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"`
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`
	SlowThreshold   time.Duration `mapstructure:"slowThreshold"`
	LogLevel        string        `mapstructure:"logLevel"`
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"`
	MonitorInterval time.Duration `mapstructure:"monitorInterval"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level   string `mapstructure:"level"`
	Service string `mapstructure:"service"`
}

// PaymentConfig contains purchase limits and pricing.
// Decimal values are strings so they are never rounded through float64.
type PaymentConfig struct {
	DefaultCurrency     string   `mapstructure:"defaultCurrency"`
	SupportedCurrencies []string `mapstructure:"supportedCurrencies"`
	MinAmountCents      int64    `mapstructure:"minAmountCents"`
	MaxAmountCents      int64    `mapstructure:"maxAmountCents"`
	GasFee              string   `mapstructure:"gasFee"`
	ServiceFeeRate      string   `mapstructure:"serviceFeeRate"`
}

// StripeConfig contains payment processor credentials
type StripeConfig struct {
	SecretKey         string        `mapstructure:"secretKey"`
	WebhookSecret     string        `mapstructure:"webhookSecret"`
	APIURL            string        `mapstructure:"apiURL"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxNetworkRetries int64         `mapstructure:"maxNetworkRetries"`
	WebhookTolerance  time.Duration `mapstructure:"webhookTolerance"`
}

// ChainConfig contains the RPC endpoint, token contract and hot wallet key
type ChainConfig struct {
	RPCURL              string        `mapstructure:"rpcURL"`
	PrivateKey          string        `mapstructure:"privateKey"`
	TokenAddress        string        `mapstructure:"tokenAddress"`
	ChainID             int64         `mapstructure:"chainID"`
	TokenDecimals       int32         `mapstructure:"tokenDecimals"`
	GasLimit            uint64        `mapstructure:"gasLimit"`
	MaxGasPriceWei      string        `mapstructure:"maxGasPriceWei"`
	ReceiptPollInterval time.Duration `mapstructure:"receiptPollInterval"`
	ReceiptTimeout      time.Duration `mapstructure:"receiptTimeout"`
	DialTimeout         time.Duration `mapstructure:"dialTimeout"`
	BalanceCacheTTL     time.Duration `mapstructure:"balanceCacheTTL"`
}

// SettlementConfig contains settlement tuning
type SettlementConfig struct {
	ExchangeRate    string        `mapstructure:"exchangeRate"`
	TransferTimeout time.Duration `mapstructure:"transferTimeout"`
	QueueTimeout    time.Duration `mapstructure:"queueTimeout"`
	QueueCapacity   int           `mapstructure:"queueCapacity"`
	PersistAttempts int           `mapstructure:"persistAttempts"`
	PersistBackoff  time.Duration `mapstructure:"persistBackoff"`
	StuckAfter      time.Duration `mapstructure:"stuckAfter"`
	StuckScanLimit  int           `mapstructure:"stuckScanLimit"`
}

// SchedulerConfig contains cron specs for background jobs. An empty spec disables the job.
type SchedulerConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	WalletRefresh string        `mapstructure:"walletRefresh"`
	StuckReport   string        `mapstructure:"stuckReport"`
	JobTimeout    time.Duration `mapstructure:"jobTimeout"`
}

// RateLimitConfig limits intent creation per client IP
type RateLimitConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	RequestsPerSecond float64       `mapstructure:"requestsPerSecond"`
	Burst             int           `mapstructure:"burst"`
	IdleTTL           time.Duration `mapstructure:"idleTTL"`
}

// AdminConfig protects operator endpoints
type AdminConfig struct {
	APIKey string `mapstructure:"apiKey"`
}
