package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nepalipay/settlement-service/internal/domain/entity"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/domain/usecase/payment"
	"github.com/nepalipay/settlement-service/internal/domain/usecase/settlement"
	"github.com/nepalipay/settlement-service/internal/domain/usecase/wallet"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/dto"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/handler"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/middleware"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/routes"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/blockchain"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/database"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/logger"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/metrics"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/payment/stripe"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/scheduler"
	timeProvider "github.com/nepalipay/settlement-service/internal/infrastructure/adapter/time"
	"github.com/nepalipay/settlement-service/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	fees, exchangeRate, err := parsePricing(cfg)
	if err != nil {
		log.Fatalf("Invalid pricing configuration: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logger.Options{
		Production: cfg.Environment == config.Production,
		Level:      coreport.ParseLogLevel(cfg.Logger.Level),
		Service:    cfg.Logger.Service,
	})
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()
	recorder := metrics.NewPrometheusRecorder()

	// Database
	dbManager := database.NewManager(&database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		SlowThreshold:   cfg.Database.SlowThreshold,
		LogLevel:        cfg.Database.LogLevel,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
		MonitorInterval: cfg.Database.MonitorInterval,
	}, appLogger, tp, recorder)

	startupCtx := context.Background()
	if _, err := dbManager.Connect(startupCtx); err != nil {
		fatal(appLogger, "Failed to connect to database", err)
	}
	defer func() { _ = dbManager.Close() }()

	if err := dbManager.Migrate(startupCtx); err != nil {
		fatal(appLogger, "Failed to run migrations", err)
	}

	repos := dbManager.Repositories()
	uow := dbManager.CreateUnitOfWork()

	// Payment processor
	gateway, err := stripe.NewGateway(stripe.Config{
		SecretKey:         cfg.Stripe.SecretKey,
		WebhookSecret:     cfg.Stripe.WebhookSecret,
		APIURL:            cfg.Stripe.APIURL,
		Timeout:           cfg.Stripe.Timeout,
		MaxNetworkRetries: cfg.Stripe.MaxNetworkRetries,
		WebhookTolerance:  cfg.Stripe.WebhookTolerance,
	}, appLogger)
	if err != nil {
		fatal(appLogger, "Failed to configure payment processor", err)
	}

	// Chain
	dialCtx, cancelDial := context.WithTimeout(startupCtx, cfg.Chain.DialTimeout)
	chainClient, err := blockchain.Dial(dialCtx, blockchain.Config{
		RPCURL:              cfg.Chain.RPCURL,
		PrivateKey:          cfg.Chain.PrivateKey,
		TokenAddress:        cfg.Chain.TokenAddress,
		ChainID:             cfg.Chain.ChainID,
		TokenDecimals:       cfg.Chain.TokenDecimals,
		GasLimit:            cfg.Chain.GasLimit,
		MaxGasPrice:         cfg.Chain.MaxGasPriceWei,
		ReceiptPollInterval: cfg.Chain.ReceiptPollInterval,
		ReceiptTimeout:      cfg.Chain.ReceiptTimeout,
	}, appLogger)
	cancelDial()
	if err != nil {
		fatal(appLogger, "Failed to connect to chain", err)
	}
	defer chainClient.Close()

	// Use cases
	transfers := settlement.NewTransferQueue(appLogger, chainClient.TransferTokens, cfg.Settlement.QueueCapacity, cfg.Settlement.TransferTimeout)

	settlementService := settlement.NewService(
		repos.Purchases,
		repos.Transactions,
		gateway,
		transfers,
		chainClient,
		tp,
		appLogger,
		recorder,
		settlement.Config{
			ExchangeRate:    exchangeRate,
			QueueTimeout:    cfg.Settlement.QueueTimeout,
			PersistAttempts: cfg.Settlement.PersistAttempts,
			PersistBackoff:  cfg.Settlement.PersistBackoff,
			StuckAfter:      cfg.Settlement.StuckAfter,
			StuckScanLimit:  cfg.Settlement.StuckScanLimit,
		},
	)

	paymentService := payment.NewService(
		uow,
		repos.Purchases,
		repos.Users,
		repos.Wallets,
		gateway,
		payment.Config{
			DefaultCurrency:     cfg.Payment.DefaultCurrency,
			SupportedCurrencies: cfg.Payment.SupportedCurrencies,
			MinAmountCents:      cfg.Payment.MinAmountCents,
			MaxAmountCents:      cfg.Payment.MaxAmountCents,
			Fees:                fees,
		},
		tp,
		appLogger,
		recorder,
	)

	walletService := wallet.NewService(chainClient, repos.Wallets, tp, appLogger, recorder, cfg.Chain.BalanceCacheTTL)

	// HTTP
	if err := dto.RegisterValidators(); err != nil {
		fatal(appLogger, "Failed to register request validators", err)
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL, tp, appLogger)
	}

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp, recorder, cfg.Server.AllowedOrigins)
	routes.SetupRoutes(router, routes.Handlers{
		Payment: handler.NewPaymentHandler(paymentService, settlementService, appLogger),
		Webhook: handler.NewWebhookHandler(settlementService, appLogger),
		Admin:   handler.NewAdminHandler(settlementService, appLogger),
		Wallet:  handler.NewWalletHandler(walletService, appLogger),
		Health:  handler.NewHealthHandler(dbManager, appLogger),
	}, routes.Options{
		AdminAPIKey:    cfg.Admin.APIKey,
		RateLimiter:    rateLimiter,
		MetricsHandler: recorder.Handler(),
		Logger:         appLogger,
	})

	// Background jobs
	jobs := scheduler.New(appLogger, tp, cfg.Scheduler.JobTimeout)
	if cfg.Scheduler.Enabled {
		registerJobs(jobs, cfg, appLogger, walletService, settlementService, rateLimiter)
		jobs.Start()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(appLogger, "Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop taking requests first so no new settlement reaches the transfer queue
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}

	if err := jobs.Stop(ctx); err != nil {
		appLogger.Warn("Background jobs did not stop in time", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Draining transfer queue...", nil)
	transfers.Shutdown()

	appLogger.Info("Server exited gracefully", nil)
}

func registerJobs(
	jobs *scheduler.Scheduler,
	cfg *config.Config,
	appLogger coreport.Logger,
	wallets *wallet.Service,
	settlements *settlement.Service,
	rateLimiter *middleware.RateLimiter,
) {
	list := []scheduler.Job{
		{
			Name: "wallet-refresh",
			Spec: cfg.Scheduler.WalletRefresh,
			Run: func(ctx context.Context) error {
				_, err := wallets.RefreshBalances(ctx)
				return err
			},
		},
		{
			Name: "stuck-settlement-report",
			Spec: cfg.Scheduler.StuckReport,
			Run: func(ctx context.Context) error {
				_, err := settlements.ReportStuckSettlements(ctx)
				return err
			},
		},
	}
	if rateLimiter != nil {
		list = append(list, scheduler.Job{
			Name: "rate-limit-sweep",
			Spec: fmt.Sprintf("@every %s", cfg.RateLimit.IdleTTL),
			Run: func(context.Context) error {
				rateLimiter.Sweep()
				return nil
			},
		})
	}

	for _, job := range list {
		if err := jobs.Register(job); err != nil {
			fatal(appLogger, "Failed to schedule background job", err)
		}
	}
}

// parsePricing turns the decimal strings of the pricing configuration into a fee schedule
func parsePricing(cfg *config.Config) (entity.FeeSchedule, decimal.Decimal, error) {
	rate, err := decimal.NewFromString(cfg.Settlement.ExchangeRate)
	if err != nil || !rate.IsPositive() {
		return entity.FeeSchedule{}, decimal.Zero, fmt.Errorf("settlement.exchangeRate must be a positive decimal, got %q", cfg.Settlement.ExchangeRate)
	}
	gasFee, err := decimal.NewFromString(cfg.Payment.GasFee)
	if err != nil || gasFee.IsNegative() {
		return entity.FeeSchedule{}, decimal.Zero, fmt.Errorf("payment.gasFee must be a non-negative decimal, got %q", cfg.Payment.GasFee)
	}
	serviceFeeRate, err := decimal.NewFromString(cfg.Payment.ServiceFeeRate)
	if err != nil || serviceFeeRate.IsNegative() || serviceFeeRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return entity.FeeSchedule{}, decimal.Zero, fmt.Errorf("payment.serviceFeeRate must be in [0, 1), got %q", cfg.Payment.ServiceFeeRate)
	}

	return entity.FeeSchedule{
		ExchangeRate:   rate,
		GasFee:         gasFee,
		ServiceFeeRate: serviceFeeRate,
	}, rate, nil
}

func fatal(appLogger coreport.Logger, msg string, err error) {
	appLogger.Error(msg, map[string]any{"error": err.Error()})
	_ = appLogger.Flush()
	os.Exit(1)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or NP_DB_HOST)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or NP_DB_USERNAME)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or NP_DB_NAME)")
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Stripe.SecretKey == "" {
		missingConfigs = append(missingConfigs, "stripe.secretKey (or NP_STRIPE_SECRET_KEY)")
	}
	if cfg.Stripe.WebhookSecret == "" {
		missingConfigs = append(missingConfigs, "stripe.webhookSecret (or NP_STRIPE_WEBHOOK_SECRET)")
	}

	if cfg.Chain.RPCURL == "" {
		missingConfigs = append(missingConfigs, "chain.rpcURL (or NP_CHAIN_RPC_URL)")
	}
	if cfg.Chain.PrivateKey == "" {
		missingConfigs = append(missingConfigs, "chain.privateKey (or NP_CHAIN_PRIVATE_KEY)")
	}
	if cfg.Chain.TokenAddress == "" {
		missingConfigs = append(missingConfigs, "chain.tokenAddress (or NP_CHAIN_TOKEN_ADDRESS)")
	}
	if cfg.Chain.DialTimeout == 0 {
		missingConfigs = append(missingConfigs, "chain.dialTimeout")
	}

	if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.Environment == config.Production {
		var warnings []string

		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
		if cfg.Admin.APIKey == "" {
			warnings = append(warnings, "admin.apiKey is empty, operator endpoints are disabled")
		}
		if cfg.Server.WriteTimeout < cfg.Chain.ReceiptTimeout {
			warnings = append(warnings, "server.writeTimeout is shorter than chain.receiptTimeout, confirm requests may be cut off")
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential issues in production configuration: %v", warnings)
		}
	}

	return nil
}
