package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/handler"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups the HTTP handlers the router serves
type Handlers struct {
	Payment *handler.PaymentHandler
	Webhook *handler.WebhookHandler
	Admin   *handler.AdminHandler
	Wallet  *handler.WalletHandler
	Health  *handler.HealthHandler
}

// Options holds the route-level guards
type Options struct {
	AdminAPIKey    string
	RateLimiter    *middleware.RateLimiter // nil disables rate limiting
	MetricsHandler http.Handler            // nil disables /metrics
	Logger         coreport.Logger
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, opts Options) {
	router.GET("/health", h.Health.Health)
	if opts.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	api := router.Group("/api")
	{
		createIntent := []gin.HandlerFunc{h.Payment.CreatePaymentIntent}
		if opts.RateLimiter != nil {
			createIntent = append([]gin.HandlerFunc{opts.RateLimiter.Handler()}, createIntent...)
		}
		api.POST("/create-payment-intent", createIntent...)

		api.GET("/payment/:id", h.Payment.GetPaymentStatus)
		api.POST("/payment/:id/confirm", h.Payment.ConfirmPayment)

		api.POST("/webhooks/stripe", h.Webhook.HandleStripe)

		api.GET("/wallet/hot-balance", h.Wallet.GetHotWalletBalance)
		api.GET("/wallet/:address/token-balance", h.Wallet.GetTokenBalance)
	}

	admin := api.Group("/admin", middleware.AdminKey(opts.AdminAPIKey, opts.Logger))
	{
		admin.POST("/payments/:id/retry", h.Admin.RetryTransfer)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(
	router *gin.Engine,
	logger coreport.Logger,
	timeProvider coreport.TimeProvider,
	metrics coreport.MetricsRecorder,
	allowedOrigins []string,
) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.Metrics(metrics, timeProvider))
	router.Use(middleware.CORS(allowedOrigins))
}
