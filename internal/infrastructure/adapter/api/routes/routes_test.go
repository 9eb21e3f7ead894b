package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nepalipay/settlement-service/internal/domain/port/usecase"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/dto"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/handler"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/middleware"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/logger"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/metrics"
	realtime "github.com/nepalipay/settlement-service/internal/infrastructure/adapter/time"
	mockusecase "github.com/nepalipay/settlement-service/mocks/port/usecase"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type fixture struct {
	router     *gin.Engine
	payments   *mockusecase.MockPaymentUseCase
	settlement *mockusecase.MockSettlementUseCase
	wallets    *mockusecase.MockWalletUseCase
}

var registerOnce sync.Once

func newFixture(t *testing.T) fixture {
	gin.SetMode(gin.TestMode)
	registerOnce.Do(func() { require.NoError(t, dto.RegisterValidators()) })
	log := logger.NewNoopLogger()
	tp := realtime.NewRealTimeProvider()

	f := fixture{
		router:     gin.New(),
		payments:   mockusecase.NewMockPaymentUseCase(t),
		settlement: mockusecase.NewMockSettlementUseCase(t),
		wallets:    mockusecase.NewMockWalletUseCase(t),
	}

	SetupMiddlewares(f.router, log, tp, metrics.NewNoopRecorder(), []string{"*"})
	SetupRoutes(f.router, Handlers{
		Payment: handler.NewPaymentHandler(f.payments, f.settlement, log),
		Webhook: handler.NewWebhookHandler(f.settlement, log),
		Admin:   handler.NewAdminHandler(f.settlement, log),
		Wallet:  handler.NewWalletHandler(f.wallets, log),
		Health:  handler.NewHealthHandler(okPinger{}, log),
	}, Options{
		AdminAPIKey:    "ops-key",
		RateLimiter:    middleware.NewRateLimiter(0.001, 1, time.Minute, tp, log),
		MetricsHandler: http.NotFoundHandler(),
		Logger:         log,
	})
	return f
}

func (f fixture) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestSetupRoutes(t *testing.T) {
	t.Run("Health", func(t *testing.T) {
		f := newFixture(t)
		w := f.serve(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("Admin retry needs the operator key", func(t *testing.T) {
		f := newFixture(t)
		f.settlement.On("RetryTransfer", mock.Anything, "pi_1").
			Return(&usecase.SettlementResult{IntentID: "pi_1", Success: true, Status: "succeeded", TxHash: "0x1"}, nil).Once()

		assert.Equal(t, http.StatusUnauthorized,
			f.serve(httptest.NewRequest(http.MethodPost, "/api/admin/payments/pi_1/retry", nil)).Code)

		req := httptest.NewRequest(http.MethodPost, "/api/admin/payments/pi_1/retry", nil)
		req.Header.Set(middleware.AdminKeyHeader, "ops-key")
		assert.Equal(t, http.StatusOK, f.serve(req).Code)
	})

	t.Run("Intent creation is rate limited per client", func(t *testing.T) {
		f := newFixture(t)
		f.payments.On("CreatePaymentIntent", mock.Anything, mock.Anything).
			Return(&usecase.CreatePaymentIntentResult{IntentID: "pi_1", ClientSecret: "s"}, nil).Once()

		send := func() int {
			req := httptest.NewRequest(http.MethodPost, "/api/create-payment-intent", bytes.NewBufferString(`{"amount":5000}`))
			req.Header.Set("Content-Type", "application/json")
			req.RemoteAddr = "192.0.2.10:5555"
			return f.serve(req).Code
		}

		assert.Equal(t, http.StatusOK, send())
		assert.Equal(t, http.StatusTooManyRequests, send())
	})

	t.Run("Status lookups are not rate limited", func(t *testing.T) {
		f := newFixture(t)
		f.payments.On("GetPaymentStatus", mock.Anything, "pi_1").
			Return(&usecase.PaymentStatus{ID: "pi_1", Status: "pending"}, nil).Times(3)

		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, f.serve(httptest.NewRequest(http.MethodGet, "/api/payment/pi_1", nil)).Code)
		}
	})
}
