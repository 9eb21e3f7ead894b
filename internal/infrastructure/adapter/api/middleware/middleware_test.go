package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/database"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/logger"
	realtime "github.com/nepalipay/settlement-service/internal/infrastructure/adapter/time"
	mockcore "github.com/nepalipay/settlement-service/mocks/port/core"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func TestRateLimiter(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Rejects requests over the burst", func(t *testing.T) {
		mockTime := mockcore.NewMockTimeProvider(t)
		mockTime.On("Now").Return(t0)

		rl := NewRateLimiter(1, 2, time.Minute, mockTime, logger.NewNoopLogger())
		router := newTestRouter()
		router.POST("/intent", rl.Handler(), ok)

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodPost, "/intent", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			assert.Equal(t, http.StatusOK, serve(router, req).Code)
		}

		req := httptest.NewRequest(http.MethodPost, "/intent", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := serve(router, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), `"code":4290`)

		other := httptest.NewRequest(http.MethodPost, "/intent", nil)
		other.RemoteAddr = "10.0.0.2:1234"
		assert.Equal(t, http.StatusOK, serve(router, other).Code)
	})

	t.Run("Refills over time", func(t *testing.T) {
		mockTime := mockcore.NewMockTimeProvider(t)
		mockTime.On("Now").Return(t0).Times(2)
		mockTime.On("Now").Return(t0.Add(time.Second))

		rl := NewRateLimiter(1, 1, time.Minute, mockTime, logger.NewNoopLogger())

		assert.True(t, rl.allow("a"))
		assert.False(t, rl.allow("a"))
		assert.True(t, rl.allow("a"))
	})

	t.Run("Sweep forgets idle clients", func(t *testing.T) {
		mockTime := mockcore.NewMockTimeProvider(t)
		mockTime.On("Now").Return(t0).Once()
		mockTime.On("Now").Return(t0.Add(5 * time.Minute)).Once()
		mockTime.On("Now").Return(t0.Add(11 * time.Minute))

		rl := NewRateLimiter(1, 1, 10*time.Minute, mockTime, logger.NewNoopLogger())
		rl.allow("idle")
		rl.allow("recent")

		assert.Equal(t, 1, rl.Sweep())
		_, kept := rl.limiters["recent"]
		assert.True(t, kept)
	})
}

func TestAdminKey(t *testing.T) {
	cases := []struct {
		name   string
		key    string
		header string
		status int
	}{
		{"Matching key", "s3cret", "s3cret", http.StatusOK},
		{"Wrong key", "s3cret", "guess", http.StatusUnauthorized},
		{"Missing header", "s3cret", "", http.StatusUnauthorized},
		{"No key configured", "", "", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter()
			router.POST("/admin", AdminKey(tc.key, logger.NewNoopLogger()), ok)

			req := httptest.NewRequest(http.MethodPost, "/admin", nil)
			if tc.header != "" {
				req.Header.Set(AdminKeyHeader, tc.header)
			}
			assert.Equal(t, tc.status, serve(router, req).Code)
		})
	}
}

func TestCORS(t *testing.T) {
	router := newTestRouter()
	router.Use(CORS([]string{"https://app.nepalipay.test"}))
	router.GET("/api/payment/:id", ok)

	t.Run("Preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/payment/pi_1", nil)
		req.Header.Set("Origin", "https://app.nepalipay.test")

		w := serve(router, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://app.nepalipay.test", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Unknown origin gets no CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/payment/pi_1", nil)
		req.Header.Set("Origin", "https://evil.test")

		w := serve(router, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Wildcard", func(t *testing.T) {
		r := newTestRouter()
		r.Use(CORS([]string{"*"}))
		r.GET("/x", ok)

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		assert.Equal(t, "http://localhost:3000", serve(r, req).Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestLogger(t *testing.T) {
	t.Run("Assigns and propagates a request id", func(t *testing.T) {
		mockLogger := mockcore.NewMockLogger(t)
		mockLogger.On("Info", "Request processed", mock.MatchedBy(func(f map[string]any) bool {
			return f["route"] == "/ping" && f["status"] == http.StatusOK && f["request_id"] != ""
		})).Once()

		var seen string
		router := newTestRouter()
		router.Use(Logger(mockLogger, realtime.NewRealTimeProvider()))
		router.GET("/ping", func(c *gin.Context) {
			seen = database.RequestIDFromContext(c.Request.Context())
			c.Status(http.StatusOK)
		})

		w := serve(router, httptest.NewRequest(http.MethodGet, "/ping", nil))
		id := w.Header().Get(RequestIDHeader)
		require.NotEmpty(t, id)
		assert.Equal(t, id, seen)
	})

	t.Run("Keeps the caller's id and warns on 4xx", func(t *testing.T) {
		mockLogger := mockcore.NewMockLogger(t)
		mockLogger.On("Warn", "Request rejected", mock.MatchedBy(func(f map[string]any) bool {
			return f["request_id"] == "req-42" && f["status"] == http.StatusNotFound
		})).Once()

		router := newTestRouter()
		router.Use(Logger(mockLogger, realtime.NewRealTimeProvider()))
		router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		assert.Equal(t, "req-42", serve(router, req).Header().Get(RequestIDHeader))
	})
}

func TestErrorHandler(t *testing.T) {
	mockLogger := mockcore.NewMockLogger(t)
	mockLogger.On("Error", "Panic recovered in API request", mock.MatchedBy(func(f map[string]any) bool {
		return f["error"] == "boom" && f["path"] == "/panic"
	})).Once()

	router := newTestRouter()
	router.Use(ErrorHandler(mockLogger))
	router.GET("/panic", func(*gin.Context) { panic("boom") })

	w := serve(router, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":5000`)
}

func TestMetrics(t *testing.T) {
	recorder := mockcore.NewMockMetricsRecorder(t)
	recorder.On("HTTPRequest", http.MethodGet, "/api/payment/:id", http.StatusOK, mock.AnythingOfType("time.Duration")).Once()
	recorder.On("HTTPRequest", http.MethodGet, "unmatched", http.StatusNotFound, mock.AnythingOfType("time.Duration")).Once()

	router := newTestRouter()
	router.Use(Metrics(recorder, realtime.NewRealTimeProvider()))
	router.GET("/api/payment/:id", ok)

	serve(router, httptest.NewRequest(http.MethodGet, "/api/payment/pi_1", nil))
	serve(router, httptest.NewRequest(http.MethodGet, "/nope", nil))
}
