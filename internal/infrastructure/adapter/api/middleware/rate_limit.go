package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/dto"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	idleTTL  time.Duration

	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewRateLimiter creates a limiter allowing requestsPerSecond with the given burst per IP.
// Clients idle for longer than idleTTL are forgotten on the next sweep.
func NewRateLimiter(requestsPerSecond float64, burst int, idleTTL time.Duration, timeProvider coreport.TimeProvider, logger coreport.Logger) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters:     make(map[string]*clientLimiter),
		rate:         rate.Limit(requestsPerSecond),
		burst:        burst,
		idleTTL:      idleTTL,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (rl *RateLimiter) allow(key string) bool {
	now := rl.timeProvider.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// Sweep drops limiters of clients idle for longer than the TTL and returns how many remain
func (rl *RateLimiter) Sweep() int {
	cutoff := rl.timeProvider.Now().Add(-rl.idleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, cl := range rl.limiters {
		if cl.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
	return len(rl.limiters)
}

// Handler rejects requests over budget with 429
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if rl.allow(key) {
			c.Next()
			return
		}

		rl.logger.Warn("Rate limit exceeded", map[string]any{
			"client_ip":  key,
			"path":       c.Request.URL.Path,
			"request_id": RequestID(c),
		})
		c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
			Code:    errs.ErrorCode(errs.ErrRateLimited),
			Message: errs.ErrRateLimited.Error(),
		})
	}
}
