package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/dto"
)

// AdminKeyHeader carries the operator key
const AdminKeyHeader = "X-Admin-Key"

// AdminKey guards operator endpoints with a static key. An empty key disables them entirely.
func AdminKey(key string, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(AdminKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			logger.Warn("Rejected operator request", map[string]any{
				"path":       c.Request.URL.Path,
				"client_ip":  c.ClientIP(),
				"request_id": RequestID(c),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    errs.ErrorCode(errs.ErrUnauthorized),
				Message: errs.ErrUnauthorized.Error(),
			})
			return
		}
		c.Next()
	}
}
