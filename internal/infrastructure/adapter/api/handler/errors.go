package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/dto"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/middleware"
)

// errorStatus maps a domain error to its HTTP status
func errorStatus(err error) int {
	switch {
	case errs.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidSignature), errs.IsValidationError(err):
		return http.StatusBadRequest
	case errs.IsConflictError(err):
		return http.StatusConflict
	case errs.IsUpstreamError(err):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the {code, message} body for err. Server-side failures are
// logged with the typed error's fields and never echo internal details to the client.
func respondError(c *gin.Context, logger coreport.Logger, operation string, err error) {
	status := errorStatus(err)

	fields := map[string]any{
		"operation":  operation,
		"status":     status,
		"error":      err.Error(),
		"request_id": middleware.RequestID(c),
	}
	var lf interface{ LogFields() map[string]any }
	if errors.As(err, &lf) {
		for k, v := range lf.LogFields() {
			fields[k] = v
		}
	}

	message := err.Error()
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		logger.Error("Request failed", fields)
		message = http.StatusText(status)
	} else {
		logger.Warn("Request rejected", fields)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: message,
	})
}

// bindError reports a request body that failed to decode or validate
func bindError(c *gin.Context, logger coreport.Logger, operation string, err error) {
	respondError(c, logger, operation, errors.Join(errs.ErrInvalidRequest, err))
}
