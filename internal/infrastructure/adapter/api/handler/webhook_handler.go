package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/nepalipay/settlement-service/internal/domain/error"
	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/domain/port/usecase"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/dto"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/middleware"
)

// StripeSignatureHeader carries the webhook signature
const StripeSignatureHeader = "Stripe-Signature"

// maxWebhookBody matches the payload cap Stripe documents for events
const maxWebhookBody = 65536

// WebhookHandler receives payment processor notifications
type WebhookHandler struct {
	settlement usecase.SettlementUseCase
	logger     coreport.Logger
}

// NewWebhookHandler creates a new webhook handler instance
func NewWebhookHandler(settlement usecase.SettlementUseCase, logger coreport.Logger) *WebhookHandler {
	return &WebhookHandler{
		settlement: settlement,
		logger:     logger,
	}
}

// HandleStripe handles POST /api/webhooks/stripe. Any non-2xx answer makes Stripe
// redeliver, so events that can never apply are acknowledged.
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		respondError(c, h.logger, "webhook", errors.Join(errs.ErrInvalidRequest, err))
		return
	}

	err = h.settlement.HandleWebhook(c.Request.Context(), payload, c.GetHeader(StripeSignatureHeader))
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrInvalidSignature), errs.IsValidationError(err):
		respondError(c, h.logger, "webhook", err)
		return
	case errs.IsConflictError(err):
		h.logger.Warn("Webhook acknowledged without effect", map[string]any{
			"error":      err.Error(),
			"request_id": middleware.RequestID(c),
		})
	default:
		respondError(c, h.logger, "webhook", err)
		return
	}

	c.JSON(http.StatusOK, dto.WebhookAck{Received: true})
}
