package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/domain/port/usecase"
	"github.com/nepalipay/settlement-service/internal/infrastructure/adapter/api/dto"
)

// PaymentHandler handles payment intent and purchase status requests
type PaymentHandler struct {
	payments   usecase.PaymentUseCase
	settlement usecase.SettlementUseCase
	logger     coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(payments usecase.PaymentUseCase, settlement usecase.SettlementUseCase, logger coreport.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments:   payments,
		settlement: settlement,
		logger:     logger,
	}
}

// CreatePaymentIntent handles POST /api/create-payment-intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req dto.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.logger, "create_payment_intent", err)
		return
	}

	result, err := h.payments.CreatePaymentIntent(c.Request.Context(), req.ToUseCase())
	if err != nil {
		respondError(c, h.logger, "create_payment_intent", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCreatePaymentIntentResponse(result))
}

// GetPaymentStatus handles GET /api/payment/:id
func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
	status, err := h.payments.GetPaymentStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get_payment_status", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaymentStatusResponse(status))
}

// ConfirmPayment handles POST /api/payment/:id/confirm.
// A failed transfer is a 200 with success=false; the purchase carries the error.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	result, err := h.settlement.ConfirmPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "confirm_payment", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
