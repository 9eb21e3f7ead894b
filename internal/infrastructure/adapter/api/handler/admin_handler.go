package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/domain/port/usecase"
)

// AdminHandler serves operator actions
type AdminHandler struct {
	settlement usecase.SettlementUseCase
	logger     coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(settlement usecase.SettlementUseCase, logger coreport.Logger) *AdminHandler {
	return &AdminHandler{
		settlement: settlement,
		logger:     logger,
	}
}

// RetryTransfer handles POST /api/admin/payments/:id/retry
func (h *AdminHandler) RetryTransfer(c *gin.Context) {
	intentID := c.Param("id")
	h.logger.Info("Operator retry requested", map[string]any{
		"intent_id": intentID,
		"client_ip": c.ClientIP(),
	})

	result, err := h.settlement.RetryTransfer(c.Request.Context(), intentID)
	if err != nil {
		respondError(c, h.logger, "retry_transfer", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
