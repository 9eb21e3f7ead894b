package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
	"github.com/nepalipay/settlement-service/internal/domain/port/usecase"
)

// WalletHandler serves on-chain balance lookups
type WalletHandler struct {
	wallets usecase.WalletUseCase
	logger  coreport.Logger
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(wallets usecase.WalletUseCase, logger coreport.Logger) *WalletHandler {
	return &WalletHandler{
		wallets: wallets,
		logger:  logger,
	}
}

// GetHotWalletBalance handles GET /api/wallet/hot-balance
func (h *WalletHandler) GetHotWalletBalance(c *gin.Context) {
	balance, err := h.wallets.GetHotWalletBalance(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "hot_wallet_balance", err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// GetTokenBalance handles GET /api/wallet/:address/token-balance
func (h *WalletHandler) GetTokenBalance(c *gin.Context) {
	balance, err := h.wallets.GetTokenBalance(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, h.logger, "token_balance", err)
		return
	}
	c.JSON(http.StatusOK, balance)
}
