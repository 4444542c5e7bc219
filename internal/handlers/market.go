// internal/handlers/market.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agridex/market-gateway/internal/errkind"
	"github.com/agridex/market-gateway/internal/models"
	"github.com/agridex/market-gateway/internal/services"
	"github.com/agridex/market-gateway/internal/utils"
)

type MarketHandler struct {
	market        *services.MarketService
	notifications *services.NotificationService
}

func NewMarketHandler(market *services.MarketService, notifications *services.NotificationService) *MarketHandler {
	return &MarketHandler{
		market:        market,
		notifications: notifications,
	}
}

// POST /wallet/connect
func (h *MarketHandler) Connect(c *gin.Context) {
	if err := h.market.Connect(c.Request.Context()); err != nil {
		respondActionError(c, err)
		return
	}
	utils.SuccessResponse(c, h.market.State())
}

// GET /wallet/status
func (h *MarketHandler) Status(c *gin.Context) {
	state := h.market.State()
	utils.SuccessResponse(c, gin.H{
		"wallet_address": state.WalletAddress,
		"connected":      state.Connected,
		"is_connecting":  state.IsConnecting,
	})
}

// GET /products
func (h *MarketHandler) GetProducts(c *gin.Context) {
	state := h.market.State()
	utils.SuccessResponseWithMeta(c, state.Products, gin.H{
		"is_loading": state.IsLoading,
		"count":      len(state.Products),
	})
}

// POST /products/refresh
func (h *MarketHandler) RefreshProducts(c *gin.Context) {
	if err := h.market.LoadProducts(c.Request.Context()); err != nil {
		respondActionError(c, err)
		return
	}
	state := h.market.State()
	utils.SuccessResponse(c, state.Products)
}

// GET /products/:id
func (h *MarketHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.BadRequestResponse(c, "Missing product ID", nil)
		return
	}

	product, err := h.market.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondActionError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// POST /products
func (h *MarketHandler) RegisterProduct(c *gin.Context) {
	var draft models.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&draft)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}
	if _, err := draft.Coin(); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	result, err := h.market.RegisterProduct(c.Request.Context(), draft)
	if err != nil {
		respondActionError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{
		"message": "product registered",
		"tx":      result,
	})
}

type buyRequest struct {
	Quantity uint64 `json:"quantity" validate:"required,min=1"`
}

// POST /products/:id/buy
func (h *MarketHandler) BuyProduct(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.BadRequestResponse(c, "Missing product ID", nil)
		return
	}

	var req buyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.market.BuyProduct(c.Request.Context(), id, req.Quantity)
	if err != nil {
		respondActionError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": "purchase confirmed",
		"tx":      result,
	})
}

// GET /notifications
func (h *MarketHandler) GetNotifications(c *gin.Context) {
	utils.SuccessResponse(c, h.notifications.Recent())
}

// respondActionError maps the closed error kinds onto HTTP statuses. The
// controller has already notified and logged; this only shapes the reply.
func respondActionError(c *gin.Context, err error) {
	kind := errkind.KindOf(err)
	switch kind {
	case errkind.WalletUnavailable:
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "WALLET_UNAVAILABLE", err.Error(), nil)
	case errkind.ConnectionError:
		utils.ErrorResponse(c, http.StatusBadGateway, "CONNECTION_ERROR", err.Error(), nil)
	case errkind.NotConnected:
		utils.ConflictResponse(c, err.Error())
	case errkind.QueryError:
		utils.ErrorResponse(c, http.StatusBadGateway, "QUERY_ERROR", err.Error(), nil)
	case errkind.ExecutionError:
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "EXECUTION_ERROR", err.Error(), nil)
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
