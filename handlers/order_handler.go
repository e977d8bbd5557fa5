package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/FabriBott/asset-token-nexus-platform/models"
	"github.com/FabriBott/asset-token-nexus-platform/service"
	"github.com/FabriBott/asset-token-nexus-platform/utils"
)

type OrderHandler struct {
	Service   *service.MarketService
	Validator *validator.Validate
}

func NewOrderHandler(s *service.MarketService) *OrderHandler {
	return &OrderHandler{
		Service:   s,
		Validator: utils.GetValidator(),
	}
}

func formatValidationError(err error) map[string]string {
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			fields[e.Field()] = "failed on tag '" + e.Tag() + "'"
		}
	}
	return fields
}

// errStatus maps service errors onto HTTP status codes. Validation
// failures are the caller's fault, unknown references are 404, and
// anything else is a store failure.
func errStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidSide),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrOrderNotOpen),
		errors.Is(err, service.ErrInsufficientSupply):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrTokenNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// POST /api/orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req models.PlaceOrderRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"validation_errors": formatValidationError(err)})
		return
	}

	resp, err := h.Service.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DELETE /api/orders/:id
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	resp, err := h.Service.CancelOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.Service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

// GET /api/orders?token_id=...&side=...
func (h *OrderHandler) ListOpenOrders(c *gin.Context) {
	orders, err := h.Service.OpenOrders(c.Request.Context(), c.Query("token_id"), models.OrderSide(c.Query("side")))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/orderbook?token_id=...
func (h *OrderHandler) GetOrderBook(c *gin.Context) {
	tokenID := c.Query("token_id")
	if tokenID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'token_id' query parameter"})
		return
	}

	resp, err := h.Service.GetOrderBook(c.Request.Context(), tokenID)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/trades?token_id=...
func (h *OrderHandler) ListTrades(c *gin.Context) {
	tokenID := c.Query("token_id")
	if tokenID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'token_id' query parameter"})
		return
	}

	trades, err := h.Service.ListTrades(c.Request.Context(), tokenID)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trades": trades})
}
