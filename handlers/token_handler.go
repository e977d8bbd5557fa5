package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/FabriBott/asset-token-nexus-platform/models"
	"github.com/FabriBott/asset-token-nexus-platform/service"
	"github.com/FabriBott/asset-token-nexus-platform/utils"
)

type TokenHandler struct {
	Service   *service.TokenService
	Validator *validator.Validate
}

func NewTokenHandler(s *service.TokenService) *TokenHandler {
	return &TokenHandler{
		Service:   s,
		Validator: utils.GetValidator(),
	}
}

// POST /api/tokens
func (h *TokenHandler) MintToken(c *gin.Context) {
	var req models.MintTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"validation_errors": formatValidationError(err)})
		return
	}

	resp, err := h.Service.MintToken(c.Request.Context(), &req)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GET /api/tokens
func (h *TokenHandler) ListTokens(c *gin.Context) {
	tokens, err := h.Service.ListTokens(c.Request.Context())
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// GET /api/tokens/:id
func (h *TokenHandler) GetToken(c *gin.Context) {
	token, err := h.Service.GetToken(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, token)
}

// POST /api/tokens/:id/transfer
func (h *TokenHandler) TransferToken(c *gin.Context) {
	var req models.TransferTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"validation_errors": formatValidationError(err)})
		return
	}

	resp, err := h.Service.TransferToken(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/transactions?token_id=...
func (h *TokenHandler) ListTransactions(c *gin.Context) {
	txs, err := h.Service.ListTransactions(c.Request.Context(), c.Query("token_id"))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
