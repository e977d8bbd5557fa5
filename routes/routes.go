package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/FabriBott/asset-token-nexus-platform/handlers"
	"github.com/FabriBott/asset-token-nexus-platform/notify"
	"github.com/FabriBott/asset-token-nexus-platform/service"
)

func RegisterRoutes(router *gin.Engine, market *service.MarketService, tokens *service.TokenService, feed *notify.TradeFeed) {
	orderHandler := handlers.NewOrderHandler(market)
	tokenHandler := handlers.NewTokenHandler(tokens)

	api := router.Group("/api")
	{
		api.POST("/tokens", tokenHandler.MintToken)
		api.GET("/tokens", tokenHandler.ListTokens)
		api.GET("/tokens/:id", tokenHandler.GetToken)
		api.POST("/tokens/:id/transfer", tokenHandler.TransferToken)

		api.POST("/orders", orderHandler.PlaceOrder)
		api.GET("/orders", orderHandler.ListOpenOrders)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.DELETE("/orders/:id", orderHandler.CancelOrder)

		api.GET("/orderbook", orderHandler.GetOrderBook)
		api.GET("/trades", orderHandler.ListTrades)
		api.GET("/transactions", tokenHandler.ListTransactions)
	}

	router.GET("/ws/trades", feed.Handler)
}
