package router

import (
	"campustrade/internal/adapter/api/handler"
	"campustrade/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupTradeRequestRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	tradeRequestHandler := handler.GetTradeRequestHandler()
	transactionHandler := handler.GetTransactionHandler()

	requests := e.Group("/v1/trade-requests")
	requests.Use(authMiddleware.Authenticate)

	requests.POST("", tradeRequestHandler.CreateTradeRequest, rateLimitMiddleware.Limit("create_request"))
	requests.GET("", tradeRequestHandler.ListTradeRequests)
	requests.GET("/:id", tradeRequestHandler.GetTradeRequest)
	requests.POST("/:id/accept", tradeRequestHandler.AcceptTradeRequest)
	requests.POST("/:id/reject", tradeRequestHandler.RejectTradeRequest)
	requests.POST("/:id/cancel", tradeRequestHandler.CancelTradeRequest)
	requests.POST("/:id/confirm", tradeRequestHandler.ConfirmHandoff)
	requests.GET("/:id/transaction", transactionHandler.GetTransactionByRequest)
}
