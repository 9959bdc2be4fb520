package router

import (
	"campustrade/internal/adapter/api/handler"
	"campustrade/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupTransactionRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	transactionHandler := handler.GetTransactionHandler()
	reviewHandler := handler.GetReviewHandler()

	transactions := e.Group("/v1/transactions")
	transactions.Use(authMiddleware.Authenticate)

	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.GET("/:id/review-eligibility", reviewHandler.GetReviewEligibility)
}
