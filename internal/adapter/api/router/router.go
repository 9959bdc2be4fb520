package router

import (
	"campustrade/internal/adapter/api/middleware"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware, authClient *auth.Client) {
	SetupProductRouter(e, authMiddleware, rateLimitMiddleware, authClient)
	SetupTradeRequestRouter(e, authMiddleware, rateLimitMiddleware)
	SetupTransactionRouter(e, authMiddleware)
	SetupReviewRouter(e, authMiddleware, rateLimitMiddleware)
	SetupHealthRouter(e)
}
