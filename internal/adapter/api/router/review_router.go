package router

import (
	"campustrade/internal/adapter/api/handler"
	"campustrade/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	reviews := e.Group("/v1/reviews")
	reviews.Use(authMiddleware.Authenticate)
	reviews.POST("", reviewHandler.CreateReview, rateLimitMiddleware.Limit("create_review"))

	// Review history is public.
	e.GET("/v1/users/:id/reviews", reviewHandler.ListUserReviews)
}
