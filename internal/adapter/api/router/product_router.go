package router

import (
	"campustrade/internal/adapter/api/handler"
	"campustrade/internal/adapter/api/middleware"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware, authClient *auth.Client) {
	productHandler := handler.GetProductHandler()

	// The catalog is public; detail picks up the caller's uid when a token
	// is present.
	products := e.Group("/v1/products")
	products.GET("", productHandler.ListProducts)

	productDetail := e.Group("/v1/products")
	productDetail.Use(VerifyToken(authClient))
	productDetail.GET("/:id", productHandler.GetProduct)

	myProducts := e.Group("/v1/my-products")
	myProducts.Use(authMiddleware.Authenticate)
	myProducts.GET("", productHandler.ListMyProducts)
	myProducts.POST("", productHandler.CreateProduct, rateLimitMiddleware.Limit("create_product"))
	myProducts.PUT("/:id", productHandler.UpdateProduct)
	myProducts.DELETE("/:id", productHandler.RemoveProduct)
}
