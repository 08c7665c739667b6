package router

import (
	"reclaim/internal/adapter/api/handler"
	"reclaim/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupItemRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	itemHandler := handler.GetItemHandler()

	items := e.Group("/v1/items")
	items.GET("", itemHandler.ListItems)
	items.GET("/:id", itemHandler.GetItem)
	items.GET("/:id/photos", itemHandler.ListItemPhotos)

	myItems := e.Group("/v1/my-items")
	myItems.Use(authMiddleware.Authenticate)
	myItems.GET("", itemHandler.ListMyItems)
	myItems.POST("", itemHandler.CreateItem)
	myItems.PUT("/:id", itemHandler.UpdateItem)
	myItems.POST("/:id/resolve", itemHandler.ResolveItem)
	myItems.DELETE("/:id", itemHandler.DeleteItem)
	myItems.POST("/:id/photos", itemHandler.UploadItemPhoto)
	myItems.POST("/resolution-prompts", itemHandler.PromptStaleResolutions)

	admin := e.Group("/v1/admin/items")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.GET("/statistics", itemHandler.Statistics)
	admin.DELETE("/:id", itemHandler.AdminDeleteItem)
}
