package router

import (
	"reclaim/internal/adapter/api/handler"
	"reclaim/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupSightingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	sightingHandler := handler.GetSightingHandler()

	sightings := e.Group("/v1/sightings")
	sightings.Use(authMiddleware.Authenticate)
	sightings.POST("", sightingHandler.ReportSighting)
	sightings.GET("/mine", sightingHandler.ListMySightings)
	sightings.PUT("/:id/status", sightingHandler.SetStatus)

	items := e.Group("/v1/items")
	items.Use(authMiddleware.Authenticate)
	items.GET("/:id/sightings", sightingHandler.ListByItem)

	admin := e.Group("/v1/admin/sightings")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.PUT("/:id/status", sightingHandler.AdminSetStatus)
}
