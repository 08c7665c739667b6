package router

import (
	"reclaim/internal/adapter/api/handler"
	"reclaim/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	e.POST("/v1/auth/register", userHandler.Register)

	profile := e.Group("/v1/profile")
	profile.Use(authMiddleware.Authenticate)
	profile.GET("", userHandler.GetProfile)
	profile.PUT("", userHandler.UpdateProfile)
	profile.POST("/avatar", userHandler.UploadAvatar)
}
