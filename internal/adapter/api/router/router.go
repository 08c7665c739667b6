package router

import (
	"reclaim/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupUserRouter(e, authMiddleware)
	SetupItemRouter(e, authMiddleware, adminMiddleware)
	SetupMessageRouter(e, authMiddleware)
	SetupSightingRouter(e, authMiddleware, adminMiddleware)
	SetupRewardRouter(e, authMiddleware)
	SetupNotificationRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
