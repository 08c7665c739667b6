package router

import (
	"time"

	"reclaim/internal/adapter/api/handler"
	"reclaim/internal/adapter/api/middleware"
	"reclaim/internal/domain/repository"
	"reclaim/internal/infrastructure/eventbus"
	ws "reclaim/internal/infrastructure/websocket"

	"github.com/labstack/echo/v4"
)

func SetupWebSocketRouter(e *echo.Echo, wsManager *ws.Manager, messageRepo repository.MessageRepository, bus *eventbus.Bus, inboxInterval, badgeInterval time.Duration, authMiddleware *middleware.AuthMiddleware) {
	wsHandler := handler.NewWebSocketHandler(wsManager, messageRepo, bus, inboxInterval, badgeInterval)

	e.GET("/v1/ws", wsHandler.HandleWebSocket, authMiddleware.AuthenticateQueryToken)
}
