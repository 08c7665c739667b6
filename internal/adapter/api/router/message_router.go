package router

import (
	"reclaim/internal/adapter/api/handler"
	"reclaim/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupMessageRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	messageHandler := handler.GetMessageHandler()

	messages := e.Group("/v1/messages")
	messages.Use(authMiddleware.Authenticate)
	messages.POST("", messageHandler.SendMessage)
	messages.GET("/conversations", messageHandler.Inbox)
	messages.POST("/conversations/open", messageHandler.OpenConversation)
	messages.POST("/:id/read", messageHandler.MarkMessageRead)
	messages.GET("/unread-count", messageHandler.UnreadCount)
	messages.POST("/attachments", messageHandler.UploadAttachment)
}
