package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"reclaim/internal/domain/repository"
	"reclaim/internal/infrastructure/eventbus"
	ws "reclaim/internal/infrastructure/websocket"
	"reclaim/internal/usecase"
	"reclaim/pkg/errors"
	"reclaim/pkg/response"
)

// WebSocketHandler upgrades connections and hosts the per-connection inbox
// session and unread-badge counter. The session polls the backend so traffic
// committed by another instance still reaches the bus, and the counter pushes
// badge updates down the socket whenever the value changes.
type WebSocketHandler struct {
	wsManager     *ws.Manager
	messageRepo   repository.MessageRepository
	bus           *eventbus.Bus
	inboxInterval time.Duration
	badgeInterval time.Duration
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // restrict in production
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, messageRepo repository.MessageRepository, bus *eventbus.Bus, inboxInterval, badgeInterval time.Duration) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:     wsManager,
		messageRepo:   messageRepo,
		bus:           bus,
		inboxInterval: inboxInterval,
		badgeInterval: badgeInterval,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok || userID == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to upgrade connection", err))
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	session := usecase.NewInboxSession(userID, h.messageRepo, h.bus, h.inboxInterval)
	counter := usecase.NewUnreadCounter(h.messageRepo, h.bus, h.badgeInterval, func() string { return userID })
	counter.OnChange = func(count int) {
		payload, err := json.Marshal(map[string]interface{}{
			"type": "unread_count",
			"data": map[string]int{"count": count},
		})
		if err != nil {
			return
		}
		h.wsManager.SendToUser(userID, payload)
	}

	// Outlives the upgrade request; torn down when the read pump exits.
	connCtx, cancel := context.WithCancel(context.Background())
	session.Start(connCtx)
	counter.Start(connCtx)

	go func() {
		client.ReadPump(h.wsManager)
		cancel()
		session.Stop()
		counter.Stop()
	}()
	go client.WritePump()

	return nil
}
