package handlers

import (
	"net/http"

	"github.com/dom/chateo-backend/internal/api/middleware"
	"github.com/dom/chateo-backend/internal/presence"
	ws "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

type PresenceHandler struct {
	hub    *presence.Hub
	logger *zap.Logger
}

func NewPresenceHandler(hub *presence.Hub, logger *zap.Logger) *PresenceHandler {
	return &PresenceHandler{hub: hub, logger: logger}
}

// Handle upgrades an authenticated request to a presence connection.
func (h *PresenceHandler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := presence.NewClient(h.hub, conn, userID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
