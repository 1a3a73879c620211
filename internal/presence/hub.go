package presence

import (
	"context"
	"time"

	"github.com/dom/chateo-backend/internal/domain"
	"github.com/dom/chateo-backend/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub tracks open presence connections per user. A user goes ONLINE
// when their first connection registers and OFFLINE when the last one
// closes. The socket carries no application messages.
type Hub struct {
	userRepo   repository.UserRepository
	logger     *zap.Logger
	register   chan *Client
	unregister chan *Client
	clients    map[uuid.UUID]map[*Client]bool
}

func NewHub(userRepo repository.UserRepository, logger *zap.Logger) *Hub {
	return &Hub{
		userRepo:   userRepo,
		logger:     logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			conns := h.clients[client.userID]
			if conns == nil {
				conns = make(map[*Client]bool)
				h.clients[client.userID] = conns
				h.setStatus(client.userID, domain.StatusOnline)
			}
			conns[client] = true

		case client := <-h.unregister:
			conns := h.clients[client.userID]
			if conns == nil {
				continue
			}
			if _, ok := conns[client]; !ok {
				continue
			}
			delete(conns, client)
			if len(conns) == 0 {
				delete(h.clients, client.userID)
				h.setStatus(client.userID, domain.StatusOffline)
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) setStatus(userID uuid.UUID, status domain.OnlineStatus) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.userRepo.UpdateOnlineStatus(ctx, userID, status); err != nil {
		h.logger.Error("update online status failed",
			zap.String("user_id", userID.String()),
			zap.String("status", string(status)),
			zap.Error(err))
	}
}
