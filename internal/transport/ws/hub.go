package ws

import (
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub manages all active WebSocket clients and routes events to them.
type Hub struct {
	// clients maps userID → client.
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	direct     chan *directMsg

	logger *zap.Logger
}

type directMsg struct {
	userID uuid.UUID
	data   []byte
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan *directMsg, 256),
		logger:     logger,
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			// A reconnect supersedes the previous socket; shut the old
			// one down so its unregister cannot touch this entry.
			if old, ok := h.clients[client.userID]; ok && old != client {
				close(old.send)
				close(old.done)
			}
			h.clients[client.userID] = client
			h.logger.Info("ws hub: user connected",
				zap.String("user_id", client.userID.String()),
				zap.Int("total", len(h.clients)),
			)
			h.broadcastPresence(client.userID, "online")

		case client := <-h.unregister:
			// Only the client still holding the map entry may remove it;
			// a superseded socket was already closed during register.
			if h.clients[client.userID] == client {
				delete(h.clients, client.userID)
				close(client.send)
				close(client.done)
				h.logger.Info("ws hub: user disconnected",
					zap.String("user_id", client.userID.String()),
					zap.Int("total", len(h.clients)),
				)
				h.broadcastPresence(client.userID, "offline")
			}

		case msg := <-h.direct:
			client, ok := h.clients[msg.userID]
			if !ok {
				continue
			}
			select {
			case client.send <- msg.data:
			default:
				// Client buffer full - disconnect
				delete(h.clients, msg.userID)
				close(client.send)
				close(client.done)
			}
		}
	}
}

// SendToUser delivers an event to one connected user; a no-op when that
// user has no open socket.
func (h *Hub) SendToUser(userID uuid.UUID, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("ws hub: marshal error", zap.Error(err))
		return
	}
	h.direct <- &directMsg{userID: userID, data: data}
}

// broadcastPresence sends online/offline to all connected clients.
func (h *Hub) broadcastPresence(userID uuid.UUID, status string) {
	evt, err := NewEvent(EventTypePresence, PresencePayload{
		UserID: userID,
		Status: status,
	})
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	for _, client := range h.clients {
		if client.userID == userID {
			continue
		}
		select {
		case client.send <- data:
		default:
		}
	}
}
