package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"notesync/internal/pkg/logger"
)

// Hub tracks every open push connection per user. A user can hold several
// connections at once (multi-device), and each one receives every push.
type Hub struct {
	// UserID -> open connections for that user
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out, nil in single-node mode
	rdb *redis.Client

	// instanceID lets the subscriber skip messages this instance published,
	// since local delivery already happened in Send.
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Last connection closed", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers a payload to every local connection the user has open, then
// relays it over Redis so other instances can do the same.
func (h *Hub) Send(userID uuid.UUID, payload []byte) {
	h.sendLocal(userID, payload)

	if h.rdb != nil {
		relay, _ := json.Marshal(map[string]interface{}{
			"origin":         h.instanceID,
			"target_user_id": userID.String(),
			"message":        json.RawMessage(payload),
		})
		h.rdb.Publish(context.Background(), "cluster_events", relay)
	}
}

func (h *Hub) sendLocal(userID uuid.UUID, payload []byte) {
	h.mu.RLock()
	clients := h.clients[userID]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- payload:
		default:
			// The unregister handler closes Send.
			h.logger.Warn("Hub", "Send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the shared channel and forwards only the
	// messages whose target user is connected locally.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			Origin       string          `json:"origin"`
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Bad cluster event", map[string]interface{}{"error": err.Error()})
			continue
		}

		if payload.Origin == h.instanceID {
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.sendLocal(uid, payload.Message)
	}
}
