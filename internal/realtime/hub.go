package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"clubhub/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	// Max connections per member
	maxConnsPerUser = 8
	// Max total connections
	maxTotalConns = 10000
)

// Hub is a websocket hub that maps member id -> list of Clients and fans
// change events out to them.
type Hub struct {
	mu         sync.RWMutex
	conns      map[string]map[*Client]struct{}
	totalConns int
	shutdown   chan struct{}
	done       chan struct{}
	wsLog      *observability.WSLogger
}

// NewHub creates a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		conns:    make(map[string]map[*Client]struct{}),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		wsLog:    observability.NewWSLogger("change hub"),
	}
}

// Name returns a human-readable identifier for this hub.
func (h *Hub) Name() string { return "change hub" }

// Register a connection for a given member. Returns the Client or an error
// if limits are exceeded.
func (h *Hub) Register(userID string, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()

	if h.totalConns >= maxTotalConns {
		h.mu.Unlock()
		return nil, errors.New("server connection limit reached")
	}

	m, ok := h.conns[userID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[userID] = m
	}

	if len(m) >= maxConnsPerUser {
		h.mu.Unlock()
		return nil, errors.New("user connection limit reached")
	}

	client := NewClient(h, conn, userID)
	m[client] = struct{}{}
	h.totalConns++
	h.mu.Unlock()

	observability.WebSocketConnectionsTotal.Inc()
	h.wsLog.LogConnect(context.Background(), userID)

	return client, nil
}

// UnregisterClient removes a client from the hub.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	removed := false
	if m, ok := h.conns[client.UserID]; ok {
		if _, exists := m[client]; exists {
			delete(m, client)
			h.totalConns--
			removed = true
		}
		if len(m) == 0 {
			delete(h.conns, client.UserID)
		}
	}
	h.mu.Unlock()

	if removed {
		observability.WebSocketConnectionsTotal.Dec()
		h.wsLog.LogDisconnect(context.Background(), client.UserID, "closed")
	}
}

// Broadcast sends message to all connections for a member.
func (h *Hub) Broadcast(userID string, message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.conns[userID]; ok {
		data := []byte(message)
		for c := range clients {
			c.TrySend(data)
		}
	}
}

// BroadcastAll sends message to every connected websocket client.
func (h *Hub) BroadcastAll(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for _, clients := range h.conns {
		for c := range clients {
			c.TrySend(data)
		}
	}
}

// IsOnline reports whether a member currently has an active connection.
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients, ok := h.conns[userID]
	return ok && len(clients) > 0
}

type wireEvent struct {
	Type  string `json:"type"`
	Table string `json:"table"`
	Key   string `json:"key,omitempty"`
}

// ForwardChanges attaches the hub to a feed as a sink. Notification-scoped
// events go only to the recipient's sockets; everything else is broadcast.
func (h *Hub) ForwardChanges(feed *ChangeFeed) {
	feed.AddSink(func(ev Event) {
		scoped := ev.Table == TableNotifications && ev.Key != ""
		if scoped && !h.IsOnline(ev.Key) {
			// Recipient has no open sockets, nothing to serialize.
			return
		}
		data, err := json.Marshal(wireEvent{Type: "change", Table: ev.Table, Key: ev.Key})
		if err != nil {
			return
		}
		if scoped {
			h.Broadcast(ev.Key, string(data))
			return
		}
		h.BroadcastAll(string(data))
	})
}

// Shutdown gracefully closes all websocket connections
func (h *Hub) Shutdown(_ context.Context) error {
	close(h.shutdown)

	h.mu.Lock()
	for userID, userConns := range h.conns {
		for client := range userConns {
			if client.Conn == nil {
				continue
			}
			if err := client.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
				log.Printf("failed to write close message for user %s: %v", userID, err)
			}
			if err := client.Conn.Close(); err != nil {
				log.Printf("failed to close websocket for user %s: %v", userID, err)
			}
		}
	}
	h.conns = make(map[string]map[*Client]struct{})
	h.mu.Unlock()

	close(h.done)

	return nil
}
