package dashboard

import (
	"encoding/json"
	"sync"

	"go-hiring/internal/features/approval"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Hub fans approval events out to every connected dashboard. It is the
// engine's approval.Publisher implementation.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		logger:  logger,
	}
}

func (h *Hub) Publish(event approval.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("websocket write failed", zap.Error(err))
		}
	}
}

// HandleConnection keeps the connection registered until the client
// hangs up. Inbound messages are ignored; the stream is one-way.
func (h *Hub) HandleConnection(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
